package turtle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

var (
	integerLexical = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalLexical = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
	localName      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
)

// Encoder writes triples as Turtle. Output is deterministic: prefixes sorted by name,
// subjects and predicates in term order with rdf:type first.
type Encoder struct {
	w        io.Writer
	prefixes map[string]string
	indent   string
}

// NewEncoder creates a Turtle encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:        w,
		prefixes: make(map[string]string),
		indent:   "    ",
	}
}

// BindPrefix registers a prefix used to abbreviate IRIs
func (e *Encoder) BindPrefix(prefix, namespace string) {
	e.prefixes[prefix] = namespace
}

// BindPrefixes registers every prefix in the map
func (e *Encoder) BindPrefixes(prefixes map[string]string) {
	for prefix, ns := range prefixes {
		e.BindPrefix(prefix, ns)
	}
}

// Encode writes the triples in the given format
func (e *Encoder) Encode(format Format, triples []rdf.Triple) error {
	switch format {
	case FormatTurtle:
		return e.EncodeTurtle(triples)
	case FormatNTriples:
		return WriteNTriples(e.w, triples)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// EncodeTurtle writes the triples as Turtle
func (e *Encoder) EncodeTurtle(triples []rdf.Triple) error {
	bw := bufio.NewWriter(e.w)

	names := make([]string, 0, len(e.prefixes))
	for prefix := range e.prefixes {
		names = append(names, prefix)
	}
	sort.Strings(names)

	for _, prefix := range names {
		fmt.Fprintf(bw, "@prefix %s: <%s> .\n", prefix, rdf.EscapeIRI(e.prefixes[prefix]))
	}
	if len(names) > 0 {
		bw.WriteString("\n")
	}

	sorted := make([]rdf.Triple, len(triples))
	copy(sorted, triples)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := rdf.Compare(a.S, b.S); c != 0 {
			return c < 0
		}
		if a.P != b.P {
			// rdf:type is written first as "a"
			if a.P == rdf.Type {
				return true
			}
			if b.P == rdf.Type {
				return false
			}
			return rdf.Compare(a.P, b.P) < 0
		}
		return rdf.Compare(a.O, b.O) < 0
	})

	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].S == sorted[i].S {
			j++
		}
		e.writeSubject(bw, sorted[i:j])
		i = j
		if i < len(sorted) {
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

// writeSubject writes one subject block with ";" between predicates and "," between
// objects of the same predicate
func (e *Encoder) writeSubject(bw *bufio.Writer, group []rdf.Triple) {
	bw.WriteString(e.formatTerm(group[0].S))

	for i := 0; i < len(group); {
		pred := group[i].P
		if i == 0 {
			bw.WriteString(" ")
		} else {
			bw.WriteString(" ;\n" + e.indent)
		}
		bw.WriteString(e.formatPredicate(pred))
		bw.WriteString(" ")

		first := true
		for i < len(group) && group[i].P == pred {
			if !first {
				bw.WriteString(",\n" + e.indent + e.indent)
			}
			bw.WriteString(e.formatTerm(group[i].O))
			first = false
			i++
		}
	}
	bw.WriteString(" .\n")
}

func (e *Encoder) formatPredicate(p rdf.Term) string {
	if p == rdf.Type {
		return "a"
	}
	return e.formatTerm(p)
}

// formatTerm renders a term using prefixed names and numeric shorthand where the
// result parses back to the same term
func (e *Encoder) formatTerm(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindIRI:
		return e.formatIRI(t.Value)
	case rdf.KindLiteral:
		switch {
		case t.Lang != "":
			return `"` + rdf.EscapeString(t.Value) + `"@` + t.Lang
		case t.Datatype == rdf.XSDInteger && integerLexical.MatchString(t.Value):
			return t.Value
		case t.Datatype == rdf.XSDDecimal && decimalLexical.MatchString(t.Value):
			return t.Value
		case t.Datatype == rdf.XSDBoolean && (t.Value == "true" || t.Value == "false"):
			return t.Value
		case t.Datatype == "" || t.Datatype == rdf.XSDString:
			return `"` + rdf.EscapeString(t.Value) + `"`
		default:
			return `"` + rdf.EscapeString(t.Value) + `"^^` + e.formatIRI(t.Datatype)
		}
	default:
		return t.NTriples()
	}
}

// formatIRI abbreviates iri with the longest matching namespace
func (e *Encoder) formatIRI(iri string) string {
	best, bestNS := "", ""
	for prefix, ns := range e.prefixes {
		if !strings.HasPrefix(iri, ns) || len(ns) <= len(bestNS) {
			continue
		}
		if local := iri[len(ns):]; local == "" || localName.MatchString(local) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS != "" {
		return best + ":" + iri[len(bestNS):]
	}
	return "<" + rdf.EscapeIRI(iri) + ">"
}

// WriteNTriples writes one triple per line in N-Triples syntax
func WriteNTriples(w io.Writer, triples []rdf.Triple) error {
	bw := bufio.NewWriter(w)
	for _, t := range triples {
		if _, err := bw.WriteString(t.NTriples() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
