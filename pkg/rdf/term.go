// Package rdf holds the term and triple model shared by the store, the Turtle codec
// and the query catalog.
package rdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Standard namespaces
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// XSD datatypes used by the graph
const (
	XSDString  = XSDNamespace + "string"
	XSDInteger = XSDNamespace + "integer"
	XSDDecimal = XSDNamespace + "decimal"
	XSDDouble  = XSDNamespace + "double"
	XSDFloat   = XSDNamespace + "float"
	XSDBoolean = XSDNamespace + "boolean"
	RDFLangStr = RDFNamespace + "langString"
)

// ErrNotNumeric is returned when a numeric value is requested from a term that has none.
var ErrNotNumeric = errors.New("term is not a numeric literal")

// integerTypes are xsd:integer and the XSD types derived from it.
var integerTypes = map[string]bool{
	XSDInteger:                          true,
	XSDNamespace + "int":                true,
	XSDNamespace + "long":               true,
	XSDNamespace + "short":              true,
	XSDNamespace + "byte":               true,
	XSDNamespace + "nonNegativeInteger": true,
	XSDNamespace + "positiveInteger":    true,
	XSDNamespace + "nonPositiveInteger": true,
	XSDNamespace + "negativeInteger":    true,
	XSDNamespace + "unsignedLong":       true,
	XSDNamespace + "unsignedInt":        true,
	XSDNamespace + "unsignedShort":      true,
	XSDNamespace + "unsignedByte":       true,
}

// TermKind identifies the kind of an RDF term
type TermKind uint8

const (
	// KindNone is the zero Term: an unbound value
	KindNone TermKind = iota
	KindIRI
	KindBlank
	KindLiteral
)

// Term is an IRI, a blank node or a literal. Terms are comparable and can be used as
// map keys; two terms are equal when kind, value, datatype and language all match.
type Term struct {
	Kind     TermKind
	Value    string // IRI, blank node label or lexical form
	Datatype string // literals only; empty for language-tagged strings
	Lang     string
}

// IRI creates an IRI term
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank creates a blank node term with the given label
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal creates a typed literal. An empty datatype means xsd:string.
func Literal(lexical, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// String creates a plain xsd:string literal
func String(s string) Term {
	return Literal(s, XSDString)
}

// LangString creates a language-tagged literal
func LangString(s, lang string) Term {
	return Term{Kind: KindLiteral, Value: s, Lang: strings.ToLower(lang)}
}

// Integer creates an xsd:integer literal
func Integer(i int64) Term {
	return Literal(strconv.FormatInt(i, 10), XSDInteger)
}

// Decimal creates an xsd:decimal literal in canonical form
func Decimal(d decimal.Decimal) Term {
	return Literal(FormatDecimal(d), XSDDecimal)
}

// Boolean creates an xsd:boolean literal
func Boolean(b bool) Term {
	return Literal(strconv.FormatBool(b), XSDBoolean)
}

// FormatDecimal renders d in XSD canonical decimal form: no exponent, trailing zeros
// trimmed, at least one digit after the point ("145.0", "3.52").
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// IsZero reports whether t is unbound
func (t Term) IsZero() bool { return t.Kind == KindNone }

// IsIRI reports whether t is an IRI
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether t is a literal
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsBlank reports whether t is a blank node
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsNumeric reports whether t is a literal of a numeric XSD datatype
func (t Term) IsNumeric() bool {
	if t.Kind != KindLiteral {
		return false
	}
	return integerTypes[t.Datatype] || t.Datatype == XSDDecimal || t.Datatype == XSDDouble || t.Datatype == XSDFloat
}

// IsInteger reports whether t is an xsd:integer (or derived) literal
func (t Term) IsInteger() bool {
	return t.Kind == KindLiteral && integerTypes[t.Datatype]
}

// Numeric returns the exact decimal value of a numeric literal. Doubles are parsed
// from their lexical form, so "0.1"^^xsd:double is exactly 0.1.
func (t Term) Numeric() (decimal.Decimal, error) {
	if !t.IsNumeric() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNotNumeric, t.NTriples())
	}
	lex := strings.TrimPrefix(strings.TrimSpace(t.Value), "+")
	d, err := decimal.NewFromString(lex)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNotNumeric, t.NTriples())
	}
	return d, nil
}

// String returns the value a result cell shows: the IRI, the lexical form, or the
// blank node label. The zero Term renders as "".
func (t Term) String() string {
	switch t.Kind {
	case KindBlank:
		return "_:" + t.Value
	case KindIRI, KindLiteral:
		return t.Value
	default:
		return ""
	}
}

// NTriples renders t in N-Triples syntax
func (t Term) NTriples() string {
	switch t.Kind {
	case KindIRI:
		return "<" + EscapeIRI(t.Value) + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		quoted := `"` + EscapeString(t.Value) + `"`
		if t.Lang != "" {
			return quoted + "@" + t.Lang
		}
		if t.Datatype == "" || t.Datatype == XSDString {
			return quoted
		}
		return quoted + "^^<" + EscapeIRI(t.Datatype) + ">"
	default:
		return ""
	}
}

// Compare orders terms the way ORDER BY does: unbound first, then blank nodes, IRIs,
// literals. Two numeric literals compare by value; other literals by lexical form.
func Compare(a, b Term) int {
	if a.Kind != b.Kind {
		return kindRank(a.Kind) - kindRank(b.Kind)
	}
	if a.IsNumeric() && b.IsNumeric() {
		da, errA := a.Numeric()
		db, errB := b.Numeric()
		if errA == nil && errB == nil {
			if c := da.Cmp(db); c != 0 {
				return c
			}
		}
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	if c := strings.Compare(a.Datatype, b.Datatype); c != 0 {
		return c
	}
	return strings.Compare(a.Lang, b.Lang)
}

func kindRank(k TermKind) int {
	switch k {
	case KindNone:
		return 0
	case KindBlank:
		return 1
	case KindIRI:
		return 2
	default:
		return 3
	}
}

// EscapeString escapes a literal's lexical form for Turtle and N-Triples
func EscapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// EscapeIRI escapes the characters that may not appear raw inside <...>
func EscapeIRI(iri string) string {
	var sb strings.Builder
	sb.Grow(len(iri))
	for _, r := range iri {
		switch {
		case r <= 0x20, r == '<', r == '>', r == '"', r == '{', r == '}', r == '|', r == '^', r == '`', r == '\\':
			fmt.Fprintf(&sb, `\u%04X`, r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
