package turtle

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

const eng = "http://example.org/eng#"

func TestParse_Document(t *testing.T) {
	src := `@base <http://example.org/> .
@prefix ex: <http://example.org/eng#> .
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
# parts
<item/1> ex:label "Gripper"@en , "Greifer"@de ;
    ex:weightKg "2.30"^^xsd:decimal ;
    ex:note """multi
line""" ;
    ex:flag true ;
    ex:madeBy [ ex:country "DE" ] ;
.
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/", doc.Base)
	assert.Equal(t, eng, doc.Prefixes["ex"])
	assert.Equal(t, rdf.XSDNamespace, doc.Prefixes["xsd"])

	item := rdf.IRI("http://example.org/item/1")
	anon := rdf.Blank("anon1")
	want := []rdf.Triple{
		rdf.T(item, rdf.IRI(eng+"label"), rdf.LangString("Gripper", "en")),
		rdf.T(item, rdf.IRI(eng+"label"), rdf.LangString("Greifer", "de")),
		rdf.T(item, rdf.IRI(eng+"weightKg"), rdf.Literal("2.30", rdf.XSDDecimal)),
		rdf.T(item, rdf.IRI(eng+"note"), rdf.String("multi\nline")),
		rdf.T(item, rdf.IRI(eng+"flag"), rdf.Literal("true", rdf.XSDBoolean)),
		rdf.T(anon, rdf.IRI(eng+"country"), rdf.String("DE")),
		rdf.T(item, rdf.IRI(eng+"madeBy"), anon),
	}
	assert.Equal(t, want, doc.Triples)
}

func TestParse_NumericShorthand(t *testing.T) {
	doc, err := Parse([]byte(`@prefix ex: <http://example.org/eng#> .
ex:Part_P004 ex:qty 6 ; ex:weightKg 0.03 ; ex:density 7.9e3 .`))
	require.NoError(t, err)
	require.Len(t, doc.Triples, 3)

	assert.Equal(t, rdf.Literal("6", rdf.XSDInteger), doc.Triples[0].O)
	assert.Equal(t, rdf.Literal("0.03", rdf.XSDDecimal), doc.Triples[1].O)
	assert.Equal(t, rdf.Literal("7.9e3", rdf.XSDDouble), doc.Triples[2].O)
}

func TestParse_NTriples(t *testing.T) {
	src := `<http://example.org/eng#Part_P001> <http://www.w3.org/2000/01/rdf-schema#label> "Linear Actuator LA100" .
<http://example.org/eng#Part_P001> <http://example.org/eng#qty> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:b0 <http://example.org/eng#country> "US" .
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Triples, 3)

	assert.Equal(t, rdf.String("Linear Actuator LA100"), doc.Triples[0].O)
	assert.Equal(t, rdf.Integer(1), doc.Triples[1].O)
	assert.Equal(t, rdf.Blank("b0"), doc.Triples[2].S)
}

func TestParse_GeneratedBlankNodesAreDistinct(t *testing.T) {
	src := `@prefix ex: <http://e/> .
[ ex:name "first" ] .
_:anon1 ex:name "explicit" .
[ ex:name "anonymous" ] .
_:anon3 ex:name "later" .
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Triples, 4)

	subjects := make(map[rdf.Term]string)
	for _, tr := range doc.Triples {
		_, dup := subjects[tr.S]
		assert.False(t, dup, "subject %v reused for %v", tr.S, tr.O)
		subjects[tr.S] = tr.O.Value
	}
	assert.Equal(t, "explicit", subjects[rdf.Blank("anon1")])
	assert.Equal(t, "later", subjects[rdf.Blank("anon3")])
	assert.Equal(t, "first", subjects[rdf.Blank("anon2")])
	assert.Equal(t, "anonymous", subjects[rdf.Blank("anon4")])
}

func TestParse_Collections(t *testing.T) {
	doc, err := Parse([]byte(`@prefix ex: <http://e/> .
ex:a ex:items ( "x" ex:b ) ;
    ex:none () .
`))
	require.NoError(t, err)

	l1, l2 := rdf.Blank("anon1"), rdf.Blank("anon2")
	a := rdf.IRI("http://e/a")
	assert.Equal(t, []rdf.Triple{
		rdf.T(l1, rdf.First, rdf.String("x")),
		rdf.T(l1, rdf.Rest, l2),
		rdf.T(l2, rdf.First, rdf.IRI("http://e/b")),
		rdf.T(l2, rdf.Rest, rdf.Nil),
		rdf.T(a, rdf.IRI("http://e/items"), l1),
		rdf.T(a, rdf.IRI("http://e/none"), rdf.Nil),
	}, doc.Triples)
}

func TestParse_CollectionSubject(t *testing.T) {
	doc, err := Parse([]byte(`( 1 ) <http://e/p> <http://e/o> .`))
	require.NoError(t, err)
	require.Len(t, doc.Triples, 3)
	assert.Equal(t, rdf.T(rdf.Blank("anon1"), rdf.First, rdf.Literal("1", rdf.XSDInteger)), doc.Triples[0])
	assert.Equal(t, rdf.Blank("anon1"), doc.Triples[2].S)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		line    int
		column  int
	}{
		{
			name:    "undefined prefix",
			src:     "foo:bar a foo:Baz .",
			message: `undefined prefix "foo"`,
			line:    1, column: 1,
		},
		{
			name:    "missing terminator",
			src:     "<http://a> <http://b> <http://c>",
			message: "expected '.', found end of input",
			line:    1, column: 33,
		},
		{
			name:    "literal subject",
			src:     `"x" <http://b> <http://c> .`,
			message: `expected subject, found string "x"`,
			line:    1, column: 1,
		},
		{
			name:    "literal predicate",
			src:     "<http://a>\n  \"p\" <http://c> .",
			message: "expected predicate",
			line:    2, column: 3,
		},
		{
			name:    "unterminated collection",
			src:     "<http://a> <http://b> ( 1 2 .",
			message: "expected object",
			line:    1, column: 29,
		},
		{
			name:    "prefix with local part",
			src:     "@prefix ex:foo <http://x/> .",
			message: "expected prefix declaration",
			line:    1, column: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			assert.True(t, strings.Contains(err.Error(), tt.message), "error %q should mention %q", err, tt.message)

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, tt.line, synErr.Line)
			assert.Equal(t, tt.column, synErr.Column)
		})
	}
}
