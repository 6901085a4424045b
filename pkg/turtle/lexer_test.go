package turtle

import (
	"errors"
	"testing"
)

func TestLexer_Statement(t *testing.T) {
	input := "@prefix ex: <http://example.org/eng#> .\nex:Part_P001 a ex:Part ; ex:weightKg 2.3 ; ex:qty 6 ."

	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	expected := []struct {
		typ   TokenType
		value string
	}{
		{TokenPrefix, "prefix"},
		{TokenPrefixedName, "ex:"},
		{TokenIRI, "http://example.org/eng#"},
		{TokenDot, "."},
		{TokenPrefixedName, "ex:Part_P001"},
		{TokenA, "a"},
		{TokenPrefixedName, "ex:Part"},
		{TokenSemicolon, ";"},
		{TokenPrefixedName, "ex:weightKg"},
		{TokenDecimal, "2.3"},
		{TokenSemicolon, ";"},
		{TokenPrefixedName, "ex:qty"},
		{TokenInteger, "6"},
		{TokenDot, "."},
		{TokenEOF, ""},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(expected), tokens)
	}
	for i, want := range expected {
		if tokens[i].Type != want.typ || tokens[i].Value != want.value {
			t.Errorf("token %d = %v %q, want %v %q", i, tokens[i].Type, tokens[i].Value, want.typ, want.value)
		}
	}

	if tokens[4].Line != 2 || tokens[4].Column != 1 {
		t.Errorf("subject position = %d:%d, want 2:1", tokens[4].Line, tokens[4].Column)
	}
}

func TestLexer_TrailingDotEndsStatement(t *testing.T) {
	tokens, err := NewLexer("ex:a ex:b ex:Part_P001.").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if tokens[2].Value != "ex:Part_P001" {
		t.Errorf("object = %q, want ex:Part_P001", tokens[2].Value)
	}
	if tokens[3].Type != TokenDot {
		t.Errorf("expected a dot token, got %v", tokens[3].Type)
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		value string
	}{
		{"6", TokenInteger, "6"},
		{"-12", TokenInteger, "-12"},
		{"+3", TokenInteger, "+3"},
		{"0.03", TokenDecimal, "0.03"},
		{".5", TokenDecimal, ".5"},
		{"1.5E2", TokenDouble, "1.5E2"},
		{"4e-1", TokenDouble, "4e-1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if tokens[0].Type != tt.typ || tokens[0].Value != tt.value {
				t.Errorf("got %v %q, want %v %q", tokens[0].Type, tokens[0].Value, tt.typ, tt.value)
			}
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"double quoted", `"Robotic Gripper RG-1"`, "Robotic Gripper RG-1"},
		{"single quoted", `'O-Ring'`, "O-Ring"},
		{"escapes", `"a\"b\\c\nd\te"`, "a\"b\\c\nd\te"},
		{"unicode escape", "\"caf\\u00E9\"", "café"},
		{"long string", "\"\"\"line one\nline \"two\"\"\"\"", "line one\nline \"two\""},
		{"raw utf-8", `"Größe"`, "Größe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if tokens[0].Type != TokenString || tokens[0].Value != tt.value {
				t.Errorf("got %v %q, want string %q", tokens[0].Type, tokens[0].Value, tt.value)
			}
		})
	}
}

func TestLexer_LiteralSuffixes(t *testing.T) {
	tokens, err := NewLexer(`"x"@en-GB "1"^^xsd:integer`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []TokenType{TokenString, TokenLangTag, TokenString, TokenDatatype, TokenPrefixedName, TokenEOF}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Type, typ)
		}
	}
	if tokens[1].Value != "en-GB" {
		t.Errorf("lang tag = %q", tokens[1].Value)
	}
}

func TestLexer_CommentsAndKeywords(t *testing.T) {
	input := "# header\nPREFIX ex: <http://x/> # trailing\nBASE <http://y/>\n_:b0 a true, false ."

	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []TokenType{
		TokenSparqlPrefix, TokenPrefixedName, TokenIRI,
		TokenSparqlBase, TokenIRI,
		TokenBlankNode, TokenA, TokenTrue, TokenComma, TokenFalse, TokenDot, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Type, typ)
		}
	}
	if tokens[5].Value != "b0" {
		t.Errorf("blank node label = %q, want b0", tokens[5].Value)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"unterminated string", `"open`, 1, 1},
		{"unterminated IRI", "\n  <http://example.org", 2, 3},
		{"newline in short string", "\"a\nb\"", 1, 1},
		{"bad escape", `"a\qb"`, 1, 3},
		{"stray character", "ex:a ex:b {", 1, 11},
		{"unknown word", "foo", 1, 1},
		{"space in IRI", "<http://a b>", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokenize()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not wrap ErrSyntax", err)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("error %T is not a *SyntaxError", err)
			}
			if synErr.Line != tt.line || synErr.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d (%v)", synErr.Line, synErr.Column, tt.line, tt.column, err)
			}
		})
	}
}
