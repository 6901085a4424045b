package turtle

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dd0wney/assembly-kg/pkg/rdf"
)

// Document is the result of parsing a Turtle or N-Triples file
type Document struct {
	Base     string
	Prefixes map[string]string
	Triples  []rdf.Triple
}

// Parse parses a Turtle document. N-Triples input is accepted as well since it is a
// subset of Turtle.
func Parse(src []byte) (*Document, error) {
	tokens, err := NewLexer(string(src)).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parser builds triples from tokens
type Parser struct {
	tokens []Token
	pos    int
	doc    *Document
	base   *url.URL
	anon   int
	// labels written in the document; generated nodes never reuse them
	labels map[string]bool
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	labels := make(map[string]bool)
	for _, token := range tokens {
		if token.Type == TokenBlankNode {
			labels[token.Value] = true
		}
	}
	return &Parser{
		tokens: tokens,
		doc:    &Document{Prefixes: make(map[string]string)},
		labels: labels,
	}
}

// Parse consumes every statement
func (p *Parser) Parse() (*Document, error) {
	for !p.isAtEnd() {
		var err error
		switch p.peek().Type {
		case TokenPrefix:
			err = p.parsePrefix(true)
		case TokenSparqlPrefix:
			err = p.parsePrefix(false)
		case TokenBase:
			err = p.parseBase(true)
		case TokenSparqlBase:
			err = p.parseBase(false)
		default:
			err = p.parseTriples()
		}
		if err != nil {
			return nil, err
		}
	}
	return p.doc, nil
}

// parsePrefix handles "@prefix ex: <iri> ." and "PREFIX ex: <iri>"
func (p *Parser) parsePrefix(dotted bool) error {
	p.advance()

	name, err := p.expect(TokenPrefixedName)
	if err != nil {
		return err
	}
	prefix, local, _ := strings.Cut(name.Value, ":")
	if local != "" {
		return syntaxErrorf(name.Line, name.Column, "expected prefix declaration, found %q", name.Value)
	}

	iri, err := p.expect(TokenIRI)
	if err != nil {
		return err
	}
	resolved, err := p.resolve(iri)
	if err != nil {
		return err
	}
	p.doc.Prefixes[prefix] = resolved

	if dotted {
		_, err = p.expect(TokenDot)
	}
	return err
}

// parseBase handles "@base <iri> ." and "BASE <iri>"
func (p *Parser) parseBase(dotted bool) error {
	p.advance()

	iri, err := p.expect(TokenIRI)
	if err != nil {
		return err
	}
	resolved, err := p.resolve(iri)
	if err != nil {
		return err
	}
	base, err := url.Parse(resolved)
	if err != nil {
		return syntaxErrorf(iri.Line, iri.Column, "invalid base IRI %q", resolved)
	}
	p.base = base
	p.doc.Base = resolved

	if dotted {
		_, err = p.expect(TokenDot)
	}
	return err
}

// parseTriples handles "subject predicateObjectList ." including a bare "[ ... ] ."
func (p *Parser) parseTriples() error {
	if p.check(TokenLeftBracket) {
		subject, err := p.parseBlankNodePropertyList()
		if err != nil {
			return err
		}
		if !p.check(TokenDot) {
			if err := p.parsePredicateObjectList(subject); err != nil {
				return err
			}
		}
		_, err = p.expect(TokenDot)
		return err
	}

	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	if err := p.parsePredicateObjectList(subject); err != nil {
		return err
	}
	_, err = p.expect(TokenDot)
	return err
}

func (p *Parser) parseSubject() (rdf.Term, error) {
	token := p.advance()
	switch token.Type {
	case TokenIRI, TokenPrefixedName:
		return p.iriTerm(token)
	case TokenBlankNode:
		return rdf.Blank(token.Value), nil
	case TokenLeftParen:
		return p.parseCollection()
	default:
		return rdf.Term{}, unexpected(token, "subject")
	}
}

func (p *Parser) parsePredicateObjectList(subject rdf.Term) error {
	for {
		predicate, err := p.parseVerb()
		if err != nil {
			return err
		}
		if err := p.parseObjectList(subject, predicate); err != nil {
			return err
		}

		if !p.check(TokenSemicolon) {
			return nil
		}
		for p.check(TokenSemicolon) {
			p.advance()
		}
		// A trailing ';' before the terminator is allowed
		if p.check(TokenDot) || p.check(TokenRightBracket) {
			return nil
		}
	}
}

func (p *Parser) parseVerb() (rdf.Term, error) {
	token := p.advance()
	switch token.Type {
	case TokenA:
		return rdf.Type, nil
	case TokenIRI, TokenPrefixedName:
		return p.iriTerm(token)
	default:
		return rdf.Term{}, unexpected(token, "predicate")
	}
}

func (p *Parser) parseObjectList(subject, predicate rdf.Term) error {
	for {
		object, err := p.parseObject()
		if err != nil {
			return err
		}
		p.emit(subject, predicate, object)

		if !p.check(TokenComma) {
			return nil
		}
		p.advance()
	}
}

func (p *Parser) parseObject() (rdf.Term, error) {
	if p.check(TokenLeftBracket) {
		return p.parseBlankNodePropertyList()
	}

	token := p.advance()
	switch token.Type {
	case TokenIRI, TokenPrefixedName:
		return p.iriTerm(token)
	case TokenBlankNode:
		return rdf.Blank(token.Value), nil
	case TokenString:
		return p.parseLiteral(token)
	case TokenInteger:
		return rdf.Literal(token.Value, rdf.XSDInteger), nil
	case TokenDecimal:
		return rdf.Literal(token.Value, rdf.XSDDecimal), nil
	case TokenDouble:
		return rdf.Literal(token.Value, rdf.XSDDouble), nil
	case TokenTrue, TokenFalse:
		return rdf.Literal(token.Value, rdf.XSDBoolean), nil
	case TokenLeftParen:
		return p.parseCollection()
	default:
		return rdf.Term{}, unexpected(token, "object")
	}
}

// parseLiteral attaches an optional language tag or datatype to a string
func (p *Parser) parseLiteral(str Token) (rdf.Term, error) {
	switch {
	case p.check(TokenLangTag):
		return rdf.LangString(str.Value, p.advance().Value), nil
	case p.check(TokenDatatype):
		p.advance()
		token := p.advance()
		if token.Type != TokenIRI && token.Type != TokenPrefixedName {
			return rdf.Term{}, unexpected(token, "datatype IRI")
		}
		datatype, err := p.iriTerm(token)
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.Literal(str.Value, datatype.Value), nil
	default:
		return rdf.String(str.Value), nil
	}
}

// parseBlankNodePropertyList handles "[ predicateObjectList ]"
func (p *Parser) parseBlankNodePropertyList() (rdf.Term, error) {
	if _, err := p.expect(TokenLeftBracket); err != nil {
		return rdf.Term{}, err
	}
	node := p.newBlank()
	if !p.check(TokenRightBracket) {
		if err := p.parsePredicateObjectList(node); err != nil {
			return rdf.Term{}, err
		}
	}
	if _, err := p.expect(TokenRightBracket); err != nil {
		return rdf.Term{}, err
	}
	return node, nil
}

// parseCollection expands "( o1 o2 ... )" into an rdf:first/rdf:rest chain; the
// opening paren is already consumed. An empty collection is rdf:nil.
func (p *Parser) parseCollection() (rdf.Term, error) {
	head := rdf.Nil
	var last rdf.Term
	for !p.check(TokenRightParen) {
		if p.isAtEnd() {
			return rdf.Term{}, unexpected(p.peek(), "')'")
		}
		node := p.newBlank()
		if last.IsZero() {
			head = node
		} else {
			p.emit(last, rdf.Rest, node)
		}
		item, err := p.parseObject()
		if err != nil {
			return rdf.Term{}, err
		}
		p.emit(node, rdf.First, item)
		last = node
	}
	p.advance()
	if !last.IsZero() {
		p.emit(last, rdf.Rest, rdf.Nil)
	}
	return head, nil
}

// iriTerm turns an IRI or prefixed-name token into an IRI term
func (p *Parser) iriTerm(token Token) (rdf.Term, error) {
	if token.Type == TokenIRI {
		iri, err := p.resolve(token)
		if err != nil {
			return rdf.Term{}, err
		}
		return rdf.IRI(iri), nil
	}

	prefix, local, _ := strings.Cut(token.Value, ":")
	ns, ok := p.doc.Prefixes[prefix]
	if !ok {
		return rdf.Term{}, syntaxErrorf(token.Line, token.Column, "undefined prefix %q", prefix)
	}
	return rdf.IRI(ns + local), nil
}

// resolve applies the current base to a relative IRI
func (p *Parser) resolve(token Token) (string, error) {
	if p.base == nil {
		return token.Value, nil
	}
	ref, err := url.Parse(token.Value)
	if err != nil {
		return "", syntaxErrorf(token.Line, token.Column, "invalid IRI %q", token.Value)
	}
	if ref.IsAbs() {
		return token.Value, nil
	}
	return p.base.ResolveReference(ref).String(), nil
}

func (p *Parser) emit(s, pred, o rdf.Term) {
	p.doc.Triples = append(p.doc.Triples, rdf.T(s, pred, o))
}

func (p *Parser) newBlank() rdf.Term {
	for {
		p.anon++
		label := "anon" + strconv.Itoa(p.anon)
		if !p.labels[label] {
			p.labels[label] = true
			return rdf.Blank(label)
		}
	}
}

// Helper functions

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	token := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return token
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t TokenType) (Token, error) {
	token := p.peek()
	if token.Type != t {
		return Token{}, unexpected(token, t.String())
	}
	return p.advance(), nil
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TokenEOF
}

func unexpected(token Token, want string) *SyntaxError {
	found := token.Type.String()
	if token.Value != "" && token.Type != TokenEOF {
		found += " " + strconv.Quote(token.Value)
	}
	return syntaxErrorf(token.Line, token.Column, "expected %s, found %s", want, found)
}
