package turtle

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes Turtle and N-Triples documents
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
	}
}

// Tokenize converts the input into tokens, ending with TokenEOF
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.input) {
		ch := l.peek()

		if isSpace(ch) {
			l.advance()
			continue
		}

		if ch == '#' {
			l.skipLineComment()
			continue
		}

		token, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, token)
	}

	l.tokens = append(l.tokens, Token{
		Type:   TokenEOF,
		Pos:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

// nextToken reads the next token
func (l *Lexer) nextToken() (Token, error) {
	ch := l.peek()

	switch ch {
	case '<':
		return l.readIRI()
	case '"', '\'':
		return l.readString()
	case '@':
		return l.readAt()
	case '^':
		start := l.mark()
		l.advance()
		if l.peek() != '^' {
			return Token{}, l.errorAt(start, "expected '^^'")
		}
		l.advance()
		return start.token(TokenDatatype, "^^"), nil
	case '.':
		if isDigit(l.peekAhead(1)) {
			return l.readNumber()
		}
		return l.single(TokenDot), nil
	case ';':
		return l.single(TokenSemicolon), nil
	case ',':
		return l.single(TokenComma), nil
	case '[':
		return l.single(TokenLeftBracket), nil
	case ']':
		return l.single(TokenRightBracket), nil
	case '(':
		return l.single(TokenLeftParen), nil
	case ')':
		return l.single(TokenRightParen), nil
	case '+', '-':
		return l.readNumber()
	}

	if ch == '_' && l.peekAhead(1) == ':' {
		return l.readBlankNode()
	}
	if isDigit(ch) {
		return l.readNumber()
	}
	if ch == ':' || isNameStart(ch) {
		return l.readName()
	}

	return Token{}, syntaxErrorf(l.line, l.column, "unexpected character %q", l.peekRune())
}

// readIRI reads an IRI reference, resolving \u and \U escapes
func (l *Lexer) readIRI() (Token, error) {
	start := l.mark()
	l.advance() // <

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, l.errorAt(start, "unterminated IRI")
		}
		ch := l.peek()
		switch {
		case ch == '>':
			l.advance()
			return start.token(TokenIRI, sb.String()), nil
		case ch == '\\':
			r, err := l.readUnicodeEscape()
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
		case ch <= ' ' || ch == '<' || ch == '"' || ch == '{' || ch == '}' || ch == '|' || ch == '^' || ch == '`':
			return Token{}, syntaxErrorf(l.line, l.column, "invalid character %q in IRI", ch)
		default:
			sb.WriteByte(l.advance())
		}
	}
}

// readString reads a short or long quoted string
func (l *Lexer) readString() (Token, error) {
	start := l.mark()
	quote := l.peek()
	long := l.peekAhead(1) == quote && l.peekAhead(2) == quote
	if long {
		l.advance()
		l.advance()
	}
	l.advance()

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, l.errorAt(start, "unterminated string")
		}
		ch := l.peek()

		if ch == quote {
			if !long {
				l.advance()
				return start.token(TokenString, sb.String()), nil
			}
			// A run of more than three quotes closes on the last three
			if l.peekAhead(1) == quote && l.peekAhead(2) == quote && l.peekAhead(3) != quote {
				l.advance()
				l.advance()
				l.advance()
				return start.token(TokenString, sb.String()), nil
			}
			sb.WriteByte(l.advance())
			continue
		}

		if ch == '\\' {
			if err := l.readStringEscape(&sb); err != nil {
				return Token{}, err
			}
			continue
		}

		if !long && (ch == '\n' || ch == '\r') {
			return Token{}, l.errorAt(start, "newline in short string")
		}
		sb.WriteByte(l.advance())
	}
}

func (l *Lexer) readStringEscape(sb *strings.Builder) error {
	switch l.peekAhead(1) {
	case 'u', 'U':
		r, err := l.readUnicodeEscape()
		if err != nil {
			return err
		}
		sb.WriteRune(r)
		return nil
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 'f':
		sb.WriteByte('\f')
	case '"', '\'', '\\':
		sb.WriteByte(l.peekAhead(1))
	default:
		return syntaxErrorf(l.line, l.column, "invalid escape sequence \\%c", l.peekAhead(1))
	}
	l.advance()
	l.advance()
	return nil
}

// readUnicodeEscape reads \uXXXX or \UXXXXXXXX at the current position
func (l *Lexer) readUnicodeEscape() (rune, error) {
	line, column := l.line, l.column
	l.advance() // backslash

	width := 0
	switch l.peek() {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, syntaxErrorf(line, column, "invalid escape sequence \\%c", l.peek())
	}
	l.advance()

	if l.pos+width > len(l.input) {
		return 0, syntaxErrorf(line, column, "truncated unicode escape")
	}
	hex := l.input[l.pos : l.pos+width]
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return 0, syntaxErrorf(line, column, "invalid unicode escape \\%s", hex)
	}
	for i := 0; i < width; i++ {
		l.advance()
	}
	return rune(code), nil
}

// readAt reads @prefix, @base or a language tag
func (l *Lexer) readAt() (Token, error) {
	start := l.mark()
	l.advance() // @

	begin := l.pos
	for isLetter(l.peek()) {
		l.advance()
	}
	if l.pos == begin {
		return Token{}, l.errorAt(start, "expected language tag or directive after '@'")
	}
	word := l.input[begin:l.pos]

	switch word {
	case "prefix":
		return start.token(TokenPrefix, word), nil
	case "base":
		return start.token(TokenBase, word), nil
	}

	for l.peek() == '-' && isAlnum(l.peekAhead(1)) {
		l.advance()
		for isAlnum(l.peek()) {
			l.advance()
		}
	}
	return start.token(TokenLangTag, l.input[begin:l.pos]), nil
}

// readNumber reads an integer, decimal or double literal
func (l *Lexer) readNumber() (Token, error) {
	start := l.mark()
	begin := l.pos

	if l.peek() == '+' || l.peek() == '-' {
		l.advance()
	}
	intDigits := l.skipDigits()

	kind := TokenInteger
	if l.peek() == '.' && isDigit(l.peekAhead(1)) {
		l.advance()
		l.skipDigits()
		kind = TokenDecimal
	} else if intDigits == 0 {
		return Token{}, l.errorAt(start, "expected digits")
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if l.skipDigits() == 0 {
			return Token{}, l.errorAt(start, "malformed exponent")
		}
		kind = TokenDouble
	}

	return start.token(kind, l.input[begin:l.pos]), nil
}

// readBlankNode reads _:label
func (l *Lexer) readBlankNode() (Token, error) {
	start := l.mark()
	l.advance()
	l.advance()

	begin := l.pos
	for isNameChar(l.peek()) || l.peek() == '.' {
		l.advance()
	}
	l.backOffDots(begin)

	if l.pos == begin {
		return Token{}, l.errorAt(start, "empty blank node label")
	}
	return start.token(TokenBlankNode, l.input[begin:l.pos]), nil
}

// readName reads a prefixed name or a bare keyword
func (l *Lexer) readName() (Token, error) {
	start := l.mark()
	begin := l.pos

	for isNameChar(l.peek()) || l.peek() == '.' {
		l.advance()
	}

	if l.peek() != ':' {
		l.backOffDots(begin)
		word := l.input[begin:l.pos]
		switch {
		case word == "a":
			return start.token(TokenA, word), nil
		case word == "true":
			return start.token(TokenTrue, word), nil
		case word == "false":
			return start.token(TokenFalse, word), nil
		case strings.EqualFold(word, "PREFIX"):
			return start.token(TokenSparqlPrefix, word), nil
		case strings.EqualFold(word, "BASE"):
			return start.token(TokenSparqlBase, word), nil
		}
		return Token{}, l.errorAt(start, "unexpected word %q", word)
	}

	prefix := l.input[begin:l.pos]
	l.advance() // :

	var local strings.Builder
	localStart := l.pos
	for {
		ch := l.peek()
		switch {
		case isNameChar(ch) || ch == '.' || ch == ':' || ch == '%':
			local.WriteByte(l.advance())
		case ch == '\\' && isLocalEscape(l.peekAhead(1)):
			l.advance()
			local.WriteByte(l.advance())
		default:
			name := local.String()
			trimmed := strings.TrimRight(name, ".")
			if dots := len(name) - len(trimmed); dots > 0 && l.pos-dots >= localStart {
				l.pos -= dots
				l.column -= dots
			}
			return start.token(TokenPrefixedName, prefix+":"+trimmed), nil
		}
	}
}

// backOffDots un-reads trailing dots so they terminate the statement
func (l *Lexer) backOffDots(begin int) {
	for l.pos > begin && l.input[l.pos-1] == '.' {
		l.pos--
		l.column--
	}
}

func (l *Lexer) skipDigits() int {
	n := 0
	for isDigit(l.peek()) {
		l.advance()
		n++
	}
	return n
}

// Helper functions

type position struct {
	pos, line, column int
}

func (l *Lexer) mark() position {
	return position{pos: l.pos, line: l.line, column: l.column}
}

func (p position) token(t TokenType, value string) Token {
	return Token{Type: t, Value: value, Pos: p.pos, Line: p.line, Column: p.column}
}

func (l *Lexer) errorAt(p position, format string, args ...any) *SyntaxError {
	return syntaxErrorf(p.line, p.column, format, args...)
}

func (l *Lexer) single(t TokenType) Token {
	start := l.mark()
	return start.token(t, string(l.advance()))
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) peekAhead(n int) byte {
	pos := l.pos + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	l.column++
	if ch == '\n' {
		l.line++
		l.column = 1
	}
	return ch
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// isNameStart accepts ASCII letters and any byte of a multi-byte UTF-8 sequence
func isNameStart(ch byte) bool {
	return isLetter(ch) || ch >= 0x80
}

func isNameChar(ch byte) bool {
	return isAlnum(ch) || ch == '_' || ch == '-' || ch >= 0x80
}

func isLocalEscape(ch byte) bool {
	return strings.IndexByte("_~.-!$&'()*+,;=/?#@%", ch) >= 0
}
