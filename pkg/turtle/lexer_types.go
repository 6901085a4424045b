package turtle

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Terms
	TokenIRI          // <http://...>
	TokenPrefixedName // ex:Part, ex:
	TokenBlankNode    // _:b0
	TokenString       // "...", '...', """...""", '''...'''
	TokenLangTag      // @en
	TokenInteger      // 6
	TokenDecimal      // 2.3
	TokenDouble       // 1.5e3
	TokenTrue
	TokenFalse
	TokenA // a

	// Directives
	TokenPrefix       // @prefix
	TokenBase         // @base
	TokenSparqlPrefix // PREFIX
	TokenSparqlBase   // BASE

	// Punctuation
	TokenDatatype     // ^^
	TokenDot          // .
	TokenSemicolon    // ;
	TokenComma        // ,
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftParen    // (
	TokenRightParen   // )
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "end of input",
	TokenIRI:          "IRI",
	TokenPrefixedName: "prefixed name",
	TokenBlankNode:    "blank node",
	TokenString:       "string",
	TokenLangTag:      "language tag",
	TokenInteger:      "integer",
	TokenDecimal:      "decimal",
	TokenDouble:       "double",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenA:            "'a'",
	TokenPrefix:       "@prefix",
	TokenBase:         "@base",
	TokenSparqlPrefix: "PREFIX",
	TokenSparqlBase:   "BASE",
	TokenDatatype:     "'^^'",
	TokenDot:          "'.'",
	TokenSemicolon:    "';'",
	TokenComma:        "','",
	TokenLeftBracket:  "'['",
	TokenRightBracket: "']'",
	TokenLeftParen:    "'('",
	TokenRightParen:   "')'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}
