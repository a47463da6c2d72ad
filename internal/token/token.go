package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Literal is always the exact source
// span of the token and Offset is the byte offset where it starts.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
	Offset  int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Literal)
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of file

	// Literals
	IDENT  Type = "IDENT"  // name, Some, r#type
	INT    Type = "INT"    // 42, -7, 0xff, 1_000u32
	FLOAT  Type = "FLOAT"  // 1.5, 6.6e-34, inf, NaN
	STRING Type = "STRING" // "a", r#"b"#, b"c"
	CHAR   Type = "CHAR"   // 'a', b'a'

	// Delimiters
	LPAREN Type = "("
	RPAREN Type = ")"
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	COMMA  Type = ","
	COLON  Type = ":"
	POUND  Type = "#"
	BANG   Type = "!"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"

	// Comments and Whitespace. A line comment ends before its line break.
	WHITESPACE    Type = "WHITESPACE"
	LINE_COMMENT  Type = "LINE_COMMENT"  // // a comment
	BLOCK_COMMENT Type = "BLOCK_COMMENT" // /* a comment */
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"inf":   FLOAT,
	"NaN":   FLOAT,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns the keyword's token type.
// Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTrivia reports whether t carries no syntax: whitespace or a comment.
func (t Type) IsTrivia() bool {
	return t == WHITESPACE || t == LINE_COMMENT || t == BLOCK_COMMENT
}
