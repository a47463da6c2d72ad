package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-ronfmt/internal/token"
)

// Lexer holds the state for tokenizing RON source. It never drops input:
// whitespace runs and comments come out as tokens of their own, so the
// concatenated literals of all tokens reproduce the source.
type Lexer struct {
	input        []byte
	position     int  // start of ch
	readPosition int  // just past ch
	ch           rune // -1 at end of input
	line         int
	column       int
	newline      string
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.advance()
	return l
}

// Source returns the input being scanned.
func (l *Lexer) Source() []byte {
	return l.input
}

// Newline returns the line break used by the first line of the input
// consumed so far: "\r\n" or "\n". It is empty until a line break is seen.
func (l *Lexer) Newline() string {
	return l.newline
}

// NextToken scans the input and returns the next token. An ILLEGAL token
// carries an error message as its literal.
func (l *Lexer) NextToken() token.Token { //nolint:gocognit,gocyclo
	tok := token.Token{Line: l.line, Column: l.column, Offset: l.position}
	start := l.position
	var msg string

	switch {
	case l.ch == -1:
		tok.Type = token.EOF
		return tok
	case isWhitespace(l.ch):
		for isWhitespace(l.ch) {
			l.advance()
		}
		tok.Type = token.WHITESPACE
	case l.ch == '/' && l.peekRune() == '/':
		l.readLineComment()
		tok.Type = token.LINE_COMMENT
	case l.ch == '/' && l.peekRune() == '*':
		tok.Type, msg = l.readBlockComment()
	case l.ch == '(' || l.ch == ')' || l.ch == '[' || l.ch == ']' || l.ch == '{' ||
		l.ch == '}' || l.ch == ',' || l.ch == ':' || l.ch == '#' || l.ch == '!':
		tok.Type = token.Type(l.ch)
		l.advance()
	case l.ch == '"':
		tok.Type, msg = l.readString()
	case l.ch == '\'':
		tok.Type, msg = l.readChar()
	case l.ch == 'r' && l.isRawStringStart(l.readPosition):
		tok.Type, msg = l.readRawString()
	case l.ch == 'b' && l.peekRune() == '"':
		l.advance()
		tok.Type, msg = l.readString()
	case l.ch == 'b' && l.peekRune() == '\'':
		l.advance()
		tok.Type, msg = l.readChar()
	case l.ch == 'b' && l.peekRune() == 'r' && l.isRawStringStart(l.readPosition+1):
		l.advance()
		tok.Type, msg = l.readRawString()
	case isDigit(l.ch) || l.ch == '.' && isDigit(l.peekRune()):
		tok.Type, msg = l.readNumber()
	case l.ch == '+' || l.ch == '-':
		next := l.peekRune()
		if !isDigit(next) && next != '.' && next != 'i' && next != 'N' {
			tok.Type = token.ILLEGAL
			msg = fmt.Sprintf("unexpected character %q", l.ch)
			l.advance()
			break
		}
		l.advance()
		if l.ch == 'i' || l.ch == 'N' {
			word := l.readIdentifier()
			if word != "inf" && word != "NaN" {
				tok.Type = token.ILLEGAL
				msg = fmt.Sprintf("invalid number %q", string(l.input[start:l.position]))
				break
			}
			tok.Type = token.FLOAT
			break
		}
		tok.Type, msg = l.readNumber()
	case l.ch == 'r' && l.peekRune() == '#':
		l.advance()
		l.advance()
		if !isIdentifierStart(l.ch) {
			tok.Type = token.ILLEGAL
			msg = "invalid raw identifier"
			break
		}
		for isIdentifierChar(l.ch) || l.ch == '.' || l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		tok.Type = token.IDENT
	case isIdentifierStart(l.ch):
		tok.Type = token.LookupIdent(l.readIdentifier())
	default:
		tok.Type = token.ILLEGAL
		if l.ch == utf8.RuneError {
			msg = "invalid utf-8"
		} else {
			msg = fmt.Sprintf("unexpected character %q", l.ch)
		}
		l.advance()
	}

	if tok.Type == token.ILLEGAL {
		tok.Literal = msg
		return tok
	}
	tok.Literal = string(l.input[start:l.position])
	return tok
}

// Tokenize lexes the whole input. The returned slice always ends with an
// EOF or an ILLEGAL token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			return toks
		}
	}
}

// advance moves to the next rune, keeping line and column current.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		if l.newline == "" {
			l.newline = "\n"
			if l.position > 0 && l.input[l.position-1] == '\r' {
				l.newline = "\r\n"
			}
		}
		l.line++
		l.column = 0
	}
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = -1
		return
	}
	r, size := utf8.DecodeRune(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekRune() rune {
	return l.runeAt(l.readPosition)
}

func (l *Lexer) runeAt(pos int) rune {
	if pos >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRune(l.input[pos:])
	return r
}

func (l *Lexer) readLineComment() {
	for l.ch != '\n' && l.ch != -1 {
		if l.ch == '\r' && l.peekRune() == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) readBlockComment() (token.Type, string) {
	l.advance() // consume '/'
	l.advance() // consume '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch == -1:
			return token.ILLEGAL, "unterminated block comment"
		case l.ch == '/' && l.peekRune() == '*':
			depth++
			l.advance()
		case l.ch == '*' && l.peekRune() == '/':
			depth--
			l.advance()
		}
		l.advance()
	}
	return token.BLOCK_COMMENT, ""
}

func (l *Lexer) readString() (token.Type, string) {
	l.advance() // consume opening quote
	for l.ch != '"' {
		if l.ch == -1 {
			return token.ILLEGAL, "unterminated string"
		}
		if l.ch == '\\' {
			l.advance()
			if l.ch == -1 {
				return token.ILLEGAL, "unterminated string"
			}
		}
		l.advance()
	}
	l.advance() // consume closing quote
	return token.STRING, ""
}

// isRawStringStart reports whether the bytes at pos look like the hashes
// and opening quote of a raw string: #*".
func (l *Lexer) isRawStringStart(pos int) bool {
	for pos < len(l.input) && l.input[pos] == '#' {
		pos++
	}
	return pos < len(l.input) && l.input[pos] == '"'
}

func (l *Lexer) readRawString() (token.Type, string) {
	l.advance() // consume 'r'
	hashes := 0
	for l.ch == '#' {
		hashes++
		l.advance()
	}
	l.advance() // consume opening quote
	for {
		if l.ch == -1 {
			return token.ILLEGAL, "unterminated raw string"
		}
		if l.ch == '"' && l.closesRaw(hashes) {
			for range hashes + 1 {
				l.advance()
			}
			return token.STRING, ""
		}
		l.advance()
	}
}

func (l *Lexer) closesRaw(hashes int) bool {
	pos := l.readPosition
	for range hashes {
		if pos >= len(l.input) || l.input[pos] != '#' {
			return false
		}
		pos++
	}
	return true
}

func (l *Lexer) readChar() (token.Type, string) {
	l.advance() // consume opening quote
	for l.ch != '\'' {
		if l.ch == -1 || l.ch == '\n' {
			return token.ILLEGAL, "unterminated character literal"
		}
		if l.ch == '\\' {
			l.advance()
		}
		l.advance()
	}
	l.advance() // consume closing quote
	return token.CHAR, ""
}

func (l *Lexer) readNumber() (token.Type, string) {
	start := l.position
	isFloat := false

	if l.ch == '0' && isRadixMarker(l.peekRune()) {
		l.advance()
		l.advance()
		if !isHexDigit(l.ch) {
			return token.ILLEGAL, fmt.Sprintf("invalid number %q", string(l.input[start:l.position]))
		}
		for isHexDigit(l.ch) || l.ch == '_' {
			l.advance()
		}
		for isIdentifierChar(l.ch) {
			l.advance()
		}
		return token.INT, ""
	}

	l.consumeDigits()
	if l.ch == '.' {
		next := l.peekRune()
		if isDigit(next) || !isIdentifierStart(next) && next != '.' {
			isFloat = true
			l.advance()
			l.consumeDigits()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekRune()
		if isDigit(next) || (next == '+' || next == '-') && isDigit(l.runeAt(l.readPosition+1)) {
			isFloat = true
			l.advance()
			if l.ch == '+' || l.ch == '-' {
				l.advance()
			}
			l.consumeDigits()
		}
	}
	if !containsDigit(l.input[start:l.position]) {
		return token.ILLEGAL, fmt.Sprintf("invalid number %q", string(l.input[start:l.position]))
	}
	suffix := l.position
	for isIdentifierChar(l.ch) {
		l.advance()
	}
	switch string(l.input[suffix:l.position]) {
	case "":
	case "f32", "f64":
		isFloat = true
	case "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize":
		if isFloat {
			return token.ILLEGAL, fmt.Sprintf("invalid number %q", string(l.input[start:l.position]))
		}
	default:
		return token.ILLEGAL, fmt.Sprintf("invalid number %q", string(l.input[start:l.position]))
	}
	if isFloat {
		return token.FLOAT, ""
	}
	return token.INT, ""
}

func (l *Lexer) consumeDigits() {
	for isDigit(l.ch) || l.ch == '_' {
		l.advance()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentifierChar(l.ch) {
		l.advance()
	}
	return string(l.input[start:l.position])
}

func isWhitespace(ch rune) bool {
	return ch >= 0 && unicode.IsSpace(ch) || ch == '\u200e' || ch == '\u200f'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func containsDigit(b []byte) bool {
	for _, c := range b {
		if isDigit(rune(c)) {
			return true
		}
	}
	return false
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isRadixMarker(ch rune) bool {
	switch ch {
	case 'x', 'X', 'b', 'B', 'o', 'O':
		return true
	}
	return false
}

func isIdentifierStart(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentifierChar(ch rune) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
