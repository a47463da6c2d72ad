package parser

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/KimNorgaard/go-ronfmt/errors"
	"github.com/KimNorgaard/go-ronfmt/internal/lexer"
	"github.com/KimNorgaard/go-ronfmt/internal/token"
)

// DefaultMaxDepth is the nesting limit used when none is given.
const DefaultMaxDepth = 1000

// Parser builds a loss-less syntax tree: every whitespace and comment token
// ends up in exactly one ast.Whitespace slot, in source order.
type Parser struct {
	l      *lexer.Lexer
	src    []byte
	tokens []token.Token
	pos    int

	curToken token.Token

	depth    int
	maxDepth int
}

// New creates a new parser. A maxDepth of zero or less selects
// DefaultMaxDepth.
func New(l *lexer.Lexer, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &Parser{
		l:        l,
		src:      l.Source(),
		tokens:   l.Tokenize(),
		maxDepth: maxDepth,
	}
	p.curToken = p.tokens[0]
	return p
}

// Parse parses the RON document. On failure the error is an
// errors.ParseErrors.
func (p *Parser) Parse() (*ast.Document, error) {
	doc := &ast.Document{Newline: ast.LF}
	if p.l.Newline() == string(ast.CRLF) {
		doc.Newline = ast.CRLF
	}

	for {
		lead := p.whitespace()
		if !p.curTokenIs(token.POUND) {
			doc.Value.Leading = lead
			break
		}
		ext, err := p.parseExtension(lead)
		if err != nil {
			return nil, err
		}
		doc.Extensions = append(doc.Extensions, ext)
	}

	if p.curTokenIs(token.EOF) {
		return nil, p.errorf(p.curToken, "expected a value, found end of input")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	doc.Value.Content = v
	doc.TrailingWs = p.whitespace()

	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected("end of input")
	}
	return doc, nil
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekPastTrivia returns the first non-trivia token at or after index i.
func (p *Parser) peekPastTrivia(i int) (token.Token, int) {
	for i < len(p.tokens)-1 && p.tokens[i].Type.IsTrivia() {
		i++
	}
	return p.tokens[i], i
}

// whitespace consumes a run of whitespace and comment tokens.
func (p *Parser) whitespace() ast.Whitespace {
	var ws ast.Whitespace
	for {
		lit := p.curToken.Literal
		switch p.curToken.Type {
		case token.WHITESPACE:
			ws = append(ws, ast.WsToken{Kind: ast.Space, Text: lit})
		case token.LINE_COMMENT:
			ws = append(ws, ast.WsToken{Kind: ast.LineComment, Text: strings.TrimPrefix(lit, "//")})
		case token.BLOCK_COMMENT:
			ws = append(ws, ast.WsToken{Kind: ast.BlockComment, Text: lit[2 : len(lit)-2]})
		default:
			return ws
		}
		p.nextToken()
	}
}

func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	tok := p.curToken
	if tok.Type != t {
		return tok, p.unexpected(what)
	}
	p.nextToken()
	return tok, nil
}

func (p *Parser) enter(tok token.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorf(tok, "maximum nesting depth of %d exceeded", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) error {
	return errors.ParseErrors{{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}}
}

func (p *Parser) unexpected(want string) error {
	tok := p.curToken
	switch tok.Type {
	case token.ILLEGAL:
		return p.errorf(tok, "%s", tok.Literal)
	case token.EOF:
		return p.errorf(tok, "expected %s, found end of input", want)
	default:
		return p.errorf(tok, "expected %s, found %q", want, tok.Literal)
	}
}

func (p *Parser) parseExtension(lead ast.Whitespace) (*ast.Extension, error) {
	ext := &ast.Extension{Leading: lead}
	p.nextToken() // consume '#'
	ext.AfterPound = p.whitespace()
	if _, err := p.expect(token.BANG, "'!'"); err != nil {
		return nil, err
	}
	ext.AfterBang = p.whitespace()
	if _, err := p.expect(token.LBRACK, "'['"); err != nil {
		return nil, err
	}
	ext.AfterBracket = p.whitespace()
	if !p.curTokenIs(token.IDENT) || p.curToken.Literal != "enable" {
		return nil, p.unexpected("'enable'")
	}
	p.nextToken()
	ext.AfterEnable = p.whitespace()
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	names, err := parseSequence(p, token.RPAREN, func() (string, error) {
		tok, err := p.expect(token.IDENT, "an extension name")
		return tok.Literal, err
	})
	if err != nil {
		return nil, err
	}
	ext.Names = names
	ext.AfterParen = p.whitespace()
	if _, err := p.expect(token.RBRACK, "']'"); err != nil {
		return nil, err
	}
	return ext, nil
}

// parseSequence parses comma separated items up to and including the
// closing token. The current token is the first one after the opening
// delimiter.
func parseSequence[T any](p *Parser, closing token.Type, item func() (T, error)) (ast.Sequence[T], error) {
	var seq ast.Sequence[T]
	for {
		lead := p.whitespace()
		if p.curTokenIs(closing) {
			seq.TrailingWs = lead
			p.nextToken()
			return seq, nil
		}
		content, err := item()
		if err != nil {
			return seq, err
		}
		seq.Items = append(seq.Items, ast.WrappedWs[T]{
			Leading:   lead,
			Content:   content,
			Following: p.whitespace(),
		})
		switch {
		case p.curTokenIs(token.COMMA):
			seq.TrailingComma = true
			p.nextToken()
		case p.curTokenIs(closing):
			seq.TrailingComma = false
			p.nextToken()
			return seq, nil
		default:
			return seq, p.unexpected(fmt.Sprintf("',' or '%s'", closing))
		}
	}
}

func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.curToken
	pos := ast.Pos{Line: tok.Line, Column: tok.Column}

	switch tok.Type {
	case token.INT:
		p.nextToken()
		return &ast.Int{Pos: pos, Text: tok.Literal}, nil
	case token.FLOAT:
		p.nextToken()
		return &ast.Float{Pos: pos, Text: tok.Literal}, nil
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.Bool{Pos: pos, Text: tok.Literal}, nil
	case token.CHAR:
		p.nextToken()
		return &ast.Char{Pos: pos, Text: tok.Literal}, nil
	case token.STRING:
		p.nextToken()
		return &ast.Str{Pos: pos, Text: tok.Literal}, nil
	case token.LBRACK:
		return p.parseList(pos)
	case token.LBRACE:
		return p.parseMap(pos)
	case token.LPAREN:
		return p.parseParenthesized(nil, pos)
	case token.IDENT:
		p.nextToken()
		if next, _ := p.peekPastTrivia(p.pos); next.Type == token.LPAREN {
			ident := &ast.FollowedWs[string]{Content: tok.Literal, Following: p.whitespace()}
			return p.parseParenthesized(ident, pos)
		}
		return &ast.Unit{Pos: pos, Text: tok.Literal}, nil
	default:
		return nil, p.unexpected("a value")
	}
}

func (p *Parser) parseList(pos ast.Pos) (ast.Value, error) {
	if err := p.enter(p.curToken); err != nil {
		return nil, err
	}
	defer p.leave()

	p.nextToken() // consume '['
	elems, err := parseSequence(p, token.RBRACK, p.parseValue)
	if err != nil {
		return nil, err
	}
	return &ast.List{Pos: pos, Elems: elems}, nil
}

func (p *Parser) parseMap(pos ast.Pos) (ast.Value, error) {
	if err := p.enter(p.curToken); err != nil {
		return nil, err
	}
	defer p.leave()

	p.nextToken() // consume '{'
	entries, err := parseSequence(p, token.RBRACE, p.parseMapEntry)
	if err != nil {
		return nil, err
	}
	return &ast.Map{Pos: pos, Entries: entries}, nil
}

func (p *Parser) parseMapEntry() (*ast.MapEntry, error) {
	start := p.pos
	key, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	entry := &ast.MapEntry{
		Key:      p.sourceText(start, p.pos),
		KeyValue: key,
		AfterKey: p.whitespace(),
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	entry.Value.Leading = p.whitespace()
	if entry.Value.Content, err = p.parseValue(); err != nil {
		return nil, err
	}
	return entry, nil
}

// parseParenthesized parses the parenthesized part of a tuple, a struct or
// the unit value (). The current token is '('.
func (p *Parser) parseParenthesized(ident *ast.FollowedWs[string], pos ast.Pos) (ast.Value, error) {
	if ident == nil && p.tokens[p.pos+1].Type == token.RPAREN {
		p.nextToken()
		p.nextToken()
		return &ast.Unit{Pos: pos, Text: "()"}, nil
	}

	if err := p.enter(p.curToken); err != nil {
		return nil, err
	}
	defer p.leave()

	first, i := p.peekPastTrivia(p.pos + 1)
	isStruct := false
	if first.Type == token.IDENT {
		next, _ := p.peekPastTrivia(i + 1)
		isStruct = next.Type == token.COLON
	}

	p.nextToken() // consume '('
	if !isStruct {
		fields, err := parseSequence(p, token.RPAREN, p.parseValue)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Pos: pos, Ident: ident, Fields: fields}, nil
	}

	fields, err := parseSequence(p, token.RPAREN, p.parseNamedField)
	if err != nil {
		return nil, err
	}
	return &ast.Struct{Pos: pos, Ident: ident, Fields: fields}, nil
}

func (p *Parser) parseNamedField() (*ast.NamedField, error) {
	key, err := p.expect(token.IDENT, "a field name")
	if err != nil {
		return nil, err
	}
	field := &ast.NamedField{Key: key.Literal, AfterKey: p.whitespace()}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	field.Value.Leading = p.whitespace()
	if field.Value.Content, err = p.parseValue(); err != nil {
		return nil, err
	}
	return field, nil
}

// sourceText returns the source covered by tokens [from, to).
func (p *Parser) sourceText(from, to int) string {
	if from >= to {
		return ""
	}
	return string(p.src[p.tokens[from].Offset:p.tokens[to-1].End()])
}
