package ast

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// String returns the source text of the node, byte for byte.
	String() string
}

// Pos is a position in the source. Line and Column start at 1.
type Pos struct {
	Line   int
	Column int
}

// Newline is the line break convention of a document.
type Newline string

const (
	LF   Newline = "\n"
	CRLF Newline = "\r\n"
)

// WsKind is the kind of a whitespace token.
type WsKind int

const (
	Space WsKind = iota
	LineComment
	BlockComment
)

func (k WsKind) String() string {
	switch k {
	case Space:
		return "Space"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	default:
		return "WsKind(?)"
	}
}

// WsToken is one token of a whitespace run. For a Space, Text is the exact
// run of blanks and line breaks. For comments, Text is the body without the
// delimiters: what follows "//" up to the line break, or what lies between
// "/*" and "*/".
type WsToken struct {
	Kind WsKind
	Text string
}

// Whitespace is an ordered run of spaces and comments.
type Whitespace []WsToken

// LeadingWs is content preceded by whitespace.
type LeadingWs[T any] struct {
	Leading Whitespace
	Content T
}

// FollowedWs is content followed by whitespace.
type FollowedWs[T any] struct {
	Content   T
	Following Whitespace
}

// WrappedWs is content with whitespace on both sides.
type WrappedWs[T any] struct {
	Leading   Whitespace
	Content   T
	Following Whitespace
}

// Sequence is a comma separated list of items. TrailingComma records
// whether the source ended the list with a comma; TrailingWs is the
// whitespace after the last comma (or, without items, inside the
// delimiters).
type Sequence[T any] struct {
	Items         []WrappedWs[T]
	TrailingComma bool
	TrailingWs    Whitespace
}

// Document is the root of a parsed RON document.
type Document struct {
	Extensions []*Extension
	Value      LeadingWs[Value]
	TrailingWs Whitespace
	Newline    Newline
}

// Extension is a #![enable(...)] header.
type Extension struct {
	Leading      Whitespace
	AfterPound   Whitespace
	AfterBang    Whitespace
	AfterBracket Whitespace
	AfterEnable  Whitespace
	Names        Sequence[string]
	AfterParen   Whitespace
}

// Value is a RON value. The set of implementations is closed; consumers
// dispatch through Accept so that a new kind of value fails to compile
// until every Visitor handles it.
type Value interface {
	Node
	Accept(v Visitor) error
	valueNode()
}

// Visitor handles each kind of Value.
type Visitor interface {
	VisitInt(*Int) error
	VisitFloat(*Float) error
	VisitBool(*Bool) error
	VisitUnit(*Unit) error
	VisitChar(*Char) error
	VisitStr(*Str) error
	VisitList(*List) error
	VisitMap(*Map) error
	VisitTuple(*Tuple) error
	VisitStruct(*Struct) error
}

// Int is an integer literal such as 42, -0x1f or 7u8.
type Int struct {
	Pos  Pos
	Text string
}

// Float is a float literal such as 1.5, 2e10, inf or NaN.
type Float struct {
	Pos  Pos
	Text string
}

// Bool is true or false.
type Bool struct {
	Pos  Pos
	Text string
}

// Unit is () or a bare identifier naming a unit struct or variant, such
// as None.
type Unit struct {
	Pos  Pos
	Text string
}

// Char is a character literal 'c' or a byte literal b'c'.
type Char struct {
	Pos  Pos
	Text string
}

// Str is a string literal with its quotes: "...", r#"..."#, b"...".
type Str struct {
	Pos  Pos
	Text string
}

// List is [a, b, ...].
type List struct {
	Pos   Pos
	Elems Sequence[Value]
}

// Map is {k: v, ...}.
type Map struct {
	Pos     Pos
	Entries Sequence[*MapEntry]
}

// MapEntry is one key/value pair of a Map. Key is the source text of the
// key; KeyValue is the same key parsed.
type MapEntry struct {
	Key      string
	KeyValue Value
	AfterKey Whitespace
	Value    LeadingWs[Value]
}

// Tuple is Name(a, b) or (a, b). Ident is nil for an unnamed tuple.
type Tuple struct {
	Pos    Pos
	Ident  *FollowedWs[string]
	Fields Sequence[Value]
}

// Struct is Name(field: v, ...) or (field: v, ...). Ident is nil for an
// unnamed struct.
type Struct struct {
	Pos    Pos
	Ident  *FollowedWs[string]
	Fields Sequence[*NamedField]
}

// NamedField is one field of a Struct.
type NamedField struct {
	Key      string
	AfterKey Whitespace
	Value    LeadingWs[Value]
}

func (*Int) valueNode()    {}
func (*Float) valueNode()  {}
func (*Bool) valueNode()   {}
func (*Unit) valueNode()   {}
func (*Char) valueNode()   {}
func (*Str) valueNode()    {}
func (*List) valueNode()   {}
func (*Map) valueNode()    {}
func (*Tuple) valueNode()  {}
func (*Struct) valueNode() {}

func (n *Int) Accept(v Visitor) error    { return v.VisitInt(n) }
func (n *Float) Accept(v Visitor) error  { return v.VisitFloat(n) }
func (n *Bool) Accept(v Visitor) error   { return v.VisitBool(n) }
func (n *Unit) Accept(v Visitor) error   { return v.VisitUnit(n) }
func (n *Char) Accept(v Visitor) error   { return v.VisitChar(n) }
func (n *Str) Accept(v Visitor) error    { return v.VisitStr(n) }
func (n *List) Accept(v Visitor) error   { return v.VisitList(n) }
func (n *Map) Accept(v Visitor) error    { return v.VisitMap(n) }
func (n *Tuple) Accept(v Visitor) error  { return v.VisitTuple(n) }
func (n *Struct) Accept(v Visitor) error { return v.VisitStruct(n) }

func (n *Int) String() string    { return n.Text }
func (n *Float) String() string  { return n.Text }
func (n *Bool) String() string   { return n.Text }
func (n *Unit) String() string   { return n.Text }
func (n *Char) String() string   { return n.Text }
func (n *Str) String() string    { return n.Text }
func (n *List) String() string   { return sourceText(n) }
func (n *Map) String() string    { return sourceText(n) }
func (n *Tuple) String() string  { return sourceText(n) }
func (n *Struct) String() string { return sourceText(n) }
