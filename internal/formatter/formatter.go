package formatter

import (
	"bytes"
	"errors"
	"strings"

	"github.com/KimNorgaard/go-ronfmt/ast"
)

const (
	// DefaultMaxDepth is the nesting limit used when none is given.
	DefaultMaxDepth = 1000

	indentUnit = "    "
)

// ErrMaxDepth is returned when a document nests deeper than the configured
// limit.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

var errNoValue = errors.New("document has no value")

// Formatter renders a syntax tree in canonical layout into a buffer.
type Formatter struct {
	out *bytes.Buffer

	// start is the length of out when Format began; nothing before it is
	// ours to separate from.
	start int

	nl       string
	indent   int
	depth    int
	maxDepth int
}

// New returns a formatter that appends to out. A maxDepth of zero or less
// selects DefaultMaxDepth.
func New(out *bytes.Buffer, maxDepth int) *Formatter {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Formatter{out: out, maxDepth: maxDepth}
}

// Format appends the canonical rendering of doc. On error nothing is
// appended.
func (f *Formatter) Format(doc *ast.Document) error {
	if doc.Value.Content == nil {
		return errNoValue
	}

	f.start = f.out.Len()
	f.nl = string(doc.Newline)
	if f.nl == "" {
		f.nl = string(ast.LF)
	}
	f.indent, f.depth = 0, 0

	for _, ext := range doc.Extensions {
		f.writeExtension(ext)
	}

	// Extensions push the value onto a line of its own.
	if len(doc.Extensions) == 0 {
		f.writeWs(doc.Value.Leading, wsMinimal)
	} else {
		f.writeWs(doc.Value.Leading, wsNewline)
	}
	if err := doc.Value.Content.Accept(f); err != nil {
		f.out.Truncate(f.start)
		return err
	}
	f.writeWs(doc.TrailingWs, wsNewline)
	return nil
}

func (f *Formatter) writeIndent() {
	f.out.WriteString(strings.Repeat(indentUnit, f.indent))
}

func (f *Formatter) enter() error {
	f.depth++
	if f.depth > f.maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (f *Formatter) leave() {
	f.depth--
}
