package ronfmt

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/KimNorgaard/go-ronfmt/internal/formatter"
	"github.com/KimNorgaard/go-ronfmt/internal/lexer"
	"github.com/KimNorgaard/go-ronfmt/internal/parser"
)

// Unmarshaler is the interface implemented by types that can unmarshal a
// RON value themselves. The input is the value's source text.
type Unmarshaler interface {
	UnmarshalRON([]byte) error
}

// Parse parses src into a loss-less syntax tree. On a syntax error the
// returned error is an errors.ParseErrors.
func Parse(src []byte, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(src, o)
}

func parse(src []byte, o *options) (*ast.Document, error) {
	return parser.New(lexer.New(src), o.maxDepth).Parse()
}

// Format parses src and returns it in canonical layout. Comments,
// extension headers and the newline convention are kept.
func Format(src []byte, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := parse(src, o)
	if err != nil {
		return nil, err
	}
	return format(doc, o)
}

// FormatDocument renders doc in canonical layout.
func FormatDocument(doc *ast.Document, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return format(doc, o)
}

func format(doc *ast.Document, o *options) ([]byte, error) {
	var buf bytes.Buffer
	if err := formatter.New(&buf, o.maxDepth).Format(doc); err != nil {
		return nil, fmt.Errorf("ronfmt: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses src and returns its value in the representation described
// in package value.
func Decode(src []byte, opts ...Option) (any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := parse(src, o)
	if err != nil {
		return nil, err
	}
	ds := &decodeState{maxDepth: o.maxDepth}
	return ds.decodeValue(doc.Value.Content)
}

// Unmarshal parses src and stores the result in the value pointed to by v.
//
// Struct fields are matched by name, or by the name in a `ron:"name"` tag,
// falling back to a case-insensitive match; `ron:"-"` skips a field. None
// sets a pointer to nil and Some(x) stores x. Tuples fill slices, arrays
// and struct fields in order. A bare identifier such as an enum variant
// unmarshals into a string. Into an empty interface the value is stored as
// Decode returns it.
func Unmarshal(src []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("ronfmt: Unmarshal(non-pointer %T or nil)", v)
	}

	doc, err := parse(src, o)
	if err != nil {
		return err
	}
	ds := &decodeState{maxDepth: o.maxDepth}
	return ds.mapValue(doc.Value.Content, rv.Elem())
}
