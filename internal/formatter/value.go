package formatter

import (
	"strings"

	"github.com/KimNorgaard/go-ronfmt/ast"
)

var _ ast.Visitor = (*Formatter)(nil)

func (f *Formatter) writeValue(v ast.Value) error {
	return v.Accept(f)
}

func (f *Formatter) VisitInt(n *ast.Int) error     { return f.literal(n.Text) }
func (f *Formatter) VisitFloat(n *ast.Float) error { return f.literal(n.Text) }
func (f *Formatter) VisitBool(n *ast.Bool) error   { return f.literal(n.Text) }
func (f *Formatter) VisitUnit(n *ast.Unit) error   { return f.literal(n.Text) }
func (f *Formatter) VisitChar(n *ast.Char) error   { return f.literal(n.Text) }

func (f *Formatter) literal(text string) error {
	f.out.WriteString(text)
	return nil
}

// VisitStr copies the literal with its line breaks in the document's
// convention.
func (f *Formatter) VisitStr(n *ast.Str) error {
	s := strings.ReplaceAll(n.Text, "\r\n", "\n")
	if f.nl != "\n" {
		s = strings.ReplaceAll(s, "\n", f.nl)
	}
	return f.literal(s)
}

func (f *Formatter) VisitList(n *ast.List) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	f.out.WriteByte('[')
	if err := writeSplit(f, n.Elems, f.writeValue); err != nil {
		return err
	}
	f.out.WriteByte(']')
	return nil
}

func (f *Formatter) VisitMap(n *ast.Map) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	f.out.WriteByte('{')
	err := writeSplit(f, n.Entries, func(e *ast.MapEntry) error {
		return f.writeEntry(e.Key, e.AfterKey, e.Value)
	})
	if err != nil {
		return err
	}
	f.out.WriteByte('}')
	return nil
}

// VisitTuple keeps a tuple of at most one field on one line and splits
// longer ones.
func (f *Formatter) VisitTuple(n *ast.Tuple) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	f.writeIdent(n.Ident)
	f.out.WriteByte('(')
	var err error
	if len(n.Fields.Items) > 1 {
		err = writeSplit(f, n.Fields, f.writeValue)
	} else {
		err = writeMinimal(f, n.Fields, f.writeValue)
	}
	if err != nil {
		return err
	}
	f.out.WriteByte(')')
	return nil
}

// VisitStruct always splits, even a single field.
func (f *Formatter) VisitStruct(n *ast.Struct) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	f.writeIdent(n.Ident)
	f.out.WriteByte('(')
	err := writeSplit(f, n.Fields, func(nf *ast.NamedField) error {
		return f.writeEntry(nf.Key, nf.AfterKey, nf.Value)
	})
	if err != nil {
		return err
	}
	f.out.WriteByte(')')
	return nil
}

func (f *Formatter) writeIdent(ident *ast.FollowedWs[string]) {
	if ident == nil {
		return
	}
	f.out.WriteString(ident.Content)
	f.writeWs(ident.Following, wsMinimal)
}

// writeEntry renders `key: value` for map entries and struct fields.
func (f *Formatter) writeEntry(key string, afterKey ast.Whitespace, value ast.LeadingWs[ast.Value]) error {
	f.out.WriteString(key)
	f.writeWs(afterKey, wsMinimal)
	f.out.WriteByte(':')
	f.writeWs(value.Leading, wsSingle)
	return f.writeValue(value.Content)
}
