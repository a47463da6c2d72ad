package ast

import "strings"

// String returns the document exactly as it was parsed.
func (d *Document) String() string {
	p := &printer{}
	for _, ext := range d.Extensions {
		p.ws(ext.Leading)
		p.b.WriteString("#")
		p.ws(ext.AfterPound)
		p.b.WriteString("!")
		p.ws(ext.AfterBang)
		p.b.WriteString("[")
		p.ws(ext.AfterBracket)
		p.b.WriteString("enable")
		p.ws(ext.AfterEnable)
		p.b.WriteString("(")
		writeSequence(p, ext.Names, func(name string) error {
			p.b.WriteString(name)
			return nil
		})
		p.b.WriteString(")")
		p.ws(ext.AfterParen)
		p.b.WriteString("]")
	}
	p.ws(d.Value.Leading)
	if d.Value.Content != nil {
		_ = d.Value.Content.Accept(p)
	}
	p.ws(d.TrailingWs)
	return p.b.String()
}

// String returns the source text of ws.
func (ws Whitespace) String() string {
	p := &printer{}
	p.ws(ws)
	return p.b.String()
}

func sourceText(v Value) string {
	p := &printer{}
	_ = v.Accept(p)
	return p.b.String()
}

// printer reproduces the source of a tree. It never fails.
type printer struct {
	b strings.Builder
}

func (p *printer) ws(ws Whitespace) {
	for _, t := range ws {
		switch t.Kind {
		case Space:
			p.b.WriteString(t.Text)
		case LineComment:
			p.b.WriteString("//")
			p.b.WriteString(t.Text)
		case BlockComment:
			p.b.WriteString("/*")
			p.b.WriteString(t.Text)
			p.b.WriteString("*/")
		}
	}
}

func writeSequence[T any](p *printer, seq Sequence[T], item func(T) error) {
	for i, it := range seq.Items {
		p.ws(it.Leading)
		_ = item(it.Content)
		p.ws(it.Following)
		if i < len(seq.Items)-1 || seq.TrailingComma {
			p.b.WriteString(",")
		}
	}
	p.ws(seq.TrailingWs)
}

func (p *printer) ident(id *FollowedWs[string]) {
	if id == nil {
		return
	}
	p.b.WriteString(id.Content)
	p.ws(id.Following)
}

func (p *printer) field(key string, afterKey Whitespace, value LeadingWs[Value]) error {
	p.b.WriteString(key)
	p.ws(afterKey)
	p.b.WriteString(":")
	p.ws(value.Leading)
	return value.Content.Accept(p)
}

func (p *printer) literal(text string) error {
	p.b.WriteString(text)
	return nil
}

func (p *printer) VisitInt(n *Int) error     { return p.literal(n.Text) }
func (p *printer) VisitFloat(n *Float) error { return p.literal(n.Text) }
func (p *printer) VisitBool(n *Bool) error   { return p.literal(n.Text) }
func (p *printer) VisitUnit(n *Unit) error   { return p.literal(n.Text) }
func (p *printer) VisitChar(n *Char) error   { return p.literal(n.Text) }
func (p *printer) VisitStr(n *Str) error     { return p.literal(n.Text) }

func (p *printer) VisitList(n *List) error {
	p.b.WriteString("[")
	writeSequence(p, n.Elems, func(v Value) error { return v.Accept(p) })
	p.b.WriteString("]")
	return nil
}

func (p *printer) VisitMap(n *Map) error {
	p.b.WriteString("{")
	writeSequence(p, n.Entries, func(e *MapEntry) error {
		return p.field(e.Key, e.AfterKey, e.Value)
	})
	p.b.WriteString("}")
	return nil
}

func (p *printer) VisitTuple(n *Tuple) error {
	p.ident(n.Ident)
	p.b.WriteString("(")
	writeSequence(p, n.Fields, func(v Value) error { return v.Accept(p) })
	p.b.WriteString(")")
	return nil
}

func (p *printer) VisitStruct(n *Struct) error {
	p.ident(n.Ident)
	p.b.WriteString("(")
	writeSequence(p, n.Fields, func(f *NamedField) error {
		return p.field(f.Key, f.AfterKey, f.Value)
	})
	p.b.WriteString(")")
	return nil
}
