package formatter

import "github.com/KimNorgaard/go-ronfmt/ast"

func (f *Formatter) writeExtension(ext *ast.Extension) {
	f.writeWs(ext.Leading, wsMinimal)
	f.out.WriteByte('#')
	f.writeWs(ext.AfterPound, wsMinimal)
	f.out.WriteByte('!')
	f.writeWs(ext.AfterBang, wsMinimal)
	f.out.WriteByte('[')
	f.writeWs(ext.AfterBracket, wsMinimal)
	f.out.WriteString("enable")
	f.writeWs(ext.AfterEnable, wsMinimal)
	f.out.WriteByte('(')
	// Names are plain identifiers; writing them cannot fail.
	_ = writeMinimal(f, ext.Names, func(name string) error {
		f.out.WriteString(name)
		return nil
	})
	f.out.WriteByte(')')
	f.writeWs(ext.AfterParen, wsMinimal)
	f.out.WriteByte(']')
}
