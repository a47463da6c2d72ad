package formatter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-ronfmt/ast"
)

// wsPolicy decides what a whitespace run emits once its comments are
// written.
type wsPolicy int

const (
	// wsMinimal emits only the comments.
	wsMinimal wsPolicy = iota
	// wsSingle also emits the separator still owed after the last comment.
	wsSingle
	// wsNewline ends the run with a line break and indentation unless a
	// line comment already did.
	wsNewline
)

// writeWs renders a whitespace run. Space tokens are dropped; comments are
// kept in order and padded.
func (f *Formatter) writeWs(ws ast.Whitespace, policy wsPolicy) {
	owed := " "
	if f.out.Len() == f.start {
		owed = ""
	}

	for _, t := range ws {
		switch t.Kind {
		case ast.LineComment:
			// A comment at the end of the input may carry the \r of a
			// line break that never got its \n.
			text := strings.TrimSuffix(t.Text, "\r")
			f.out.WriteString(owed)
			f.out.WriteString("//")
			if text != "" && !startsWithSpace(text) {
				f.out.WriteByte(' ')
			}
			f.out.WriteString(text)
			f.out.WriteString(f.nl)
			f.writeIndent()
			owed = ""
		case ast.BlockComment:
			f.out.WriteString(owed)
			f.out.WriteString("/*")
			if !startsWithSpace(t.Text) {
				f.out.WriteByte(' ')
			}
			f.out.WriteString(t.Text)
			if !endsWithSpace(t.Text) {
				f.out.WriteByte(' ')
			}
			f.out.WriteString("*/")
			owed = " "
		}
	}

	switch policy {
	case wsSingle:
		f.out.WriteString(owed)
	case wsNewline:
		if owed != "" {
			f.out.WriteString(f.nl)
			f.writeIndent()
		}
	}
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}
