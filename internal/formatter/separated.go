package formatter

import "github.com/KimNorgaard/go-ronfmt/ast"

// writeMinimal renders seq on the current line: items joined by commas,
// no comma after the last one.
func writeMinimal[T any](f *Formatter, seq ast.Sequence[T], item func(T) error) error {
	for i, it := range seq.Items {
		if i == 0 {
			f.writeWs(it.Leading, wsMinimal)
		} else {
			f.out.WriteByte(',')
			f.writeWs(it.Leading, wsSingle)
		}
		if err := item(it.Content); err != nil {
			return err
		}
		f.writeWs(it.Following, wsMinimal)
	}
	f.writeWs(seq.TrailingWs, wsMinimal)
	return nil
}

// writeSplit renders one item per line, one level deeper, each followed by
// a comma. The closing delimiter goes back to the current indent.
func writeSplit[T any](f *Formatter, seq ast.Sequence[T], item func(T) error) error {
	f.indent++
	for _, it := range seq.Items {
		f.writeWs(it.Leading, wsNewline)
		if err := item(it.Content); err != nil {
			f.indent--
			return err
		}
		f.writeWs(it.Following, wsMinimal)
		f.out.WriteByte(',')
	}
	f.indent--
	f.writeWs(seq.TrailingWs, wsNewline)
	return nil
}
