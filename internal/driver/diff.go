package driver

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type lineOp struct {
	kind byte // ' ', '-' or '+'
	text string
}

// Unified returns a unified line diff from before to after, labelled with
// path. It returns "" when both are equal.
func Unified(path string, before, after []byte) string {
	ops := lineDiff(string(before), string(after))

	// oldAt[k] and newAt[k] count the lines preceding ops[k] on each side.
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	changed := false
	for k, op := range ops {
		oldAt[k+1], newAt[k+1] = oldAt[k], newAt[k]
		if op.kind != '+' {
			oldAt[k+1]++
		}
		if op.kind != '-' {
			newAt[k+1]++
		}
		if op.kind != ' ' {
			changed = true
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s.orig\n+++ %s\n", path, path)
	for i := 0; i < len(ops); {
		if ops[i].kind == ' ' {
			i++
			continue
		}
		start := max(i-diffContext, 0)
		end := i + 1
		for j := i; j < len(ops); j++ {
			if ops[j].kind != ' ' {
				end = j + 1
			} else if j-end >= 2*diffContext {
				break
			}
		}
		stop := min(end+diffContext, len(ops))

		oldCount := oldAt[stop] - oldAt[start]
		newCount := newAt[stop] - newAt[start]
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunkStart(oldAt[start], oldCount), oldCount,
			hunkStart(newAt[start], newCount), newCount)
		for _, op := range ops[start:stop] {
			b.WriteByte(op.kind)
			b.WriteString(op.text)
			if !strings.HasSuffix(op.text, "\n") {
				b.WriteString("\n\\ No newline at end of file\n")
			}
		}
		i = stop
	}
	return b.String()
}

func hunkStart(before, count int) int {
	if count == 0 {
		return before
	}
	return before + 1
}

func lineDiff(a, b string) []lineOp {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		var kind byte
		switch d.Type {
		case diffpatch.DiffEqual:
			kind = ' '
		case diffpatch.DiffDelete:
			kind = '-'
		case diffpatch.DiffInsert:
			kind = '+'
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				ops = append(ops, lineOp{kind: kind, text: line})
			}
		}
	}
	return ops
}
