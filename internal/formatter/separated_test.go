package formatter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/stretchr/testify/require"
)

func TestWriteSplitRestoresIndentOnError(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf, 0)
	f.indent = 2

	errItem := errors.New("item failed")
	seq := ast.Sequence[int]{Items: []ast.WrappedWs[int]{{Content: 1}, {Content: 2}}}
	calls := 0
	err := writeSplit(f, seq, func(n int) error {
		calls++
		if n == 2 {
			return errItem
		}
		buf.WriteString("1")
		return nil
	})
	require.ErrorIs(t, err, errItem)
	require.Equal(t, 2, calls)
	require.Equal(t, 2, f.indent)

	require.NoError(t, writeSplit(f, seq, func(int) error { return nil }))
	require.Equal(t, 2, f.indent)
}
