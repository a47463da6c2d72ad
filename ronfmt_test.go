package ronfmt_test

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-ronfmt"
	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/KimNorgaard/go-ronfmt/errors"
	"github.com/KimNorgaard/go-ronfmt/internal/lexer"
	"github.com/KimNorgaard/go-ronfmt/internal/token"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// valueOpts compares decoded values: NaN equals NaN and big integers
// compare by value.
var valueOpts = []cmp.Option{
	cmpopts.EquateNaNs(),
	cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"map", "{a:1,b:2}", "{\n    a: 1,\n    b: 2,\n}\n"},
		{"tuple", "(1,2,3)", "(\n    1,\n    2,\n    3,\n)\n"},
		{"one field tuple", "(1)", "(1)\n"},
		{"crlf", "[1,\r\n2]", "[\r\n    1,\r\n    2,\r\n]\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ronfmt.Format([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, string(out))
		})
	}
}

func TestFormatParseError(t *testing.T) {
	out, err := ronfmt.Format([]byte("{a: }"))
	require.Nil(t, out)
	require.EqualError(t, err, `ronfmt: parsing error at line 1, column 5: expected a value, found "}"`)

	var perrs errors.ParseErrors
	require.ErrorAs(t, err, &perrs)
	require.Equal(t, 1, perrs[0].Line)
	require.Equal(t, 5, perrs[0].Column)
}

func TestMaxDepthOption(t *testing.T) {
	_, err := ronfmt.Format([]byte("1"), ronfmt.MaxDepth(0))
	require.EqualError(t, err, "ronfmt: max depth must be a positive integer")

	_, err = ronfmt.Format([]byte("[[1]]"), ronfmt.MaxDepth(1))
	require.Error(t, err)

	out, err := ronfmt.Format([]byte("[[1]]"), ronfmt.MaxDepth(2))
	require.NoError(t, err)
	require.Equal(t, "[\n    [\n        1,\n    ],\n]\n", string(out))
}

func TestFormatDocument(t *testing.T) {
	doc, err := ronfmt.Parse([]byte("Point(x: 1, y: 2) // origin\n"))
	require.NoError(t, err)

	s, ok := doc.Value.Content.(*ast.Struct)
	require.True(t, ok, "value is not *ast.Struct, got=%T", doc.Value.Content)
	s.Fields.Items[0].Content.Value.Content = &ast.Int{Text: "10"}

	out, err := ronfmt.FormatDocument(doc)
	require.NoError(t, err)
	require.Equal(t, "Point(\n    x: 10,\n    y: 2,\n) // origin\n", string(out))

	// A tree built by hand is not bound by the parser's depth limit.
	var v ast.Value = &ast.Int{Text: "1"}
	for range 3 {
		v = &ast.List{Elems: ast.Sequence[ast.Value]{Items: []ast.WrappedWs[ast.Value]{{Content: v}}}}
	}
	_, err = ronfmt.FormatDocument(&ast.Document{Value: ast.LeadingWs[ast.Value]{Content: v}}, ronfmt.MaxDepth(2))
	require.ErrorIs(t, err, ronfmt.ErrMaxDepth)
}

func testdataFiles(t *testing.T) map[string][]byte {
	t.Helper()
	files, err := filepath.Glob("testdata/*.ron")
	require.NoError(t, err)

	out := make(map[string][]byte)
	for _, file := range files {
		if strings.Contains(file, "invalid") {
			continue
		}
		src, err := os.ReadFile(file)
		require.NoError(t, err)
		out[file] = src
	}
	require.NotEmpty(t, out)
	return out
}

func TestParseIsLossless(t *testing.T) {
	for file, src := range testdataFiles(t) {
		t.Run(file, func(t *testing.T) {
			doc, err := ronfmt.Parse(src)
			require.NoError(t, err)
			require.Equal(t, string(src), doc.String())
		})
	}
}

func TestFormatPreservesValue(t *testing.T) {
	for file, src := range testdataFiles(t) {
		t.Run(file, func(t *testing.T) {
			out, err := ronfmt.Format(src)
			require.NoError(t, err)

			want, err := ronfmt.Decode(src)
			require.NoError(t, err)
			got, err := ronfmt.Decode(out)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, valueOpts...); diff != "" {
				t.Errorf("decoded value changed (-want +got):\n%s", diff)
			}

			again, err := ronfmt.Format(out)
			require.NoError(t, err)
			require.Equal(t, string(out), string(again), "formatting is not idempotent")
		})
	}
}

func TestFormatPreservesComments(t *testing.T) {
	for file, src := range testdataFiles(t) {
		t.Run(file, func(t *testing.T) {
			out, err := ronfmt.Format(src)
			require.NoError(t, err)

			for _, tok := range lexer.New(src).Tokenize() {
				var text string
				switch tok.Type {
				case token.LINE_COMMENT:
					text = strings.TrimPrefix(tok.Literal, "//")
				case token.BLOCK_COMMENT:
					text = tok.Literal[2 : len(tok.Literal)-2]
				default:
					continue
				}
				require.Contains(t, string(out), strings.TrimSpace(text))
			}
		})
	}
}
