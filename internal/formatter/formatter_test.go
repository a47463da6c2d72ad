package formatter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/KimNorgaard/go-ronfmt/internal/formatter"
	"github.com/KimNorgaard/go-ronfmt/internal/lexer"
	"github.com/KimNorgaard/go-ronfmt/internal/parser"
	"github.com/stretchr/testify/require"
)

func format(t *testing.T, input string) string {
	t.Helper()
	doc, err := parser.New(lexer.New([]byte(input)), 0).Parse()
	require.NoError(t, err, "parser has errors")

	var buf bytes.Buffer
	require.NoError(t, formatter.New(&buf, 0).Format(doc))
	return buf.String()
}

var testCases = []struct {
	name     string
	input    string
	expected string
}{
	{
		name:     "map",
		input:    "{a:1,b:2}",
		expected: "{\n    a: 1,\n    b: 2,\n}\n",
	},
	{
		name:     "three field tuple",
		input:    "(1,2,3)",
		expected: "(\n    1,\n    2,\n    3,\n)\n",
	},
	{
		name:     "one field tuple",
		input:    "(1)",
		expected: "(1)\n",
	},
	{
		name:     "one field tuple with padding",
		input:    "Some( 1 , )",
		expected: "Some(1)\n",
	},
	{
		name:     "one field tuple wrapping a list",
		input:    "Some([1,2])",
		expected: "Some([\n    1,\n    2,\n])\n",
	},
	{
		name:     "struct with one field",
		input:    "Point(x:1)",
		expected: "Point(\n    x: 1,\n)\n",
	},
	{
		name:     "named tuple with space before paren",
		input:    "Pair (1, 2)",
		expected: "Pair(\n    1,\n    2,\n)\n",
	},
	{
		name:     "empty list",
		input:    "[]",
		expected: "[\n]\n",
	},
	{
		name:     "unit",
		input:    "()",
		expected: "()\n",
	},
	{
		name:     "empty tuple",
		input:    "( )",
		expected: "()\n",
	},
	{
		name:     "empty named tuple",
		input:    "Empty()",
		expected: "Empty()\n",
	},
	{
		name:     "scalars copied verbatim",
		input:    "[0x1F_u8, 1e3, -inf, 'x', b\"\\x00\", r#\"raw\"#, None]",
		expected: "[\n    0x1F_u8,\n    1e3,\n    -inf,\n    'x',\n    b\"\\x00\",\n    r#\"raw\"#,\n    None,\n]\n",
	},
	{
		name:  "nested",
		input: `Config(list:[1,(2,3)],opt:Some("x"))`,
		expected: "Config(\n" +
			"    list: [\n" +
			"        1,\n" +
			"        (\n" +
			"            2,\n" +
			"            3,\n" +
			"        ),\n" +
			"    ],\n" +
			"    opt: Some(\"x\"),\n" +
			")\n",
	},
	{
		name:     "map with composite keys",
		input:    `{ (1,2) : "a", Some( 3 ): "b" }`,
		expected: "{\n    (1,2): \"a\",\n    Some( 3 ): \"b\",\n}\n",
	},
	{
		name:     "item comments",
		input:    "[1, // one\n2 /* two */]",
		expected: "[\n    1, // one\n    2 /* two */,\n]\n",
	},
	{
		name:     "comment after last comma",
		input:    "(\n  a: 1, // x\n)",
		expected: "(\n    a: 1, // x\n)\n",
	},
	{
		name:     "block comment before value",
		input:    "{a: /* c */ 1}",
		expected: "{\n    a: /* c */ 1,\n}\n",
	},
	{
		name:     "line comment before value",
		input:    "{a: // c\n1}",
		expected: "{\n    a: // c\n    1,\n}\n",
	},
	{
		name:     "comment padding",
		input:    "[/*a*/1,//b\n2,/*\tc */3]",
		expected: "[ /* a */\n    1, // b\n    2, /*\tc */\n    3,\n]\n",
	},
	{
		name:     "empty line comment",
		input:    "//\n1",
		expected: "//\n1\n",
	},
	{
		name:     "leading comment",
		input:    "// head\n\n\n42",
		expected: "// head\n42\n",
	},
	{
		name:     "trailing comment",
		input:    "1 // end",
		expected: "1 // end\n",
	},
	{
		name:     "trailing whitespace collapses",
		input:    "1\n\n\n",
		expected: "1\n",
	},
	{
		name:     "extensions",
		input:    "#![enable( implicit_some )]\n(a: 1)",
		expected: "#![enable(implicit_some)]\n(\n    a: 1,\n)\n",
	},
	{
		name:     "extensions with comment",
		input:    "# ! [enable(a, b,)]\n// config\nFoo",
		expected: "#![enable(a, b)] // config\nFoo\n",
	},
	{
		name:     "crlf",
		input:    "{a:1,\r\nb:\"x\ny\"}",
		expected: "{\r\n    a: 1,\r\n    b: \"x\r\ny\",\r\n}\r\n",
	},
	{
		name:     "lf string normalized",
		input:    "[\n\"x\r\ny\"]",
		expected: "[\n    \"x\ny\",\n]\n",
	},
}

func TestFormat(t *testing.T) {
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, format(t, tc.input))
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			once := format(t, tc.input)
			require.Equal(t, once, format(t, once))
		})
	}
}

func TestTupleArity(t *testing.T) {
	for n := 0; n <= 4; n++ {
		fields := make([]string, n)
		for i := range fields {
			fields[i] = "1"
		}
		out := format(t, "T("+strings.Join(fields, ",")+")")
		body := strings.TrimSuffix(out, "\n")
		if n <= 1 {
			require.NotContains(t, body, "\n", "%d fields", n)
			continue
		}
		require.Equal(t, n+2, strings.Count(out, "\n"), "%d fields", n)
		require.True(t, strings.HasSuffix(out, ",\n)\n"), "%d fields: %q", n, out)
	}
}

func TestMaxDepth(t *testing.T) {
	doc, err := parser.New(lexer.New([]byte("[[[1]]]")), 0).Parse()
	require.NoError(t, err)

	buf := bytes.NewBufferString("prefix")
	err = formatter.New(buf, 2).Format(doc)
	require.ErrorIs(t, err, formatter.ErrMaxDepth)
	require.Equal(t, "prefix", buf.String())

	require.NoError(t, formatter.New(buf, 3).Format(doc))
	require.Equal(t, "prefix[\n    [\n        [\n            1,\n        ],\n    ],\n]\n", buf.String())
}

func TestFormatWithoutNewline(t *testing.T) {
	doc := &ast.Document{
		Value: ast.LeadingWs[ast.Value]{Content: &ast.Tuple{
			Fields: ast.Sequence[ast.Value]{Items: []ast.WrappedWs[ast.Value]{
				{Content: &ast.Int{Text: "1"}},
				{Content: &ast.Int{Text: "2"}},
			}},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, formatter.New(&buf, 0).Format(doc))
	require.Equal(t, "(\n    1,\n    2,\n)\n", buf.String())
}

func TestFormatEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, formatter.New(&buf, 0).Format(&ast.Document{}))
	require.Zero(t, buf.Len())
}
