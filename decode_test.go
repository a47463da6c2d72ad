package ronfmt_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/KimNorgaard/go-ronfmt"
	"github.com/KimNorgaard/go-ronfmt/internal/testutil"
	"github.com/KimNorgaard/go-ronfmt/value"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	input := `Config(
		name: "x",
		ports: [80, 443],
		tls: Some(true),
		mode: Fast,
		pair: (1, 'c'),
		raw: b"ab",
		m: {1: 2.5, "k": ()},
		empty: ( ),
		wrapped: Meters(3),
	)`

	got, err := ronfmt.Decode([]byte(input))
	require.NoError(t, err)

	want := value.Struct{Name: "Config", Fields: []value.Field{
		{Name: "name", Value: "x"},
		{Name: "ports", Value: []any{int64(80), int64(443)}},
		{Name: "tls", Value: value.Tuple{Name: "Some", Fields: []any{true}}},
		{Name: "mode", Value: value.Unit{Name: "Fast"}},
		{Name: "pair", Value: value.Tuple{Fields: []any{int64(1), value.Char('c')}}},
		{Name: "raw", Value: value.Bytes("ab")},
		{Name: "m", Value: value.Map{
			{Key: int64(1), Value: 2.5},
			{Key: "k", Value: value.Unit{}},
		}},
		{Name: "empty", Value: value.Unit{}},
		{Name: "wrapped", Value: value.Tuple{Name: "Meters", Fields: []any{int64(3)}}},
	}}
	if diff := cmp.Diff(want, got, valueOpts...); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeScalars(t *testing.T) {
	testCases := []struct {
		input    string
		expected any
	}{
		{"42", int64(42)},
		{"18446744073709551615", uint64(math.MaxUint64)},
		{"-1.5", -1.5},
		{"true", true},
		{"'\\u{1F600}'", value.Char('\U0001F600')},
		{"b'A'", value.Byte('A')},
		{`"a\nb"`, "a\nb"},
		{`r#"a\nb"#`, `a\nb`},
		{"()", value.Unit{}},
		{"None", value.Unit{Name: "None"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ronfmt.Decode([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := ronfmt.Decode([]byte(`[1, "\q"]`))
	require.EqualError(t, err, `ronfmt: line 1, column 5: invalid escape sequence \q`)

	_, err = ronfmt.Decode([]byte(`'ab'`))
	require.Error(t, err)

	_, err = ronfmt.Decode([]byte(`[`))
	require.Error(t, err)
}

type Point struct {
	X, Y float64
}

type Server struct {
	Host    string         `ron:"host"`
	Ports   []uint16       `ron:"ports"`
	TLS     *bool          `ron:"tls"`
	Timeout *int           `ron:"timeout"`
	Mode    string         `ron:"mode"`
	Limits  map[string]int `ron:"limits"`
	Origin  Point          `ron:"origin"`
	Tags    [2]string
	Initial rune
	Extra   any `ron:"extra"`
	Ignored string `ron:"-"`
}

func TestUnmarshal(t *testing.T) {
	t.Run("Struct", func(t *testing.T) {
		src := testutil.Read(t, "server.ron")

		timeout := 30
		s := Server{Timeout: &timeout, Ignored: "kept"}
		require.NoError(t, ronfmt.Unmarshal(src, &s))

		tls := true
		require.Equal(t, Server{
			Host:    "localhost",
			Ports:   []uint16{80, 443},
			TLS:     &tls,
			Mode:    "Fast",
			Limits:  map[string]int{"cpu": 2, "mem": 512},
			Origin:  Point{X: 1.5, Y: -2},
			Tags:    [2]string{"a", "b"},
			Initial: 'z',
			Extra:   []any{int64(1), "two"},
			Ignored: "kept",
		}, s)
	})

	t.Run("Scalar Types", func(t *testing.T) {
		var s string
		require.NoError(t, ronfmt.Unmarshal([]byte(`"hello world"`), &s))
		require.Equal(t, "hello world", s)

		var i int8
		require.NoError(t, ronfmt.Unmarshal([]byte(`-0x80`), &i))
		require.Equal(t, int8(-128), i)

		var f float32
		require.NoError(t, ronfmt.Unmarshal([]byte(`7`), &f))
		require.Equal(t, float32(7), f)

		require.NoError(t, ronfmt.Unmarshal([]byte(`-inf`), &f))
		require.True(t, math.IsInf(float64(f), -1))

		var b []byte
		require.NoError(t, ronfmt.Unmarshal([]byte(`b"\x00\x01"`), &b))
		require.Equal(t, []byte{0, 1}, b)

		var c string
		require.NoError(t, ronfmt.Unmarshal([]byte(`'x'`), &c))
		require.Equal(t, "x", c)
	})

	t.Run("Options", func(t *testing.T) {
		var p *int
		require.NoError(t, ronfmt.Unmarshal([]byte(`Some(5)`), &p))
		require.NotNil(t, p)
		require.Equal(t, 5, *p)

		require.NoError(t, ronfmt.Unmarshal([]byte(`None`), &p))
		require.Nil(t, p)

		var n int
		require.NoError(t, ronfmt.Unmarshal([]byte(`Some(7)`), &n))
		require.Equal(t, 7, n)
	})

	t.Run("Maps", func(t *testing.T) {
		var m map[int]string
		require.NoError(t, ronfmt.Unmarshal([]byte(`{1: "a", 2: "b"}`), &m))
		require.Equal(t, map[int]string{1: "a", 2: "b"}, m)

		m = map[int]string{9: "stale"}
		require.NoError(t, ronfmt.Unmarshal([]byte(`{1: "a"}`), &m))
		require.Equal(t, map[int]string{1: "a"}, m)

		var fields map[string]int
		require.NoError(t, ronfmt.Unmarshal([]byte(`(a: 1, b: 2)`), &fields))
		require.Equal(t, map[string]int{"a": 1, "b": 2}, fields)
	})

	t.Run("Tuples", func(t *testing.T) {
		var list []int
		require.NoError(t, ronfmt.Unmarshal([]byte(`(1, 2, 3)`), &list))
		require.Equal(t, []int{1, 2, 3}, list)

		var p Point
		require.NoError(t, ronfmt.Unmarshal([]byte(`Point(1, 2)`), &p))
		require.Equal(t, Point{X: 1, Y: 2}, p)

		require.NoError(t, ronfmt.Unmarshal([]byte(`Wrapper((X: 3, Y: 4))`), &p))
		require.Equal(t, Point{X: 3, Y: 4}, p)
	})

	t.Run("Embedded Structs", func(t *testing.T) {
		type Address struct {
			City       string
			PostalCode string `ron:"postal_code"`
		}
		var person struct {
			Name string
			Address
		}
		input := `(Name: "Jane Doe", City: "London", postal_code: "SW1A 0AA")`
		require.NoError(t, ronfmt.Unmarshal([]byte(input), &person))
		require.Equal(t, "Jane Doe", person.Name)
		require.Equal(t, "London", person.City)
		require.Equal(t, "SW1A 0AA", person.PostalCode)
	})

	t.Run("Interface", func(t *testing.T) {
		var v any
		require.NoError(t, ronfmt.Unmarshal([]byte(`[Some(1)]`), &v))
		require.Equal(t, []any{value.Tuple{Name: "Some", Fields: []any{int64(1)}}}, v)
	})
}

// RawValue implements ronfmt.Unmarshaler and keeps the source text.
type RawValue string

func (r *RawValue) UnmarshalRON(data []byte) error {
	*r = RawValue(data)
	return nil
}

// Version implements encoding.TextUnmarshaler.
type Version struct {
	Major, Minor int
}

func (v *Version) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d.%d", &v.Major, &v.Minor)
	return err
}

// FailingValue implements ronfmt.Unmarshaler and always returns an error.
type FailingValue struct{}

func (*FailingValue) UnmarshalRON([]byte) error {
	return errors.New("custom unmarshal error")
}

func TestUnmarshal_CustomUnmarshaler(t *testing.T) {
	t.Run("Unmarshaler receives source text", func(t *testing.T) {
		var m map[string]RawValue
		require.NoError(t, ronfmt.Unmarshal([]byte(`{"k": Some( 1 )}`), &m))
		require.Equal(t, RawValue("Some( 1 )"), m["k"])
	})

	t.Run("TextUnmarshaler on string value", func(t *testing.T) {
		var v Version
		require.NoError(t, ronfmt.Unmarshal([]byte(`"1.2"`), &v))
		require.Equal(t, Version{Major: 1, Minor: 2}, v)
	})

	t.Run("TextUnmarshaler is not called for non-string value", func(t *testing.T) {
		var v Version
		err := ronfmt.Unmarshal([]byte(`12`), &v)
		require.EqualError(t, err, "ronfmt: cannot unmarshal integer into Go value of type ronfmt_test.Version")
	})

	t.Run("Unmarshaler that returns an error", func(t *testing.T) {
		var v FailingValue
		err := ronfmt.Unmarshal([]byte(`()`), &v)
		require.ErrorContains(t, err, "custom unmarshal error")

		var uerr *ronfmt.UnmarshalerError
		require.ErrorAs(t, err, &uerr)
	})
}
