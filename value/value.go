// Package value holds the Go representation of decoded RON values.
//
// Decoding maps RON onto Go as follows:
//
//	integer          int64, uint64 when only that fits, *big.Int otherwise
//	float            float64
//	bool             bool
//	string           string
//	byte string      Bytes
//	char             Char
//	byte literal     Byte
//	() or Name       Unit
//	[...]            []any
//	{k: v, ...}      Map
//	Name(a, b)       Tuple
//	Name(f: v, ...)  Struct
//
// A tuple without a name and without fields, written ( ), decodes to
// Unit{} like ().
package value

// Unit is () or a bare identifier such as None. Name is empty for ().
type Unit struct {
	Name string
}

// Char is a character literal.
type Char rune

// Byte is a byte literal b'x'.
type Byte byte

// Bytes is a byte string b"...".
type Bytes []byte

// Tuple is a possibly named tuple. Name is empty for an unnamed tuple.
type Tuple struct {
	Name   string
	Fields []any
}

// Struct is a possibly named struct with its fields in source order.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is one named field of a Struct.
type Field struct {
	Name  string
	Value any
}

// Map keeps its entries in source order. Keys may be any value, so a Go
// map cannot hold them.
type Map []Entry

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// Get returns the value of the first field named name.
func (s Struct) Get(name string) (any, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Get returns the value of the first entry whose key is the string key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if k, ok := e.Key.(string); ok && k == key {
			return e.Value, true
		}
	}
	return nil, false
}
