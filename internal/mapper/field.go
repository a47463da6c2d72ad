package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field is an exported struct field a RON field name maps to.
type Field struct {
	Name  string
	Index []int
}

// StructFields describes the decodable fields of a struct type.
type StructFields struct {
	byName  map[string]Field
	ordered []Field
}

// Lookup finds the field for a RON field name. It first attempts a
// case-sensitive match, then falls back to a case-insensitive one.
func (s *StructFields) Lookup(name string) (Field, bool) {
	if f, ok := s.byName[name]; ok {
		return f, true
	}
	f, ok := s.byName[strings.ToLower(name)]
	return f, ok
}

// Ordered returns the fields in declaration order, embedded structs
// flattened in place. Tuples map onto structs positionally in this order.
func (s *StructFields) Ordered() []Field {
	return s.ordered
}

// fieldCache caches the StructFields of each struct type.
var fieldCache sync.Map // map[reflect.Type]*StructFields

// Fields returns the fields of struct type t. It skips unexported fields
// and fields tagged `ron:"-"`, and recurses into embedded structs. The
// result is cached per type.
func Fields(t reflect.Type) *StructFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*StructFields)
	}

	s := &StructFields{byName: make(map[string]Field)}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			index := append(append([]int(nil), idx...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, index)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("ron")
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			if name == "" {
				name = sf.Name
			}

			f := Field{Name: name, Index: index}
			s.ordered = append(s.ordered, f)
			s.byName[name] = f
			if sf.Name != name {
				if _, ok := s.byName[sf.Name]; !ok {
					s.byName[sf.Name] = f
				}
			}
			// Lower-cased aliases never overwrite an exact name.
			for _, alias := range []string{strings.ToLower(name), strings.ToLower(sf.Name)} {
				if _, ok := s.byName[alias]; !ok {
					s.byName[alias] = f
				}
			}
		}
	}
	walk(t, nil)

	actual, _ := fieldCache.LoadOrStore(t, s)
	return actual.(*StructFields)
}
