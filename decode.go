package ronfmt

import (
	"encoding"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/KimNorgaard/go-ronfmt/ast"
	"github.com/KimNorgaard/go-ronfmt/internal/lexer"
	"github.com/KimNorgaard/go-ronfmt/internal/mapper"
	"github.com/KimNorgaard/go-ronfmt/value"
)

// decodeState is shared by the generic decoder and the reflection mapper.
type decodeState struct {
	depth    int
	maxDepth int
}

func (ds *decodeState) enter() error {
	ds.depth++
	if ds.depth > ds.maxDepth {
		return fmt.Errorf("ronfmt: %w", ErrMaxDepth)
	}
	return nil
}

func (ds *decodeState) leave() {
	ds.depth--
}

func posErrorf(pos ast.Pos, format string, args ...any) error {
	return fmt.Errorf("ronfmt: line %d, column %d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

// decodeValue converts v into the generic representation described in
// package value.
func (ds *decodeState) decodeValue(v ast.Value) (any, error) {
	d := &valueDecoder{ds: ds}
	if err := v.Accept(d); err != nil {
		return nil, err
	}
	return d.out, nil
}

// valueDecoder produces the generic value of a single node.
type valueDecoder struct {
	ds  *decodeState
	out any
}

var _ ast.Visitor = (*valueDecoder)(nil)

func (d *valueDecoder) VisitInt(n *ast.Int) error {
	i, err := lexer.ParseInt(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	d.out = i
	return nil
}

func (d *valueDecoder) VisitFloat(n *ast.Float) error {
	f, err := lexer.ParseFloat(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	d.out = f
	return nil
}

func (d *valueDecoder) VisitBool(n *ast.Bool) error {
	d.out = n.Text == "true"
	return nil
}

func (d *valueDecoder) VisitUnit(n *ast.Unit) error {
	if n.Text == "()" {
		d.out = value.Unit{}
	} else {
		d.out = value.Unit{Name: n.Text}
	}
	return nil
}

func (d *valueDecoder) VisitChar(n *ast.Char) error {
	r, isByte, err := lexer.UnquoteChar(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	if isByte {
		if r > math.MaxUint8 {
			return posErrorf(n.Pos, "byte literal %s out of range", n.Text)
		}
		d.out = value.Byte(r)
	} else {
		d.out = value.Char(r)
	}
	return nil
}

func (d *valueDecoder) VisitStr(n *ast.Str) error {
	s, isBytes, err := lexer.UnquoteString(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	if isBytes {
		d.out = value.Bytes(s)
	} else {
		d.out = s
	}
	return nil
}

func (d *valueDecoder) VisitList(n *ast.List) error {
	if err := d.ds.enter(); err != nil {
		return err
	}
	defer d.ds.leave()

	out := make([]any, 0, len(n.Elems.Items))
	for _, it := range n.Elems.Items {
		v, err := d.ds.decodeValue(it.Content)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	d.out = out
	return nil
}

func (d *valueDecoder) VisitMap(n *ast.Map) error {
	if err := d.ds.enter(); err != nil {
		return err
	}
	defer d.ds.leave()

	out := make(value.Map, 0, len(n.Entries.Items))
	for _, it := range n.Entries.Items {
		k, err := d.ds.decodeValue(it.Content.KeyValue)
		if err != nil {
			return err
		}
		v, err := d.ds.decodeValue(it.Content.Value.Content)
		if err != nil {
			return err
		}
		out = append(out, value.Entry{Key: k, Value: v})
	}
	d.out = out
	return nil
}

func (d *valueDecoder) VisitTuple(n *ast.Tuple) error {
	if n.Ident == nil && len(n.Fields.Items) == 0 {
		d.out = value.Unit{}
		return nil
	}
	if err := d.ds.enter(); err != nil {
		return err
	}
	defer d.ds.leave()

	out := value.Tuple{Name: identName(n.Ident), Fields: make([]any, 0, len(n.Fields.Items))}
	for _, it := range n.Fields.Items {
		v, err := d.ds.decodeValue(it.Content)
		if err != nil {
			return err
		}
		out.Fields = append(out.Fields, v)
	}
	d.out = out
	return nil
}

func (d *valueDecoder) VisitStruct(n *ast.Struct) error {
	if err := d.ds.enter(); err != nil {
		return err
	}
	defer d.ds.leave()

	out := value.Struct{Name: identName(n.Ident), Fields: make([]value.Field, 0, len(n.Fields.Items))}
	for _, it := range n.Fields.Items {
		v, err := d.ds.decodeValue(it.Content.Value.Content)
		if err != nil {
			return err
		}
		out.Fields = append(out.Fields, value.Field{Name: it.Content.Key, Value: v})
	}
	d.out = out
	return nil
}

func identName(ident *ast.FollowedWs[string]) string {
	if ident == nil {
		return ""
	}
	return ident.Content
}

// mapValue stores the value of v in rv, converting it to rv's type.
func (ds *decodeState) mapValue(v ast.Value, rv reflect.Value) error {
	handled, err := ds.tryCustomUnmarshal(v, rv)
	if err != nil || handled {
		return err
	}

	for rv.Kind() == reflect.Pointer {
		// None clears an option, Some(x) fills it with x.
		if u, ok := v.(*ast.Unit); ok && u.Text == "None" {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if t, ok := v.(*ast.Tuple); ok && identName(t.Ident) == "Some" && len(t.Fields.Items) == 1 {
			v = t.Fields.Items[0].Content
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return ds.mapInterface(v, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("ronfmt: cannot set value of type %s", rv.Type())
	}
	return v.Accept(&reflectMapper{ds: ds, rv: rv})
}

// tryCustomUnmarshal uses an Unmarshaler or, for strings, an
// encoding.TextUnmarshaler when rv implements one. It reports whether it
// did.
func (ds *decodeState) tryCustomUnmarshal(v ast.Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalRON([]byte(v.String())); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isStr := v.(*ast.Str)
		if !isStr {
			return false, nil
		}
		text, _, err := lexer.UnquoteString(s.Text)
		if err != nil {
			return true, posErrorf(s.Pos, "%v", err)
		}
		if err := u.UnmarshalText([]byte(text)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func (ds *decodeState) mapInterface(v ast.Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("ronfmt: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	out, err := ds.decodeValue(v)
	if err != nil {
		return err
	}
	rv.Set(reflect.ValueOf(out))
	return nil
}

// reflectMapper stores a single node into rv.
type reflectMapper struct {
	ds *decodeState
	rv reflect.Value
}

var _ ast.Visitor = (*reflectMapper)(nil)

func (m *reflectMapper) mismatch(kind string) error {
	return fmt.Errorf("ronfmt: cannot unmarshal %s into Go value of type %s", kind, m.rv.Type())
}

func (m *reflectMapper) VisitInt(n *ast.Int) error {
	parsed, err := lexer.ParseInt(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	var b big.Int
	switch i := parsed.(type) {
	case int64:
		b.SetInt64(i)
	case uint64:
		b.SetUint64(i)
	case *big.Int:
		b.Set(i)
	}

	rv := m.rv
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !b.IsInt64() || rv.OverflowInt(b.Int64()) {
			return fmt.Errorf("ronfmt: integer value %s overflows Go value of type %s", n.Text, rv.Type())
		}
		rv.SetInt(b.Int64())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if !b.IsUint64() || rv.OverflowUint(b.Uint64()) {
			return fmt.Errorf("ronfmt: integer value %s overflows Go value of type %s", n.Text, rv.Type())
		}
		rv.SetUint(b.Uint64())
	case reflect.Float32, reflect.Float64:
		f, _ := new(big.Float).SetInt(&b).Float64()
		rv.SetFloat(f)
	default:
		return m.mismatch("integer")
	}
	return nil
}

func (m *reflectMapper) VisitFloat(n *ast.Float) error {
	f, err := lexer.ParseFloat(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	switch m.rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if !math.IsInf(f, 0) && m.rv.OverflowFloat(f) {
			return fmt.Errorf("ronfmt: float value %s overflows Go value of type %s", n.Text, m.rv.Type())
		}
		m.rv.SetFloat(f)
		return nil
	default:
		return m.mismatch("float")
	}
}

func (m *reflectMapper) VisitBool(n *ast.Bool) error {
	if m.rv.Kind() != reflect.Bool {
		return m.mismatch("boolean")
	}
	m.rv.SetBool(n.Text == "true")
	return nil
}

// VisitUnit stores () as the zero value and a bare name, such as an enum
// variant, into a string.
func (m *reflectMapper) VisitUnit(n *ast.Unit) error {
	if n.Text == "()" {
		m.rv.Set(reflect.Zero(m.rv.Type()))
		return nil
	}
	switch m.rv.Kind() {
	case reflect.String:
		m.rv.SetString(n.Text)
	case reflect.Struct:
		m.rv.Set(reflect.Zero(m.rv.Type()))
	default:
		return m.mismatch("unit " + n.Text)
	}
	return nil
}

func (m *reflectMapper) VisitChar(n *ast.Char) error {
	r, _, err := lexer.UnquoteChar(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	switch m.rv.Kind() {
	case reflect.String:
		m.rv.SetString(string(r))
	case reflect.Int32, reflect.Int64, reflect.Int:
		m.rv.SetInt(int64(r))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		if m.rv.OverflowUint(uint64(r)) {
			return fmt.Errorf("ronfmt: character %s overflows Go value of type %s", n.Text, m.rv.Type())
		}
		m.rv.SetUint(uint64(r))
	default:
		return m.mismatch("character")
	}
	return nil
}

func (m *reflectMapper) VisitStr(n *ast.Str) error {
	s, _, err := lexer.UnquoteString(n.Text)
	if err != nil {
		return posErrorf(n.Pos, "%v", err)
	}
	switch {
	case m.rv.Kind() == reflect.String:
		m.rv.SetString(s)
	case m.rv.Kind() == reflect.Slice && m.rv.Type().Elem().Kind() == reflect.Uint8:
		m.rv.SetBytes([]byte(s))
	default:
		return m.mismatch("string")
	}
	return nil
}

func (m *reflectMapper) VisitList(n *ast.List) error {
	if err := m.ds.enter(); err != nil {
		return err
	}
	defer m.ds.leave()

	return m.mapElems("list", n.Elems)
}

// mapElems fills a slice or array from the items of a list or tuple.
func (m *reflectMapper) mapElems(kind string, seq ast.Sequence[ast.Value]) error {
	rv := m.rv
	switch rv.Kind() {
	case reflect.Slice:
		newSlice := reflect.MakeSlice(rv.Type(), len(seq.Items), len(seq.Items))
		for i, it := range seq.Items {
			if err := m.ds.mapValue(it.Content, newSlice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(newSlice)
		return nil
	case reflect.Array:
		if rv.Len() != len(seq.Items) {
			return fmt.Errorf("ronfmt: cannot unmarshal %s of length %d into Go array of length %d", kind, len(seq.Items), rv.Len())
		}
		for i, it := range seq.Items {
			if err := m.ds.mapValue(it.Content, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return m.mismatch(kind)
	}
}

func (m *reflectMapper) VisitMap(n *ast.Map) error {
	if err := m.ds.enter(); err != nil {
		return err
	}
	defer m.ds.leave()

	rv := m.rv
	switch rv.Kind() {
	case reflect.Map:
		mapType := rv.Type()
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(mapType))
		} else {
			rv.Clear()
		}
		for _, it := range n.Entries.Items {
			key := reflect.New(mapType.Key()).Elem()
			if err := m.ds.mapValue(it.Content.KeyValue, key); err != nil {
				return err
			}
			if !key.Comparable() {
				return fmt.Errorf("ronfmt: cannot use map key %s as a key of Go map type %s", it.Content.Key, mapType)
			}
			val := reflect.New(mapType.Elem()).Elem()
			if err := m.ds.mapValue(it.Content.Value.Content, val); err != nil {
				return err
			}
			rv.SetMapIndex(key, val)
		}
		return nil
	case reflect.Struct:
		for _, it := range n.Entries.Items {
			name, ok := keyName(it.Content.KeyValue)
			if !ok {
				return fmt.Errorf("ronfmt: cannot use map key %s as a field name of %s", it.Content.Key, rv.Type())
			}
			if err := m.setField(name, it.Content.Value.Content); err != nil {
				return err
			}
		}
		return nil
	default:
		return m.mismatch("map")
	}
}

// keyName returns the field name a map key addresses: a string or a bare
// identifier.
func keyName(key ast.Value) (string, bool) {
	switch k := key.(type) {
	case *ast.Str:
		s, _, err := lexer.UnquoteString(k.Text)
		return s, err == nil
	case *ast.Unit:
		return k.Text, k.Text != "()"
	default:
		return "", false
	}
}

// setField stores v into the struct field named name. Unknown names are
// ignored.
func (m *reflectMapper) setField(name string, v ast.Value) error {
	f, ok := mapper.Fields(m.rv.Type()).Lookup(name)
	if !ok {
		return nil
	}
	fv, err := m.rv.FieldByIndexErr(f.Index)
	if err != nil || !fv.CanSet() {
		return nil
	}
	return m.ds.mapValue(v, fv)
}

// VisitTuple maps a tuple onto a slice, an array or a struct's fields in
// order. A single field tuple such as Some(x) or Meters(3) stores its
// field directly into anything else.
func (m *reflectMapper) VisitTuple(n *ast.Tuple) error {
	if n.Ident == nil && len(n.Fields.Items) == 0 {
		m.rv.Set(reflect.Zero(m.rv.Type()))
		return nil
	}
	if err := m.ds.enter(); err != nil {
		return err
	}
	defer m.ds.leave()

	switch m.rv.Kind() {
	case reflect.Slice, reflect.Array:
		return m.mapElems("tuple", n.Fields)
	case reflect.Struct:
		if len(n.Fields.Items) == 1 {
			if _, isStruct := n.Fields.Items[0].Content.(*ast.Struct); isStruct {
				return m.ds.mapValue(n.Fields.Items[0].Content, m.rv)
			}
		}
		ordered := mapper.Fields(m.rv.Type()).Ordered()
		if len(ordered) != len(n.Fields.Items) {
			return fmt.Errorf("ronfmt: cannot unmarshal tuple of length %d into Go struct %s with %d fields", len(n.Fields.Items), m.rv.Type(), len(ordered))
		}
		for i, it := range n.Fields.Items {
			fv, err := m.rv.FieldByIndexErr(ordered[i].Index)
			if err != nil {
				return fmt.Errorf("ronfmt: %w", err)
			}
			if err := m.ds.mapValue(it.Content, fv); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(n.Fields.Items) == 1 {
			return m.ds.mapValue(n.Fields.Items[0].Content, m.rv)
		}
		return m.mismatch("tuple")
	}
}

func (m *reflectMapper) VisitStruct(n *ast.Struct) error {
	if err := m.ds.enter(); err != nil {
		return err
	}
	defer m.ds.leave()

	rv := m.rv
	switch rv.Kind() {
	case reflect.Struct:
		for _, it := range n.Fields.Items {
			if err := m.setField(it.Content.Key, it.Content.Value.Content); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		mapType := rv.Type()
		if mapType.Key().Kind() != reflect.String {
			return fmt.Errorf("ronfmt: cannot unmarshal struct into map with non-string key type %s", mapType.Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(mapType))
		}
		for _, it := range n.Fields.Items {
			val := reflect.New(mapType.Elem()).Elem()
			if err := m.ds.mapValue(it.Content.Value.Content, val); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(it.Content.Key).Convert(mapType.Key()), val)
		}
		return nil
	default:
		return m.mismatch("struct")
	}
}
