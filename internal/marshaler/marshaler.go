// Package marshaler builds namelist documents from Go values.
package marshaler

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/mapper"
)

var (
	documentType = reflect.TypeFor[*ast.Document]()
	groupType    = reflect.TypeFor[*ast.Group]()
	valueType    = reflect.TypeFor[ast.Value]()
)

// Document converts v into a document. v is a struct whose fields are the
// groups, a map with string keys, or an *ast.Document, which is returned
// as it is. Map keys are visited in sorted order.
func Document(v any) (*ast.Document, error) {
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Type() == documentType {
		if rv.IsNil() {
			return nil, fmt.Errorf("namelist: cannot marshal nil document")
		}
		return rv.Interface().(*ast.Document), nil
	}
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, fmt.Errorf("namelist: cannot marshal nil value")
	}

	doc := ast.NewDocument()
	add := func(name string, gv reflect.Value) error {
		g, err := group(name, gv)
		if err != nil {
			return err
		}
		return doc.Add(g)
	}
	if err := eachMember(rv, "document", add); err != nil {
		return nil, err
	}
	return doc, nil
}

func group(name string, rv reflect.Value) (*ast.Group, error) {
	if rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Type() == groupType {
		if rv.IsNil() {
			return nil, fmt.Errorf("namelist: group %q is nil", name)
		}
		// Stored under the field name, not the group's own name.
		src := rv.Interface().(*ast.Group)
		g := ast.NewGroup(name)
		for k, v := range src.All() {
			g.Set(k, v)
		}
		return g, nil
	}

	g := ast.NewGroup(name)
	err := eachMember(indirect(rv), "group", func(key string, fv reflect.Value) error {
		v, err := value(fv)
		if err != nil {
			return fmt.Errorf("%w (group %q, variable %q)", err, name, key)
		}
		if v != nil {
			g.Set(key, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// eachMember calls fn for every exported field of a struct or every entry of
// a string-keyed map, skipping nil pointers and omitempty fields.
func eachMember(rv reflect.Value, what string, fn func(string, reflect.Value) error) error {
	switch rv.Kind() {
	case reflect.Struct:
		return eachField(rv, fn)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("namelist: cannot marshal %s from map with non-string key type %s", what, rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			mv := rv.MapIndex(k)
			if isNil(mv) {
				continue
			}
			if err := fn(k.String(), mv); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("namelist: cannot marshal %s from Go value of type %s", what, rv.Type())
	}
}

func eachField(rv reflect.Value, fn func(string, reflect.Value) error) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := rv.Field(i)
		tag := sf.Tag.Get(mapper.TagName)

		if sf.Anonymous && tag == "" {
			if ev := indirect(fv); ev.IsValid() && ev.Kind() == reflect.Struct {
				if err := eachField(ev, fn); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() || tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		if isNil(fv) || (hasOption(opts, "omitempty") && isEmptyValue(fv)) {
			continue
		}
		if err := fn(name, fv); err != nil {
			return err
		}
	}
	return nil
}

// value converts a Go value into a namelist value. It returns nil, nil for
// empty slices and arrays, which have no namelist form.
func value(rv reflect.Value) (ast.Value, error) { //nolint:gocyclo
	if rv.Type() == valueType {
		if rv.IsNil() {
			return nil, nil
		}
		return rv.Interface().(ast.Value), nil
	}
	if m, ok := textMarshaler(rv); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("namelist: error calling MarshalText for type %s: %w", rv.Type(), err)
		}
		return ast.Text(text), nil
	}

	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, nil
	}
	if v, ok := rv.Interface().(ast.Value); ok {
		return v, nil
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("namelist: cannot marshal %s %d (overflows int64)", rv.Type(), u)
		}
		return ast.Integer(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ast.Real(rv.Float()), nil
	case reflect.Bool:
		return ast.Boolean(rv.Bool()), nil
	case reflect.String:
		return ast.Text(rv.String()), nil
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return ast.Complex{Re: real(c), Im: imag(c)}, nil
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil, nil
		}
		list := make(ast.List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := value(rv.Index(i))
			if err != nil {
				return nil, err
			}
			if _, nested := elem.(ast.List); nested || elem == nil {
				return nil, fmt.Errorf("namelist: cannot marshal %s: arrays hold scalars only", rv.Type())
			}
			list = append(list, elem)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("namelist: unsupported type for marshaling: %s", rv.Type())
	}
}

func textMarshaler(rv reflect.Value) (encoding.TextMarshaler, bool) {
	if isNil(rv) || !rv.CanInterface() {
		return nil, false
	}
	if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
		return m, true
	}
	if rv.CanAddr() {
		m, ok := rv.Addr().Interface().(encoding.TextMarshaler)
		return m, ok
	}
	return nil, false
}

func hasOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}

// isEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Complex64, reflect.Complex128:
		return v.Complex() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// indirect follows pointers and interfaces. It returns the zero Value when
// it meets a nil.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
