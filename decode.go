package namelist

import (
	"encoding"
	"fmt"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/mapper"
)

// Decoder reads and decodes namelist documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder reads all of r before parsing. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads a whole namelist document from its input and stores it in
// the value pointed to by v.
//
// The document maps onto v as follows:
//
//   - *ast.Document receives the parsed document itself.
//   - A struct receives each group in the field whose nml tag or name matches
//     the group name; a map with string keys receives every group.
//   - A group maps onto a struct or a string-keyed map the same way, by
//     variable name. Unknown names are ignored.
//   - Integers decode into any integer or float type, reals into floats,
//     booleans into bool, text into string or encoding.TextUnmarshaler,
//     complex values into complex64 or complex128, and lists into slices or
//     arrays. A scalar decoded into a slice becomes its first element.
//   - Fields of type *ast.Group receive the group, fields of type ast.Value
//     receive the value unchanged; types implementing Unmarshaler decode
//     themselves.
//
// Name matches try the exact name first, then ignore case.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("namelist: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, v, d.opts...)
}

var (
	documentType = reflect.TypeFor[*ast.Document]()
	groupType    = reflect.TypeFor[*ast.Group]()
	valueType    = reflect.TypeFor[ast.Value]()
)

func decodeDocument(doc *ast.Document, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("namelist: Unmarshal(non-pointer %T or nil)", v)
	}
	rv = rv.Elem()
	if rv.Type() == documentType {
		rv.Set(reflect.ValueOf(doc))
		return nil
	}
	rv = indirect(rv)

	switch rv.Kind() {
	case reflect.Struct:
		for _, g := range doc.Groups() {
			idx, ok := mapper.FieldByName(rv.Type(), g.Name)
			if !ok {
				continue
			}
			if err := mapGroup(g, fieldByIndex(rv, idx)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("namelist: cannot unmarshal document into map with non-string key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		for _, g := range doc.Groups() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := mapGroup(g, elem); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(g.Name).Convert(rv.Type().Key()), elem)
		}
		return nil
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("namelist: cannot unmarshal document into non-empty interface %s", rv.Type())
		}
		m := make(map[string]any, doc.Len())
		for _, g := range doc.Groups() {
			m[g.Name] = groupToMap(g)
		}
		rv.Set(reflect.ValueOf(m))
		return nil
	default:
		return fmt.Errorf("namelist: cannot unmarshal document into Go value of type %s", rv.Type())
	}
}

func mapGroup(g *ast.Group, rv reflect.Value) error {
	if rv.Type() == groupType {
		rv.Set(reflect.ValueOf(g))
		return nil
	}
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Struct:
		for name, v := range g.All() {
			idx, ok := mapper.FieldByName(rv.Type(), name)
			if !ok {
				continue
			}
			if err := mapValue(v, fieldByIndex(rv, idx)); err != nil {
				return fmt.Errorf("%w (group %q, variable %q)", err, g.Name, name)
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("namelist: cannot unmarshal group into map with non-string key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		for name, v := range g.All() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := mapValue(v, elem); err != nil {
				return fmt.Errorf("%w (group %q, variable %q)", err, g.Name, name)
			}
			rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), elem)
		}
		return nil
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("namelist: cannot unmarshal group into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(groupToMap(g)))
		return nil
	default:
		return fmt.Errorf("namelist: cannot unmarshal group into Go value of type %s", rv.Type())
	}
}

func mapValue(v ast.Value, rv reflect.Value) error { //nolint:gocyclo
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	handled, err := tryCustomUnmarshal(v, rv)
	if handled || err != nil {
		return err
	}

	rv = indirect(rv)
	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() != 0 {
			return fmt.Errorf("namelist: cannot unmarshal into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(toAny(v)))
		return nil
	}

	switch val := v.(type) {
	case ast.Integer:
		return mapInt(int64(val), rv)
	case ast.Real:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			if rv.OverflowFloat(float64(val)) {
				return fmt.Errorf("namelist: real value %g overflows Go value of type %s", float64(val), rv.Type())
			}
			rv.SetFloat(float64(val))
			return nil
		case reflect.Slice:
			return mapScalarIntoSlice(v, rv)
		}
	case ast.Boolean:
		switch rv.Kind() {
		case reflect.Bool:
			rv.SetBool(bool(val))
			return nil
		case reflect.Slice:
			return mapScalarIntoSlice(v, rv)
		}
	case ast.Text:
		switch rv.Kind() {
		case reflect.String:
			rv.SetString(string(val))
			return nil
		case reflect.Slice:
			return mapScalarIntoSlice(v, rv)
		}
	case ast.Complex:
		switch rv.Kind() {
		case reflect.Complex64, reflect.Complex128:
			c := complex(val.Re, val.Im)
			if rv.OverflowComplex(c) {
				return fmt.Errorf("namelist: complex value %v overflows Go value of type %s", c, rv.Type())
			}
			rv.SetComplex(c)
			return nil
		case reflect.Slice:
			return mapScalarIntoSlice(v, rv)
		}
	case ast.List:
		switch rv.Kind() {
		case reflect.Slice:
			s := reflect.MakeSlice(rv.Type(), len(val), len(val))
			for i, elem := range val {
				if err := mapValue(elem, s.Index(i)); err != nil {
					return err
				}
			}
			rv.Set(s)
			return nil
		case reflect.Array:
			if len(val) > rv.Len() {
				return fmt.Errorf("namelist: cannot unmarshal list of length %d into Go array of length %d", len(val), rv.Len())
			}
			for i, elem := range val {
				if err := mapValue(elem, rv.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}
	default:
		return fmt.Errorf("namelist: unsupported value type %T", v)
	}
	return fmt.Errorf("namelist: cannot unmarshal %s into Go value of type %s", v.Kind(), rv.Type())
}

func mapInt(i int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("namelist: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("namelist: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i))
		return nil
	case reflect.Slice:
		return mapScalarIntoSlice(ast.Integer(i), rv)
	default:
		return fmt.Errorf("namelist: cannot unmarshal integer into Go value of type %s", rv.Type())
	}
}

// mapScalarIntoSlice stores a scalar as a one element slice, the way a
// plain assignment sets the first element of a Fortran array.
func mapScalarIntoSlice(v ast.Value, rv reflect.Value) error {
	s := reflect.MakeSlice(rv.Type(), 1, 1)
	if err := mapValue(v, s.Index(0)); err != nil {
		return err
	}
	rv.Set(s)
	return nil
}

// tryCustomUnmarshal attempts to use a custom unmarshaler (Unmarshaler or
// encoding.TextUnmarshaler). It returns true if one was found and used, in
// which case the caller should not proceed with default unmarshaling.
func tryCustomUnmarshal(v ast.Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalNamelist(v); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		t, isText := v.(ast.Text)
		if !isText {
			// TextUnmarshaler can only be used on text values.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(t)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

// indirect follows pointers, allocating nil ones, until it reaches a
// non-pointer value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	return rv
}

// fieldByIndex is reflect.Value.FieldByIndex that allocates nil embedded
// struct pointers on the way.
func fieldByIndex(rv reflect.Value, idx []int) reflect.Value {
	for i, x := range idx {
		if i > 0 {
			rv = indirect(rv)
		}
		rv = rv.Field(x)
	}
	return rv
}

func groupToMap(g *ast.Group) map[string]any {
	m := make(map[string]any, g.Len())
	for name, v := range g.All() {
		m[name] = toAny(v)
	}
	return m
}

// toAny converts a value to its plain Go form.
func toAny(v ast.Value) any {
	switch val := v.(type) {
	case ast.Integer:
		return int64(val)
	case ast.Real:
		return float64(val)
	case ast.Boolean:
		return bool(val)
	case ast.Text:
		return string(val)
	case ast.Complex:
		return complex(val.Re, val.Im)
	case ast.List:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = toAny(elem)
		}
		return out
	default:
		return nil
	}
}
