package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag key read by the decoder.
const TagName = "nml"

// field represents a cached struct field.
type field struct {
	idx []int
}

// fields holds the exact names and the lower-cased fallbacks of one struct
// type. Fortran names are case-insensitive, so a miss on the exact name is
// retried without case.
type fields struct {
	exact map[string]field
	fold  map[string]field
}

// fieldCache caches the fields of every struct type seen so far.
var fieldCache sync.Map // map[reflect.Type]*fields

// FieldByName returns the index path of the field of struct type t that
// receives the namelist name. Exact tag or field name matches win over
// case-insensitive ones.
func FieldByName(t reflect.Type, name string) ([]int, bool) {
	fs := cachedFields(t)
	if f, ok := fs.exact[name]; ok {
		return f.idx, true
	}
	if f, ok := fs.fold[strings.ToLower(name)]; ok {
		return f.idx, true
	}
	return nil, false
}

// cachedFields uses reflection to parse a struct's tags and build a cache
// of its fields. Embedded structs are flattened; unexported fields and
// fields tagged with "nml:-" are skipped.
func cachedFields(t reflect.Type) *fields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*fields)
	}

	fs := &fields{
		exact: make(map[string]field),
		fold:  make(map[string]field),
	}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			path := append(append([]int(nil), idx...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get(TagName) == "" {
				walk(sf.Type, path)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get(TagName)
			if tag == "-" {
				continue
			}

			name, _, _ := strings.Cut(tag, ",")
			if name == "" {
				name = sf.Name
			}
			f := field{idx: path}

			// The first field declared under a name wins.
			if _, ok := fs.exact[name]; !ok {
				fs.exact[name] = f
			}
			lower := strings.ToLower(name)
			if _, ok := fs.fold[lower]; !ok {
				fs.fold[lower] = f
			}
		}
	}
	walk(t, nil)

	actual, _ := fieldCache.LoadOrStore(t, fs)
	return actual.(*fields)
}
