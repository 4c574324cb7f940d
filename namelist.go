package namelist

import (
	"bytes"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/lexer"
	"github.com/KimNorgaard/go-namelist/internal/marshaler"
	"github.com/KimNorgaard/go-namelist/internal/parser"
)

// Unmarshaler is the interface implemented by types that can decode a
// namelist value themselves.
type Unmarshaler interface {
	UnmarshalNamelist(v ast.Value) error
}

// Parse reads namelist text and returns the document it describes. If the
// input has errors, Parse returns a nil document and an errors.ParseErrors
// holding every error found.
func Parse(data []byte, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(data, o)
}

func parse(data []byte, o *options) (*ast.Document, error) {
	l := lexer.New(data)
	p := parser.New(l, o.logger)
	doc := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// Marshal returns the namelist text of the named group of doc. Unless
// InlineArrays(false) is given, arrays are written on a single line.
func Marshal(doc *ast.Document, group string, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).EncodeGroup(doc, group); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalDocument returns the namelist text of every group of doc, in
// document order.
func MarshalDocument(doc *ast.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DocumentOf builds a document from a Go value, the reverse of Unmarshal.
// v is a struct or string-keyed map whose members are the groups; each
// group is in turn a struct, a string-keyed map or an *ast.Group. Struct
// members are named by their nml tag or field name, and the omitempty tag
// option leaves out zero values. Nil pointers and empty slices are left
// out, since a namelist has no literal for them.
func DocumentOf(v any) (*ast.Document, error) {
	return marshaler.Document(v)
}

// MarshalValue returns the namelist text of the document DocumentOf builds
// from v.
func MarshalValue(v any, opts ...Option) ([]byte, error) {
	doc, err := DocumentOf(v)
	if err != nil {
		return nil, err
	}
	return MarshalDocument(doc, opts...)
}

// Unmarshal parses the namelist data and stores the result in the value
// pointed to by v. See Decoder.Decode for the mapping rules.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	doc, err := parse(data, o)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v)
}
