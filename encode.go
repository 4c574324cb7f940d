package namelist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/formatter"
)

// Encoder writes namelist documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes every group of doc in document order.
func (e *Encoder) Encode(doc *ast.Document) error {
	if doc == nil {
		return fmt.Errorf("namelist: Encode(nil document)")
	}
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	f := formatter.New(&buf, o.inline)
	for _, g := range doc.Groups() {
		if err := f.Format(g); err != nil {
			return err
		}
	}
	_, err = e.w.Write(buf.Bytes())
	return err
}

// EncodeGroup writes the single group of doc stored under name. A missing
// group yields an error wrapping ErrNotFound.
func (e *Encoder) EncodeGroup(doc *ast.Document, name string) error {
	if doc == nil {
		return fmt.Errorf("namelist: EncodeGroup(nil document)")
	}
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	g, err := doc.Group(name)
	if err != nil {
		return err
	}

	// Format into a buffer so a failing variable leaves w untouched.
	var buf bytes.Buffer
	if err := formatter.New(&buf, o.inline).Format(g); err != nil {
		return err
	}
	_, err = e.w.Write(buf.Bytes())
	return err
}
