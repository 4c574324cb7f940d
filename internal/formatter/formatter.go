package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-namelist/ast"
)

const indent = "   "

// Formatter writes namelist groups to an output stream.
type Formatter struct {
	w      io.Writer
	inline bool
}

// New returns a new formatter that writes to w. With inline set, arrays of
// two or more elements are written on one line; otherwise each element gets
// its own indexed line.
func New(w io.Writer, inline bool) *Formatter {
	return &Formatter{w: w, inline: inline}
}

// Format writes g as a complete "&name ... /" block.
func (f *Formatter) Format(g *ast.Group) error {
	if err := f.writeLine("&" + g.Name); err != nil {
		return err
	}
	for name, v := range g.All() {
		if err := f.writeVariable(name, v); err != nil {
			return fmt.Errorf("%w (group %q, variable %q)", err, g.Name, name)
		}
	}
	return f.writeLine("/ ! end of " + g.Name + " namelist")
}

func (f *Formatter) writeVariable(name string, v ast.Value) error {
	list, ok := v.(ast.List)
	if !ok {
		lit, err := ast.FormatScalar(v)
		if err != nil {
			return err
		}
		return f.writeLine(indent + name + " = " + lit)
	}

	if len(list) == 0 {
		return fmt.Errorf("namelist: an empty array has no literal form")
	}
	lits := make([]string, len(list))
	for i, elem := range list {
		lit, err := ast.FormatScalar(elem)
		if err != nil {
			return err
		}
		lits[i] = lit
	}

	// A single element written inline would read back as a scalar.
	if f.inline && len(lits) > 1 {
		return f.writeLine(indent + name + " = " + strings.Join(lits, " "))
	}
	for i, lit := range lits {
		if err := f.writeLine(fmt.Sprintf("%s%s(%d) = %s", indent, name, i+1, lit)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeLine(s string) error {
	_, err := io.WriteString(f.w, s+"\n")
	return err
}
