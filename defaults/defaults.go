// Package defaults loads the default values of the MESA namelists from the
// "*.defaults" files shipped in a MESA installation.
package defaults

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	namelist "github.com/KimNorgaard/go-namelist"
	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/lexer"
)

// Namelists are the namelists with a defaults file, in load order.
var Namelists = []string{"star_job", "controls", "pgstar", "binary_job", "binary_controls"}

// Path returns the location of the defaults file of a namelist relative to
// the MESA directory.
func Path(name string) string {
	switch name {
	case "star_job", "controls", "pgstar":
		return path.Join("star", "defaults", name+".defaults")
	default:
		return path.Join("binary", "defaults", name+".defaults")
	}
}

// Load reads the defaults of every namelist in Namelists from fsys, which
// must be rooted at the MESA directory. The document has one group per
// namelist, in Namelists order.
func Load(fsys fs.FS, opts ...namelist.Option) (*ast.Document, error) {
	doc := ast.NewDocument()
	for _, name := range Namelists {
		g, err := LoadNamelist(fsys, name, opts...)
		if err != nil {
			return nil, err
		}
		if err := doc.Add(g); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// LoadNamelist reads the defaults file of one namelist. The file body is
// wrapped in a group of the same name and parsed as namelist text. Lines
// that are not assignments, such as the prose between the documented
// options, are skipped.
func LoadNamelist(fsys fs.FS, name string, opts ...namelist.Option) (*ast.Group, error) {
	data, err := fs.ReadFile(fsys, Path(name))
	if err != nil {
		return nil, fmt.Errorf("defaults: reading %s: %w", name, err)
	}

	var b strings.Builder
	// The header shares the first line so reported line numbers match
	// the file.
	b.WriteString("&" + name + " ")
	for line := range strings.Lines(string(data)) {
		text := strings.TrimSpace(lexer.StripComment(line))
		if text == "" || lexer.IndexUnquoted(text, '=') < 0 {
			b.WriteString("\n")
			continue
		}
		b.WriteString(text + "\n")
	}
	b.WriteString("/\n")

	doc, err := namelist.Parse([]byte(b.String()), opts...)
	if err != nil {
		return nil, fmt.Errorf("defaults: parsing %s: %w", Path(name), err)
	}
	return doc.Group(name)
}
