package cli

import (
	"bytes"
	"fmt"

	urfave "github.com/urfave/cli/v2"

	namelist "github.com/KimNorgaard/go-namelist"
	"github.com/KimNorgaard/go-namelist/ast"
)

func fmtCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "fmt",
		Usage:     "parse a namelist file and write it back in canonical form",
		ArgsUsage: "FILE",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "write only the group `NAME`",
			},
			&urfave.BoolFlag{
				Name:  "indexed",
				Usage: "write one indexed assignment per array element instead of inline arrays",
			},
			outputFlag(),
		},
		Action: func(c *urfave.Context) error {
			if c.NArg() != 1 {
				return urfave.Exit("fmt takes exactly one FILE argument", 2)
			}
			doc, err := parseFile(c, c.Args().First())
			if err != nil {
				return err
			}

			opts := []namelist.Option{namelist.InlineArrays(!c.Bool("indexed"))}
			var out []byte
			if group := c.String("group"); group != "" {
				out, err = namelist.Marshal(doc, group, opts...)
			} else {
				out, err = namelist.MarshalDocument(doc, opts...)
			}
			if err != nil {
				return err
			}
			return writeOutput(c, out)
		},
	}
}

func getCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "get",
		Usage:     "print the values of group.variable paths",
		ArgsUsage: "FILE PATH...",
		Action: func(c *urfave.Context) error {
			if c.NArg() < 2 {
				return urfave.Exit("get takes a FILE and at least one group.variable PATH", 2)
			}
			doc, err := parseFile(c, c.Args().First())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			for _, path := range c.Args().Tail() {
				v, err := doc.Lookup(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(&buf, v.String())
			}
			_, err = c.App.Writer.Write(buf.Bytes())
			return err
		},
	}
}

func keysCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "keys",
		Usage:     "list the variable names known to namelist files or a MESA installation",
		ArgsUsage: "[FILE...]",
		Flags:     []urfave.Flag{mesaDirFlag(), outputFlag()},
		Action: func(c *urfave.Context) error {
			docs, err := loadSources(c)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			for _, key := range knownKeys(docs) {
				fmt.Fprintln(&buf, key)
			}
			return writeOutput(c, buf.Bytes())
		},
	}
}

func vimSyntaxCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "vim-syntax",
		Usage:     "emit vim syntax rules that highlight every known variable name",
		ArgsUsage: "[FILE...]",
		Flags:     []urfave.Flag{mesaDirFlag(), outputFlag()},
		Action: func(c *urfave.Context) error {
			docs, err := loadSources(c)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			for _, key := range knownKeys(docs) {
				fmt.Fprintf(&buf, "syntax match inlistKeyword /\\zs%s\\ze\\s*/\n", key)
			}
			return writeOutput(c, buf.Bytes())
		},
	}
}

func yamlCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "yaml",
		Usage:     "print a namelist file as YAML",
		ArgsUsage: "FILE",
		Flags:     []urfave.Flag{outputFlag()},
		Action: func(c *urfave.Context) error {
			if c.NArg() != 1 {
				return urfave.Exit("yaml takes exactly one FILE argument", 2)
			}
			doc, err := parseFile(c, c.Args().First())
			if err != nil {
				return err
			}
			out, err := marshalYAML(doc)
			if err != nil {
				return err
			}
			return writeOutput(c, out)
		},
	}
}

// knownKeys returns the variable names of docs with array index suffixes
// removed, each name once, in first-seen order.
func knownKeys(docs []*ast.Document) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, doc := range docs {
		for _, name := range doc.VariableNames() {
			key := ast.BaseName(name)
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	return keys
}
