// Package cli implements the nml command line tool.
package cli

import (
	"fmt"
	"io"
	"os"

	urfave "github.com/urfave/cli/v2"

	namelist "github.com/KimNorgaard/go-namelist"
	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/defaults"
	"github.com/KimNorgaard/go-namelist/internal/ctxlog"
)

// New builds the nml application. Input is read from in when a file
// argument is "-", output goes to out, logs and usage errors to errOut.
func New(in io.Reader, out, errOut io.Writer) *urfave.App {
	return &urfave.App{
		Name:      "nml",
		Usage:     "inspect and rewrite Fortran namelist files",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		// Errors are returned to the caller, which owns the exit code.
		ExitErrHandler: func(*urfave.Context, error) {},
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "logging level: debug, info, warn or error",
				EnvVars: []string{"NML_LOG_LEVEL"},
			},
			&urfave.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log output format: text or json",
				EnvVars: []string{"NML_LOG_FORMAT"},
			},
		},
		Before: func(c *urfave.Context) error {
			logger, err := newLogger(c.String("log-level"), c.String("log-format"), errOut)
			if err != nil {
				return urfave.Exit(err.Error(), 2)
			}
			c.Context = ctxlog.WithLogger(c.Context, logger)
			return nil
		},
		Commands: []*urfave.Command{
			fmtCommand(),
			getCommand(),
			keysCommand(),
			vimSyntaxCommand(),
			yamlCommand(),
		},
	}
}

func mesaDirFlag() urfave.Flag {
	return &urfave.StringFlag{
		Name:    "mesa-dir",
		Usage:   "read the namelist defaults of the MESA installation in `DIR`",
		EnvVars: []string{"MESA_DIR"},
	}
}

func outputFlag() urfave.Flag {
	return &urfave.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write to `FILE` instead of standard output",
	}
}

// parseFile reads and parses one file argument; "-" reads standard input.
func parseFile(c *urfave.Context, path string) (*ast.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(c.Context).With("file", path)
	logger.Debug("parsing namelist", "bytes", len(data))
	doc, err := namelist.Parse(data, namelist.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("parsed namelist", "groups", doc.Len())
	return doc, nil
}

// loadSources returns the documents named on the command line, preceded by
// the MESA defaults when --mesa-dir is set.
func loadSources(c *urfave.Context) ([]*ast.Document, error) {
	var docs []*ast.Document
	if dir := c.String("mesa-dir"); dir != "" {
		logger := ctxlog.FromContext(c.Context)
		logger.Debug("loading MESA defaults", "dir", dir)
		doc, err := defaults.Load(os.DirFS(dir), namelist.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	for _, path := range c.Args().Slice() {
		doc, err := parseFile(c, path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, urfave.Exit("no input: pass namelist files or --mesa-dir", 2)
	}
	return docs, nil
}

// writeOutput writes data to the --output file, or to the app's writer.
func writeOutput(c *urfave.Context, data []byte) error {
	if path := c.String("output"); path != "" {
		ctxlog.FromContext(c.Context).Info("writing output", "file", path, "bytes", len(data))
		return os.WriteFile(path, data, 0o644)
	}
	_, err := c.App.Writer.Write(data)
	return err
}
