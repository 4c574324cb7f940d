package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	urfave "github.com/urfave/cli/v2"

	"github.com/KimNorgaard/go-namelist/internal/cli"
)

// main is the entrypoint for the nml tool.
func main() {
	// Use a minimal logger until the command's flags are parsed.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr urfave.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(args []string, in io.Reader, out, errOut io.Writer) error {
	return cli.New(in, out, errOut).Run(args)
}
