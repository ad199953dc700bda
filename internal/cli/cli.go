// Package cli wires weavemark's merge-core operations into a command-line program.
package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	qcli "github.com/weavemark/weavemark/internal/q/cli"
)

// Version is the weavemark merge-core CLI version. It is a var (not a const) so
// build tooling can override it, e.g. via `-ldflags "-X .../internal/cli.Version=1.2.3"`.
var Version = "0.1.0"

// RunOptions overrides standard I/O. If a field is nil, the corresponding os.Std*
// stream is used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args was sound (flags parsed fine, etc).
//   - 2 -> err != nil, args parse error or flag misuse.
//
// In the error cases, Run has already written a message to opts.Err (or Stderr).
// Callers may use os.Exit with the returned code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	root := newRootCommand()

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	// internal/q/cli intentionally returns only an exit code; tee stderr (falling
	// back to stdout) so we can synthesize a non-nil error when exitCode != 0.
	var stderrBuf bytes.Buffer
	var stdoutBuf bytes.Buffer
	outTee := io.MultiWriter(out, &stdoutBuf)
	errTee := io.MultiWriter(errW, &stderrBuf)

	exitCode := qcli.Run(context.Background(), root, qcli.Options{
		Args: argv,
		In:   in,
		Out:  outTee,
		Err:  errTee,
	})

	if exitCode == 0 {
		return 0, nil
	}

	msg := strings.TrimSpace(stderrBuf.String())
	if msg == "" {
		msg = strings.TrimSpace(stdoutBuf.String())
	}
	if msg == "" {
		msg = "command failed"
	}
	return exitCode, errors.New(msg)
}
