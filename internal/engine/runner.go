package engine

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/AthenaLink/dockronos/internal/errors"
)

// Runner executes runtime binaries. It exists as an interface so tests can
// substitute canned subprocess behavior.
type Runner interface {
	// Run executes the binary and returns its captured stdout. A non-zero
	// exit surfaces as a *errors.CommandError carrying the captured stderr.
	Run(ctx context.Context, bin string, args ...string) (string, error)

	// Stream starts the binary and returns a reader over its combined
	// output. Closing the reader terminates the process.
	Stream(ctx context.Context, bin string, args ...string) (io.ReadCloser, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run executes the binary and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", errors.NewCommandError(bin, commandString(bin, args), stderr.String(), exitErr.ExitCode())
		}
		return "", err
	}
	return stdout.String(), nil
}

// Stream starts the binary and pipes its combined stdout and stderr to the
// returned reader. Transient stream errors are delivered to the reader as
// read errors; they never crash the process.
func (ExecRunner) Stream(ctx context.Context, bin string, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}

	go func() {
		// Propagate the exit status to the reader. io.EOF for a clean exit,
		// the wait error otherwise.
		pw.CloseWithError(cmd.Wait())
	}()

	return &processStream{pr: pr, cmd: cmd}, nil
}

// processStream couples a pipe reader to its producing process so that
// closing the stream also terminates the process (follow-mode logs would
// otherwise run forever).
type processStream struct {
	pr  *io.PipeReader
	cmd *exec.Cmd
}

func (s *processStream) Read(p []byte) (int, error) {
	return s.pr.Read(p)
}

func (s *processStream) Close() error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.pr.Close()
}

// commandString renders a binary and its arguments for error messages.
func commandString(bin string, args []string) string {
	return bin + " " + strings.Join(args, " ")
}
