// Package runtime runs external commands through the platform shell and
// reports their exit status. Compiler probes, compiles and the compiled
// program itself all go through it.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"crepl/debug"
)

// Status is the exit status of a finished command. Commands that could not
// be started, or that were killed by a signal, report StatusUnknown.
type Status int

const StatusUnknown Status = -1

func (s Status) Successful() bool { return s == 0 }

// Runner executes a command line and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, command string, silent bool) Status
}

// RouteNull rewrites command so that both its stdout and stderr go to the
// null device.
func RouteNull(command string) string {
	return fmt.Sprintf("%s > %s 2>&1", command, os.DevNull)
}

// Shell runs commands with the platform command interpreter. Nil streams
// fall back to the process's own.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s *Shell) Run(ctx context.Context, command string, silent bool) Status {
	if silent {
		command = RouteNull(command)
	}

	name, args := shellCommand(command)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = orReader(s.Stdin, os.Stdin)
	cmd.Stdout = orWriter(s.Stdout, os.Stdout)
	cmd.Stderr = orWriter(s.Stderr, os.Stderr)

	start := time.Now()
	err := cmd.Run()
	status := exitStatus(err)
	debug.Log("run %q -> %d (%s)", command, status, time.Since(start).Round(time.Millisecond))
	return status
}

func exitStatus(err error) Status {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code != -1 {
			return Status(code)
		}
	}
	debug.Log("run failed: %v", err)
	return StatusUnknown
}

func orReader(r io.Reader, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w io.Writer, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
