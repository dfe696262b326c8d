package compiler

import (
	"context"
	"fmt"
	"strings"

	"crepl/runtime"
)

// Compiler is an external compiler executable plus the flags passed on
// every compile. It keeps no state between calls.
type Compiler struct {
	Path  string
	Flags string

	runner runtime.Runner
}

// New creates a compiler that runs its commands through runner.
func New(runner runtime.Runner, path, flags string) *Compiler {
	return &Compiler{
		Path:   path,
		Flags:  flags,
		runner: runner,
	}
}

// VersionCommand is the probe used by Available.
func (c *Compiler) VersionCommand() string {
	return fmt.Sprintf("%s --version", c.Path)
}

// CompileCommand builds "<path> <flags> <in> -o <out>". Empty flags are
// left out.
func (c *Compiler) CompileCommand(in, out string) string {
	parts := []string{c.Path}
	if flags := strings.TrimSpace(c.Flags); flags != "" {
		parts = append(parts, flags)
	}
	parts = append(parts, in, "-o", out)
	return strings.Join(parts, " ")
}

// Available reports whether the compiler answers a version query. Output of
// the probe is discarded.
func (c *Compiler) Available(ctx context.Context) bool {
	return c.runner.Run(ctx, c.VersionCommand(), true).Successful()
}

// Compile builds in into out. Diagnostics go straight to the user.
func (c *Compiler) Compile(ctx context.Context, in, out string) bool {
	return c.runner.Run(ctx, c.CompileCommand(in, out), false).Successful()
}
