// Package source holds the program text accumulated by the REPL.
//
// The committed text is the fixed preamble followed by every line that has
// compiled so far. It never contains the closing trailer; the trailer is
// only added when the text is written to disk. Each new line is staged as a
// candidate, written to the source file and compiled. Only a successful
// compile replaces the committed text, so the committed text always
// compiles on its own.
//
// A failed compile leaves the rejected candidate in the source file on
// disk. Nothing reads that file except the compiler, right after it is
// written, so the divergence is harmless.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crepl/debug"
	"crepl/runtime"
)

const (
	Preamble = "#include <iostream>\n#include <string>\n#include <vector>\n\nint main() {\n"
	Trailer  = "\n}\n"
)

// Compiler builds the source file at in into an executable at out.
type Compiler interface {
	Compile(ctx context.Context, in, out string) bool
}

// Buffer owns the committed program text and the two fixed-path files it
// is compiled through.
type Buffer struct {
	SourcePath   string
	ArtifactPath string

	// Out receives the separator printed after each execution.
	Out io.Writer

	code string
}

// New creates a buffer holding only the preamble.
func New(sourcePath, artifactPath string, out io.Writer) *Buffer {
	if out == nil {
		out = os.Stdout
	}
	return &Buffer{
		SourcePath:   sourcePath,
		ArtifactPath: artifactPath,
		Out:          out,
		code:         Preamble,
	}
}

// Code returns the committed text, without the trailer.
func (b *Buffer) Code() string { return b.code }

// Lines returns the accepted body lines, in order.
func (b *Buffer) Lines() []string {
	body := strings.TrimPrefix(b.code, Preamble)
	if body == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}

// Append stages line on top of the committed text and compiles it. The
// candidate is committed only when the compile succeeds. An empty line
// leaves the text unchanged but still recompiles.
func (b *Buffer) Append(ctx context.Context, c Compiler, line string) bool {
	candidate := b.code
	if line != "" {
		candidate += line + "\n"
	}
	return b.commit(ctx, c, candidate)
}

// Reset goes back to the bare preamble, with the same rollback rules as
// Append.
func (b *Buffer) Reset(ctx context.Context, c Compiler) bool {
	return b.commit(ctx, c, Preamble)
}

func (b *Buffer) commit(ctx context.Context, c Compiler, candidate string) bool {
	debug.LogSource("CANDIDATE", candidate+Trailer)

	if err := b.write(candidate); err != nil {
		debug.Log("candidate not written: %v", err)
		return false
	}
	if !c.Compile(ctx, b.SourcePath, b.ArtifactPath) {
		debug.Log("compile failed, keeping %d committed lines", len(b.Lines()))
		return false
	}

	b.code = candidate
	debug.LogFile("artifact", b.ArtifactPath)
	return true
}

func (b *Buffer) write(candidate string) error {
	f, err := os.Create(b.SourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	if _, err := io.WriteString(f, candidate+Trailer); err != nil {
		f.Close()
		return fmt.Errorf("write source: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close source: %w", err)
	}
	return nil
}

// Execute runs the artifact if it exists as a regular file, then prints a
// blank line. The program's exit status is ignored.
func (b *Buffer) Execute(ctx context.Context, r runtime.Runner) {
	info, err := os.Stat(b.ArtifactPath)
	if err != nil || !info.Mode().IsRegular() {
		debug.Log("no artifact at %s", b.ArtifactPath)
		return
	}
	abs, err := filepath.Abs(b.ArtifactPath)
	if err != nil {
		debug.Log("resolve artifact: %v", err)
		return
	}

	r.Run(ctx, quote(abs), false)
	fmt.Fprintln(b.Out)
}

// quote protects paths with spaces from the shell.
func quote(path string) string {
	if !strings.ContainsAny(path, " \t") {
		return path
	}
	return `"` + path + `"`
}
