package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"crepl/compiler"
	"crepl/config"
	"crepl/debug"
	"crepl/runtime"
	"crepl/session"
	"crepl/source"
	"crepl/tui"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

// run is main with its process state passed in. It returns the exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg := config.FromEnv(config.Default(), getenv)
	cfg, err := config.ParseArgs(cfg, argv)
	if err != nil {
		warn(stderr, err)
		fmt.Fprint(stderr, config.Usage)
		return 2
	}
	if cfg.Help {
		fmt.Fprint(stdout, config.Usage)
		return 0
	}
	if err := cfg.Validate(); err != nil {
		warn(stderr, err)
		return 1
	}

	debug.Enabled = cfg.Debug
	debug.Output = stderr
	debug.Log("compiler %q flags %q", cfg.Compiler, cfg.Flags)
	debug.Log("source %s artifact %s", cfg.SourcePath, cfg.ArtifactPath)

	ctx := context.Background()
	runner := &runtime.Shell{Stdin: childStdin(stdin), Stdout: stdout, Stderr: stderr}
	cc := compiler.New(runner, cfg.Compiler, cfg.Flags)
	if !cc.Available(ctx) {
		warn(stderr, fmt.Errorf("%s compiler not available", cfg.Compiler))
		return 1
	}

	reader, history := lineReader(cfg, stdin, stdout)
	s := session.New(session.Options{
		Buffer:   source.New(cfg.SourcePath, cfg.ArtifactPath, stdout),
		Compiler: cc,
		Runner:   runner,
		Reader:   reader,
		Out:      stdout,
		Meta:     cfg.Meta,
		Prompt:   cfg.Prompt,
	})

	err = s.Run(ctx)
	if history != nil {
		if err := history.Save(); err != nil {
			debug.Log("save history: %v", err)
		}
	}
	if err != nil {
		warn(stderr, err)
		return 1
	}
	return 0
}

// lineReader picks the terminal line editor when stdin is a terminal, and
// a plain line scanner otherwise.
func lineReader(cfg config.Config, stdin io.Reader, stdout io.Writer) (session.LineReader, *tui.History) {
	if !cfg.Plain && isTerminal(stdin) && isTerminal(stdout) {
		history := tui.LoadHistory(cfg.HistoryPath)
		debug.Log("using terminal line editor")
		return tui.NewReader(history, stdin, stdout), history
	}
	return session.NewScanner(stdin, stdout), nil
}

// childStdin hands a real stdin file to child processes. Any other reader
// belongs to the session alone; children get an empty input.
func childStdin(stdin io.Reader) io.Reader {
	if f, ok := stdin.(*os.File); ok {
		return f
	}
	return strings.NewReader("")
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func warn(w io.Writer, err error) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	fmt.Fprintln(w, style.Render("crepl:")+" "+err.Error())
}
