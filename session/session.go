// Package session implements the interactive loop.
//
// Each iteration reads one line. Lines starting with the meta sentinel are
// session commands; every other line, including an empty one, is handed to
// the source buffer and the program is run whenever the line compiled.
//
// The loop is strictly sequential: read, compile, run, repeat. A hung
// compiler or program blocks it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"crepl/debug"
	"crepl/runtime"
	"crepl/source"
)

// State is the lifecycle of a session.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	DefaultMeta   = '$'
	DefaultPrompt = '>'
)

// Options wires a session to its collaborators. Zero Meta and Prompt take
// the defaults; a nil Out means stdout.
type Options struct {
	Buffer   *source.Buffer
	Compiler source.Compiler
	Runner   runtime.Runner
	Reader   LineReader
	Out      io.Writer

	Meta   rune
	Prompt rune
}

// metaFunc runs a meta command and reports whether the session continues.
type metaFunc func(ctx context.Context, s *Session) bool

// Session is the read-compile-run loop.
type Session struct {
	buffer   *source.Buffer
	compiler source.Compiler
	runner   runtime.Runner
	reader   LineReader
	out      io.Writer

	meta   rune
	prompt string
	state  State

	commands map[string]metaFunc
}

// New creates a session in the Running state.
func New(opts Options) *Session {
	if opts.Meta == 0 {
		opts.Meta = DefaultMeta
	}
	if opts.Prompt == 0 {
		opts.Prompt = DefaultPrompt
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Session{
		buffer:   opts.Buffer,
		compiler: opts.Compiler,
		runner:   opts.Runner,
		reader:   opts.Reader,
		out:      opts.Out,
		meta:     opts.Meta,
		prompt:   string(opts.Prompt) + " ",
		state:    Running,
		commands: map[string]metaFunc{
			"quit":  metaQuit,
			"show":  metaShow,
			"reset": metaReset,
			"help":  metaHelp,
		},
	}
}

func (s *Session) State() State { return s.state }

// Run loops until a quit command or end of input. Only a failing reader
// makes it return an error.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Running {
		line, err := s.reader.ReadLine(s.prompt)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			s.state = Terminated
			return err
		}
		if eof && line == "" {
			debug.Log("end of input")
			fmt.Fprintln(s.out)
			s.state = Terminated
			break
		}

		s.Handle(ctx, line)
		if eof {
			s.state = Terminated
		}
	}
	return nil
}

// Handle processes one input line.
func (s *Session) Handle(ctx context.Context, line string) {
	if cmd, ok := s.metaCommand(line); ok {
		s.dispatch(ctx, cmd)
		return
	}
	if s.buffer.Append(ctx, s.compiler, line) {
		s.buffer.Execute(ctx, s.runner)
	}
}

// metaCommand reports whether line starts with the sentinel and returns the
// rest of it.
func (s *Session) metaCommand(line string) (string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if size == 0 || r != s.meta {
		return "", false
	}
	return strings.TrimSpace(line[size:]), true
}

func (s *Session) dispatch(ctx context.Context, cmd string) {
	fn, ok := s.commands[cmd]
	if !ok {
		debug.Log("ignoring meta command %q", cmd)
		return
	}
	if !fn(ctx, s) {
		s.state = Terminated
	}
}

func metaQuit(context.Context, *Session) bool { return false }

func metaShow(_ context.Context, s *Session) bool {
	for i, line := range s.buffer.Lines() {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, line)
	}
	return true
}

func metaReset(ctx context.Context, s *Session) bool {
	s.buffer.Reset(ctx, s.compiler)
	return true
}

func metaHelp(_ context.Context, s *Session) bool {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%c%-6s %s\n", s.meta, name, metaHelpText[name])
	}
	return true
}

var metaHelpText = map[string]string{
	"quit":  "leave the session",
	"show":  "list the accepted lines",
	"reset": "drop every accepted line",
	"help":  "show this list",
}
