// Package config assembles the REPL settings from defaults, environment
// variables and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"unicode/utf8"

	"git.sr.ht/~sircmpwn/getopt"
)

// Config holds everything fixed for the lifetime of a session.
type Config struct {
	Compiler string
	Flags    string

	SourcePath   string
	ArtifactPath string
	HistoryPath  string

	Prompt rune
	Meta   rune

	Debug bool
	Plain bool // never use the terminal line editor
	Help  bool
}

// Default returns the stock configuration: clang++ without flags, building
// repl.cpp into repl in the working directory.
func Default() Config {
	artifact := "repl"
	if runtime.GOOS == "windows" {
		artifact += ".exe"
	}
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".crepl_history")
	}
	return Config{
		Compiler:     "clang++",
		SourcePath:   "repl.cpp",
		ArtifactPath: artifact,
		HistoryPath:  history,
		Prompt:       '>',
		Meta:         '$',
	}
}

// FromEnv overrides cfg with any CREPL_* variables that getenv reports.
func FromEnv(cfg Config, getenv func(string) string) Config {
	if v := getenv("CREPL_CXX"); v != "" {
		cfg.Compiler = v
	}
	if v := getenv("CREPL_FLAGS"); v != "" {
		cfg.Flags = v
	}
	if v := getenv("CREPL_SOURCE"); v != "" {
		cfg.SourcePath = v
	}
	if v := getenv("CREPL_ARTIFACT"); v != "" {
		cfg.ArtifactPath = v
	}
	if v := getenv("CREPL_HISTORY"); v != "" {
		cfg.HistoryPath = v
	}
	if v := getenv("CREPL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	return cfg
}

// Usage is printed for -h and on flag errors.
const Usage = "usage: crepl [-dhp] [-c compiler] [-f flags] [-s source] [-o artifact]\n"

var ErrArgs = errors.New("unexpected arguments")

// ParseArgs applies command-line flags from argv (including the program
// name) on top of cfg.
func ParseArgs(cfg Config, argv []string) (Config, error) {
	opts, optind, err := getopt.Getopts(argv, "c:f:s:o:dph")
	if err != nil {
		return cfg, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfg.Compiler = opt.Value
		case 'f':
			cfg.Flags = opt.Value
		case 's':
			cfg.SourcePath = opt.Value
		case 'o':
			cfg.ArtifactPath = opt.Value
		case 'd':
			cfg.Debug = true
		case 'p':
			cfg.Plain = true
		case 'h':
			cfg.Help = true
		}
	}
	if optind < len(argv) {
		return cfg, fmt.Errorf("%w: %v", ErrArgs, argv[optind:])
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a session.
func (c Config) Validate() error {
	if c.Compiler == "" {
		return errors.New("no compiler configured")
	}
	if c.SourcePath == "" || c.ArtifactPath == "" {
		return errors.New("source and artifact paths must be set")
	}
	if filepath.Clean(c.SourcePath) == filepath.Clean(c.ArtifactPath) {
		return fmt.Errorf("source and artifact are the same file: %s", c.SourcePath)
	}
	if c.Prompt == 0 || c.Meta == 0 || c.Prompt == c.Meta {
		return errors.New("prompt and meta characters must be set and differ")
	}
	if c.Prompt == utf8.RuneError || c.Meta == utf8.RuneError {
		return errors.New("prompt and meta characters must be valid")
	}
	return nil
}
