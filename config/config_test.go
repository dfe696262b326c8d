package config

import (
	"errors"
	"strings"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Compiler != "clang++" || cfg.Flags != "" {
		t.Fatalf("unexpected toolchain %q %q", cfg.Compiler, cfg.Flags)
	}
	if cfg.SourcePath != "repl.cpp" || !strings.HasPrefix(cfg.ArtifactPath, "repl") {
		t.Fatalf("unexpected paths %q %q", cfg.SourcePath, cfg.ArtifactPath)
	}
	if cfg.Prompt != '>' || cfg.Meta != '$' {
		t.Fatalf("unexpected characters %q %q", cfg.Prompt, cfg.Meta)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	cfg := FromEnv(Default(), env(map[string]string{
		"CREPL_CXX":      "g++",
		"CREPL_FLAGS":    "-std=c++20",
		"CREPL_SOURCE":   "a.cpp",
		"CREPL_ARTIFACT": "a.out",
		"CREPL_HISTORY":  "/tmp/h",
		"CREPL_DEBUG":    "1",
	}))
	if cfg.Compiler != "g++" || cfg.Flags != "-std=c++20" {
		t.Fatalf("toolchain not overridden: %+v", cfg)
	}
	if cfg.SourcePath != "a.cpp" || cfg.ArtifactPath != "a.out" || cfg.HistoryPath != "/tmp/h" {
		t.Fatalf("paths not overridden: %+v", cfg)
	}
	if !cfg.Debug {
		t.Fatal("expected debug from env")
	}

	cfg = FromEnv(Default(), env(map[string]string{"CREPL_DEBUG": "maybe"}))
	if cfg.Debug {
		t.Fatal("unparseable CREPL_DEBUG should be ignored")
	}
}

func TestParseArgs(t *testing.T) {
	cfg, err := ParseArgs(Default(), []string{"crepl", "-d", "-p", "-c", "g++", "-f", "-Wall -O2", "-s", "x.cpp", "-o", "x"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg.Compiler != "g++" || cfg.Flags != "-Wall -O2" {
		t.Fatalf("toolchain = %q %q", cfg.Compiler, cfg.Flags)
	}
	if cfg.SourcePath != "x.cpp" || cfg.ArtifactPath != "x" {
		t.Fatalf("paths = %q %q", cfg.SourcePath, cfg.ArtifactPath)
	}
	if !cfg.Debug || !cfg.Plain || cfg.Help {
		t.Fatalf("switches = %+v", cfg)
	}
}

func TestParseArgsNoArgs(t *testing.T) {
	cfg, err := ParseArgs(Default(), []string{"crepl"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("no flags should keep defaults, got %+v", cfg)
	}
}

func TestParseArgsRejectsPositional(t *testing.T) {
	_, err := ParseArgs(Default(), []string{"crepl", "file.cpp"})
	if !errors.Is(err, ErrArgs) {
		t.Fatalf("expected ErrArgs, got %v", err)
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	if _, err := ParseArgs(Default(), []string{"crepl", "-z"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if _, err := ParseArgs(Default(), []string{"crepl", "-c"}); err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no compiler", func(c *Config) { c.Compiler = "" }},
		{"no source", func(c *Config) { c.SourcePath = "" }},
		{"same file", func(c *Config) { c.ArtifactPath = "./repl.cpp" }},
		{"same chars", func(c *Config) { c.Meta = '>' }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
