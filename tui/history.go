package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"crepl/debug"
)

// MaxHistory bounds the number of remembered lines.
const MaxHistory = 500

// History is the list of submitted lines, oldest first. Empty lines and
// immediate repeats are not recorded.
type History struct {
	path    string
	entries []string
}

// persistedHistory is the on-disk JSON format.
type persistedHistory struct {
	Lines []string `json:"lines"`
}

// LoadHistory reads the history file at path. A missing file gives an empty
// history. A corrupt file is moved aside to path+".corrupt" and the history
// starts empty.
func LoadHistory(path string) *History {
	h := &History{path: path}
	if path == "" {
		return h
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			debug.Log("history %s unreadable: %v", path, err)
		}
		return h
	}

	var state persistedHistory
	if err := json.Unmarshal(data, &state); err != nil {
		debug.Log("history %s corrupt: %v", path, err)
		if err := os.Rename(path, path+".corrupt"); err != nil {
			debug.Log("history %s: %v", path, err)
		}
		return h
	}

	for _, line := range state.Lines {
		h.Add(line)
	}
	debug.Log("history loaded %d lines from %s", len(h.entries), path)
	return h
}

// Add records a submitted line.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
}

// Entries returns a copy of the recorded lines.
func (h *History) Entries() []string {
	cp := make([]string, len(h.entries))
	copy(cp, h.entries)
	return cp
}

// Save writes the history to its file. Writes go to a temp file first and
// are renamed into place. A history without a path is not saved.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(persistedHistory{Lines: h.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return fmt.Errorf("rename history file: %w", err)
	}
	return nil
}
