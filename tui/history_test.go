package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryAddSkipsEmptyAndRepeats(t *testing.T) {
	h := &History{}
	h.Add("int x = 5;")
	h.Add("")
	h.Add("int x = 5;")
	h.Add("std::cout << x;")
	h.Add("int x = 5;")

	got := h.Entries()
	want := []string{"int x = 5;", "std::cout << x;", "int x = 5;"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want %v", got, want)
		}
	}
}

func TestHistoryBounded(t *testing.T) {
	h := &History{}
	for i := 0; i < MaxHistory+10; i++ {
		h.Add(fmt.Sprintf("int v%d = %d;", i, i))
	}
	got := h.Entries()
	if len(got) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(got))
	}
	if got[0] != "int v10 = 10;" {
		t.Fatalf("oldest entry = %q", got[0])
	}
}

func TestHistorySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")

	h := LoadHistory(path)
	if len(h.Entries()) != 0 {
		t.Fatal("missing file should give empty history")
	}
	h.Add("int x = 5;")
	h.Add("std::cout << x;")
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}

	loaded := LoadHistory(path)
	got := loaded.Entries()
	if len(got) != 2 || got[1] != "std::cout << x;" {
		t.Fatalf("loaded %v", got)
	}
}

func TestHistoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	h := LoadHistory(path)
	if len(h.Entries()) != 0 {
		t.Fatal("corrupt file should give empty history")
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("expected corrupt file preserved: %v", err)
	}
}

func TestHistoryWithoutPath(t *testing.T) {
	h := LoadHistory("")
	h.Add("int x;")
	if err := h.Save(); err != nil {
		t.Fatalf("Save without path: %v", err)
	}
}
