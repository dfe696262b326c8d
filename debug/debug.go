package debug

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

var Enabled bool

// Output receives the trace. Tests swap it for a buffer.
var Output io.Writer = os.Stderr

func Log(format string, args ...any) {
	if !Enabled {
		return
	}
	fmt.Fprintf(Output, "[debug] "+format+"\n", args...)
}

// LogSource dumps a numbered listing of a program text inside a box.
func LogSource(label string, text string) {
	if !Enabled {
		return
	}
	sep := strings.Repeat("─", 60)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	fmt.Fprintf(Output, "[debug] ┌%s\n", sep)
	fmt.Fprintf(Output, "[debug] │ %s (%d lines)\n", label, len(lines))
	fmt.Fprintf(Output, "[debug] ├%s\n", sep)
	for i, line := range lines {
		fmt.Fprintf(Output, "[debug] │ %3d  %s\n", i+1, line)
	}
	fmt.Fprintf(Output, "[debug] └%s\n", sep)
}

// LogFile logs the size of a file on disk, or why it could not be read.
func LogFile(label string, path string) {
	if !Enabled {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		Log("%s %s: %v", label, path, err)
		return
	}
	Log("%s %s (%s)", label, path, humanize.Bytes(uint64(info.Size())))
}
