package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader shows prompt and returns the next line of input without its
// line terminator. At end of input it returns io.EOF, together with any
// unterminated text that preceded it.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Scanner is the plain LineReader used when input is not a terminal.
type Scanner struct {
	r *bufio.Reader
	w io.Writer
}

// NewScanner reads lines from r and writes prompts to w.
func NewScanner(r io.Reader, w io.Writer) *Scanner {
	return &Scanner{r: bufio.NewReader(r), w: w}
}

func (s *Scanner) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.w, prompt)
	line, err := s.r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read line: %w", err)
	}
	return line, err
}
