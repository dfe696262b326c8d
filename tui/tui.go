// Package tui implements the terminal line editor used by the REPL.
//
// Every prompt runs a short-lived bubbletea program around a single
// textinput. Enter submits the line; Ctrl+C or Ctrl+D on an empty line ends
// input; Up and Down walk the history of submitted lines. The final view
// leaves the submitted line on screen so the compiled program's output
// starts on a fresh line below it.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

// lineModel is the bubbletea model for one prompt.
type lineModel struct {
	input textinput.Model

	history []string
	pos     int    // index into history; len(history) means the draft
	draft   string // text typed before walking into history

	done bool
	eof  bool
}

func newLineModel(prompt string, history []string) lineModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.CharLimit = 0
	ti.Focus()

	return lineModel{
		input:   ti,
		history: history,
		pos:     len(history),
	}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}
			if key.Type == tea.KeyCtrlC {
				m.input.SetValue("")
				return m, nil
			}
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recall moves through history by delta, keeping the unsent draft at the
// end.
func (m *lineModel) recall(delta int) {
	next := m.pos + delta
	if next < 0 || next > len(m.history) {
		return
	}
	if m.pos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.pos = next
	if m.pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.pos])
	}
	m.input.CursorEnd()
}

func (m lineModel) View() string {
	if m.done || m.eof {
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}

// Reader is a session.LineReader backed by the line editor.
type Reader struct {
	history *History

	in  io.Reader
	out io.Writer
}

// NewReader creates a reader on the given terminal streams that records
// submitted lines in history. A nil history keeps nothing between prompts.
func NewReader(history *History, in io.Reader, out io.Writer) *Reader {
	if history == nil {
		history = &History{}
	}
	return &Reader{history: history, in: in, out: out}
}

// ReadLine runs the editor for one line. Ending input returns io.EOF.
func (r *Reader) ReadLine(prompt string) (string, error) {
	p := tea.NewProgram(newLineModel(prompt, r.history.Entries()),
		tea.WithInput(r.in), tea.WithOutput(r.out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("line editor: %w", err)
	}

	m := final.(lineModel)
	if m.eof {
		return "", io.EOF
	}
	line := m.input.Value()
	r.history.Add(line)
	return line, nil
}
