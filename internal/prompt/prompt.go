// Package prompt asks the user for a single line of input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user aborts the prompt.
var ErrCancelled = errors.New("prompt cancelled")

var labelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
	Bold(true)

// Model is a one-field bubbletea model.
type Model struct {
	label     string
	input     textinput.Model
	submitted bool
	cancelled bool
}

// New builds a focused prompt model.
func New(label, placeholder string) Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Focus()
	return Model{label: label, input: in}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyCtrlJ:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return labelStyle.Render(m.label) + m.input.View() + "\n"
}

// Value returns the trimmed input.
func (m Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Cancelled reports whether the user aborted the prompt.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Ask prompts for one line. On a terminal it runs an interactive bubbletea program;
// otherwise it reads a single line from in.
func Ask(ctx context.Context, in io.Reader, out io.Writer, label string) (string, error) {
	if !isTerminal(in) {
		return readLine(in, out, label)
	}

	p := tea.NewProgram(
		New(label, "full name"),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readLine serves piped stdin, where raw-mode key handling does not apply.
func readLine(in io.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read prompt input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
