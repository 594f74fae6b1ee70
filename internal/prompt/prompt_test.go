package prompt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/registry-officer-search/internal/prompt"
)

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_SubmitOnEnter(t *testing.T) {
	t.Parallel()

	var m tea.Model = prompt.New("Enter the director's full name: ", "")
	m = typeString(m, "  Jane Doe ")
	assert.Contains(t, m.View(), "Enter the director's full name: ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	pm := m.(prompt.Model)
	assert.False(t, pm.Cancelled())
	assert.Equal(t, "Jane Doe", pm.Value())
	assert.Empty(t, pm.View())
}

func TestModel_CancelOnCtrlC(t *testing.T) {
	t.Parallel()

	var m tea.Model = prompt.New("name: ", "")
	m = typeString(m, "x")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	pm := m.(prompt.Model)
	assert.True(t, pm.Cancelled())
	assert.Empty(t, pm.View())
}

func TestAsk_ReadsPipedLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	got, err := prompt.Ask(context.Background(), strings.NewReader("  Jane Doe \nignored\n"), &out, "Enter the director's full name: ")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)
	assert.Equal(t, "Enter the director's full name: ", out.String())
}

func TestAsk_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := prompt.Ask(context.Background(), strings.NewReader(""), &bytes.Buffer{}, "name: ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
