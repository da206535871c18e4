package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

const maxNameLength = 20

// Renamer changes a player's display name.
type Renamer interface {
	Rename(ctx context.Context, userID, name string) (*leaderboard.User, error)
}

// NameModel lets the player pick the name shown on the leaderboard.
type NameModel struct {
	renamer Renamer
	user    leaderboard.User
	input   textinput.Model
	errMsg  string
	width   int
	done    bool
	saved   bool
}

// NewNameModel creates a name entry prefilled with the user's current name.
func NewNameModel(renamer Renamer, user leaderboard.User, width int) NameModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength
	ti.SetValue(user.Name)
	ti.Focus()

	return NameModel{
		renamer: renamer,
		user:    user,
		input:   ti,
		width:   width,
	}
}

// Init starts the cursor blink.
func (m NameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the name entry.
func (m NameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m NameModel) submit() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	u, err := m.renamer.Rename(ctx, m.user.ID, m.input.Value())
	switch {
	case errors.Is(err, leaderboard.ErrMissingField):
		m.errMsg = "Name cannot be empty"
		return m, nil
	case err != nil:
		m.errMsg = err.Error()
		return m, nil
	}

	m.user = *u
	m.done = true
	m.saved = true
	return m, tea.Quit
}

// View renders the name entry.
func (m NameModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("CHOOSE YOUR NAME", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render(centerText(m.errMsg, m.width)))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText("Enter: Save  |  Esc: Cancel", m.width))
	b.WriteString("\n")

	return b.String()
}

// Done reports whether the entry was saved or cancelled.
func (m NameModel) Done() bool {
	return m.done
}

// Saved reports whether a new name was stored.
func (m NameModel) Saved() bool {
	return m.saved
}

// User returns the user, renamed if Saved.
func (m NameModel) User() leaderboard.User {
	return m.user
}
