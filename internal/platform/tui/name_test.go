package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

type fakeRenamer struct {
	names []string
}

func (f *fakeRenamer) Rename(_ context.Context, userID, name string) (*leaderboard.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", leaderboard.ErrMissingField)
	}
	f.names = append(f.names, name)
	return &leaderboard.User{ID: userID, Name: name, AvatarID: 4}, nil
}

func updateName(t *testing.T, m NameModel, msg tea.Msg) NameModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(NameModel)
	require.True(t, ok)
	return nm
}

func TestNameEntrySaves(t *testing.T) {
	r := &fakeRenamer{}
	m := NewNameModel(r, leaderboard.User{ID: "u1", AvatarID: 4}, 80)

	m = updateName(t, m, runes("Lola"))
	m = updateName(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Done())
	assert.True(t, m.Saved())
	assert.Equal(t, []string{"Lola"}, r.names)
	assert.Equal(t, "Lola", m.User().Name)
}

func TestNameEntryRejectsBlank(t *testing.T) {
	m := NewNameModel(&fakeRenamer{}, leaderboard.User{ID: "u1"}, 80)

	m = updateName(t, m, runes("   "))
	m = updateName(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "Name cannot be empty")
}

func TestNameEntryCancel(t *testing.T) {
	m := NewNameModel(&fakeRenamer{}, leaderboard.User{ID: "u1", Name: "Old"}, 80)

	m = updateName(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.Done())
	assert.False(t, m.Saved())
	assert.Equal(t, "Old", m.User().Name)
}
