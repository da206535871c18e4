package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string                           { return s.id }
func (s stubGame) Title() string                        { return "Stub " + s.id }
func (s stubGame) Reset(core.RuntimeConfig)             {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen)                  {}
func (s stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{"stub_b"} })
	Register("stub_a", func() Game { return stubGame{"stub_a"} })

	assert.True(t, Exists("stub_a"))
	assert.False(t, Exists("missing"))

	g, err := Create("stub_a")
	require.NoError(t, err)
	assert.Equal(t, "stub_a", g.ID())

	_, err = Create("missing")
	assert.Error(t, err)

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.Equal(t, []string{"stub_b", "stub_a"}, ids, "registration order is kept")
	assert.Equal(t, "Stub stub_b", List()[0].Title)

	assert.Panics(t, func() {
		Register("stub_a", func() Game { return stubGame{"stub_a"} })
	})
}
