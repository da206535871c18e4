package llama

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/llama-arcade/internal/config"
)

func TestGenerateCoversEveryCharacter(t *testing.T) {
	gen := config.DefaultLlamaConfig().Generator
	phrases := append([]string{"HI", "A B", "  X  ", ""}, config.DefaultLlamaConfig().LevelNames()...)

	for _, phrase := range phrases {
		for seed := int64(1); seed <= 20; seed++ {
			lvl := Generate(phrase, rand.New(rand.NewSource(seed)), gen)

			var want, got []int
			for i, ch := range []rune(phrase) {
				if ch != ' ' {
					want = append(want, i)
				}
			}
			for _, l := range lvl.Letters {
				got = append(got, l.TargetIndex)
				assert.Equal(t, []rune(phrase)[l.TargetIndex], l.Char)
			}
			for _, b := range lvl.Boxes {
				got = append(got, b.TargetIndex)
				assert.True(t, b.Active)
			}
			sort.Ints(got)

			assert.Equal(t, want, got, "phrase %q seed %d", phrase, seed)
			assert.Equal(t, len(want), RequiredLetters(lvl.Phrase))
			assert.GreaterOrEqual(t, lvl.WorldWidth, ViewportWidth)
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	gen := config.DefaultLlamaConfig().Generator
	lvl := Generate("A B", rand.New(rand.NewSource(3)), gen)

	require.NotEmpty(t, lvl.Platforms)
	start := lvl.Platforms[0]
	assert.Equal(t, 0.0, start.X)
	assert.Equal(t, GroundY, start.Y)
	assert.Equal(t, 600.0, start.W)

	finish := lvl.Platforms[len(lvl.Platforms)-1]
	assert.Equal(t, 340.0, finish.Y)
	assert.Equal(t, 400.0, finish.W)
	assert.Equal(t, finish.X+200, lvl.Flag.X)
	assert.Equal(t, 340.0, lvl.Flag.Y)
	assert.Equal(t, finish.X+600, lvl.WorldWidth)

	for _, p := range lvl.Platforms {
		assert.Positive(t, p.W)
		assert.Positive(t, p.H)
		for _, f := range p.Flowers {
			assert.GreaterOrEqual(t, f.Offset, 0.0)
			assert.Less(t, f.Offset, p.W)
		}
	}
	for _, l := range lvl.Letters {
		assert.GreaterOrEqual(t, l.Y, 180.0)
		assert.Less(t, l.Y, 230.0)
		assert.Equal(t, LetterSize, l.W)
	}
	for _, b := range lvl.Boxes {
		assert.Equal(t, 130.0, b.Y)
		assert.Equal(t, BoxSize, b.W)
	}
}

func TestGenerateSpaceIsGround(t *testing.T) {
	gen := config.DefaultLlamaConfig().Generator
	lvl := Generate(" ", rand.New(rand.NewSource(1)), gen)

	require.Len(t, lvl.Platforms, 3)
	space := lvl.Platforms[1]
	assert.Equal(t, 500.0, space.X)
	assert.Equal(t, GroundY, space.Y)
	assert.Equal(t, 300.0, space.W)
	assert.Equal(t, 1100.0, lvl.Platforms[2].X)
	assert.Empty(t, lvl.Letters)
	assert.Empty(t, lvl.Boxes)
}

func TestGenerateChallengeKinds(t *testing.T) {
	gen := config.DefaultLlamaConfig().Generator

	gen.LetterChance = 1
	lvl := Generate("ABC", rand.New(rand.NewSource(9)), gen)
	assert.Len(t, lvl.Letters, 3)
	assert.Empty(t, lvl.Boxes)

	gen.LetterChance = 0
	lvl = Generate("ABC", rand.New(rand.NewSource(9)), gen)
	assert.Empty(t, lvl.Letters)
	assert.Len(t, lvl.Boxes, 3)
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := config.DefaultLlamaConfig().Generator
	a := Generate("START HACK PERU", rand.New(rand.NewSource(42)), gen)
	b := Generate("START HACK PERU", rand.New(rand.NewSource(42)), gen)
	c := Generate("START HACK PERU", rand.New(rand.NewSource(43)), gen)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Platforms, c.Platforms)
}
