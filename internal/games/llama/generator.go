package llama

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Generator layout constants.
const (
	startPlatformWidth = 600.0
	groundHeight       = 40.0
	cursorStart        = 500.0
	spacePlatformWidth = 300.0

	letterBaseY      = 180.0
	letterSpreadY    = 50.0
	ledgeWidth       = 120.0
	ledgeHeight      = 20.0
	stepWidth        = 80.0
	boxLedgeY        = 260.0
	boxY             = 130.0
	finishRunUp      = 300.0
	finishWidth      = 400.0
	finishHeight     = 60.0
	finishFlagOffset = 200.0
	worldTail        = 600.0
	flowerSpacing    = 20.0
)

// Level is a freshly generated layout for one phrase.
type Level struct {
	Phrase     []rune
	Platforms  []Platform
	Letters    []Letter
	Boxes      []MysteryBox
	Flag       Flag
	WorldWidth float64
}

// Generate lays out a level for phrase. Every non-space character gets one
// collectible, either a floating letter over a ledge or a mystery box above
// one; spaces become stretches of ground. All randomness comes from rng, so
// the same seed reproduces the same level.
func Generate(phrase string, rng *rand.Rand, gen config.LlamaGenerator) Level {
	runes := []rune(phrase)
	lvl := Level{Phrase: runes}

	lvl.Platforms = append(lvl.Platforms,
		newPlatform(rng, gen, 0, GroundY, startPlatformWidth, groundHeight))

	currentX := cursorStart
	stepThreshold := (gen.GapMin + gen.GapMax) / 2

	for i, ch := range runes {
		if ch == ' ' {
			lvl.Platforms = append(lvl.Platforms,
				newPlatform(rng, gen, currentX, GroundY, spacePlatformWidth, groundHeight))
			currentX += spacePlatformWidth
			continue
		}

		gap := gen.GapMin + rng.Float64()*(gen.GapMax-gen.GapMin)
		currentX += gap

		if rng.Float64() < gen.LetterChance {
			yPos := letterBaseY + rng.Float64()*letterSpreadY
			lvl.Platforms = append(lvl.Platforms,
				newPlatform(rng, gen, currentX-50, yPos+40, ledgeWidth, ledgeHeight))
			if gap > stepThreshold {
				lvl.Platforms = append(lvl.Platforms,
					newPlatform(rng, gen, currentX-gap/2-40, yPos+80, stepWidth, ledgeHeight))
			}
			lvl.Letters = append(lvl.Letters, Letter{
				Box:         core.NewBox(currentX-10, yPos, LetterSize, LetterSize),
				Char:        ch,
				TargetIndex: i,
			})
			continue
		}

		lvl.Platforms = append(lvl.Platforms,
			newPlatform(rng, gen, currentX-50, boxLedgeY, ledgeWidth, ledgeHeight))
		lvl.Boxes = append(lvl.Boxes, MysteryBox{
			Box:         core.NewBox(currentX-15, boxY, BoxSize, BoxSize),
			Char:        ch,
			TargetIndex: i,
			Active:      true,
		})
	}

	finalX := currentX + finishRunUp
	lvl.Platforms = append(lvl.Platforms,
		newPlatform(rng, gen, finalX, GameHeight-finishHeight, finishWidth, finishHeight))
	lvl.Flag = Flag{X: finalX + finishFlagOffset, Y: GameHeight - finishHeight}
	lvl.WorldWidth = math.Max(finalX+worldTail, ViewportWidth)

	return lvl
}

// RequiredLetters counts the characters that must be collected to win.
func RequiredLetters(phrase []rune) int {
	n := 0
	for _, ch := range phrase {
		if ch != ' ' {
			n++
		}
	}
	return n
}

func newPlatform(rng *rand.Rand, gen config.LlamaGenerator, x, y, w, h float64) Platform {
	p := Platform{Box: core.NewBox(x, y, w, h)}
	for i := 0; i < int(w/flowerSpacing); i++ {
		if rng.Float64() < gen.FlowerChance {
			p.Flowers = append(p.Flowers, Flower{
				Offset: rng.Float64() * w,
				Color:  flowerColors[rng.Intn(len(flowerColors))],
			})
		}
	}
	return p
}
