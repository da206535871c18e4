package gfx

import (
	"image/color"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Colors for rendering
var (
	colorSky     = color.RGBA{135, 206, 235, 255}
	colorHUD     = color.RGBA{26, 26, 46, 255}
	colorGrass   = color.RGBA{76, 175, 80, 255}
	colorDirt    = color.RGBA{121, 85, 72, 255}
	colorLlama   = color.RGBA{245, 222, 179, 255}
	colorEye     = color.RGBA{40, 40, 40, 255}
	colorBox     = color.RGBA{255, 193, 7, 255}
	colorBoxUsed = color.RGBA{158, 158, 158, 255}
	colorLetter  = color.RGBA{255, 215, 0, 255}
	colorPole    = color.RGBA{97, 97, 97, 255}
	colorPennant = color.RGBA{229, 57, 53, 255}
	colorHeart   = color.RGBA{229, 57, 53, 255}
	colorHeartBG = color.RGBA{80, 80, 80, 255}
	colorSlot    = color.RGBA{60, 60, 80, 255}
	colorSlotHit = color.RGBA{255, 215, 0, 255}
	colorOverlay = color.RGBA{0, 0, 0, 160}
	colorDamage  = color.RGBA{255, 0, 0, 70}
)

// palette maps the shared cell colors to RGBA for flowers and particles.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {255, 255, 255, 255},
	core.ColorRed:           {205, 49, 49, 255},
	core.ColorGreen:         {13, 188, 121, 255},
	core.ColorYellow:        {229, 229, 16, 255},
	core.ColorBlue:          {36, 114, 200, 255},
	core.ColorMagenta:       {188, 63, 188, 255},
	core.ColorCyan:          {17, 168, 205, 255},
	core.ColorWhite:         {229, 229, 229, 255},
	core.ColorBrightRed:     {241, 76, 76, 255},
	core.ColorBrightGreen:   {35, 209, 139, 255},
	core.ColorBrightYellow:  {245, 245, 67, 255},
	core.ColorBrightBlue:    {59, 142, 234, 255},
	core.ColorBrightMagenta: {214, 112, 214, 255},
	core.ColorBrightCyan:    {41, 184, 219, 255},
	core.ColorBrightWhite:   {255, 255, 255, 255},
	core.ColorOrange:        {255, 135, 0, 255},
	core.ColorGray:          {138, 138, 138, 255},
	core.ColorBrown:         {135, 95, 0, 255},
	core.ColorPink:          {255, 175, 215, 255},
	core.ColorGold:          {255, 215, 0, 255},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}
