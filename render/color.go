package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mkaza/fission/level"
)

// UI palette. Gameplay elements carry their colors in level data;
// these cover everything the chrome draws.
var (
	rgbBackground = level.RGB(10, 10, 14)
	rgbText       = level.RGB(186, 186, 196)
	rgbTextDim    = level.RGB(110, 110, 122)
	rgbAccent     = level.RGB(78, 201, 176)
	rgbWarn       = level.RGB(244, 71, 71)
	rgbPlayer     = level.RGB(236, 236, 236)
	rgbArrow      = level.RGB(255, 214, 102)
	rgbDrag       = level.RGB(120, 220, 160)
	rgbWall       = level.RGB(70, 70, 82)
	rgbCursor     = level.RGB(255, 255, 255)
	rgbPanel      = level.RGB(24, 24, 32)
)

func toColor(c level.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// shade multiplies channels by f, which implements both the screen
// fade and the immunity flicker.
func shade(c level.Color, f float32) level.Color {
	if f >= 1 {
		return c
	}
	if f < 0 {
		f = 0
	}
	return level.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
	}
}
