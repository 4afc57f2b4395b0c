package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/level"
)

// canvas binds the screen to the world projection and the frame's
// fade factor. Every draw call routes through it so screen
// transitions fade uniformly.
type canvas struct {
	screen tcell.Screen
	view   engine.View
	cols   int
	rows   int
	fade   float32
}

func newCanvas(screen tcell.Screen, view engine.View, fade float32) *canvas {
	w, h := screen.Size()
	return &canvas{screen: screen, view: view, cols: w, rows: h, fade: fade}
}

// style draws glyphs over the arena background.
func (c *canvas) style(fg level.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toColor(shade(fg, c.fade))).
		Background(toColor(rgbBackground))
}

// fillStyle paints the cell body itself.
func (c *canvas) fillStyle(col level.Color) tcell.Style {
	return tcell.StyleDefault.Background(toColor(shade(col, c.fade)))
}

func (c *canvas) put(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.screen.SetContent(x, y, ch, nil, st)
}

func (c *canvas) text(x, y int, s string, st tcell.Style) {
	for i, ch := range []rune(s) {
		c.put(x+i, y, ch, st)
	}
}

func (c *canvas) textCentered(y int, s string, st tcell.Style) {
	c.text((c.cols-len([]rune(s)))/2, y, s, st)
}

// fillCircle paints the cells whose world centers fall inside the
// circle. The projection is anisotropic, so the inclusion test runs
// in world space, not on cell indices. The center cell is always
// painted so small bodies never vanish between cells.
func (c *canvas) fillCircle(center mgl32.Vec2, radius float32, col level.Color) {
	st := c.fillStyle(col)
	cx, cy := c.view.WorldToCell(center)
	c.put(cx, cy, ' ', st)

	x0, y0 := c.view.WorldToCell(center.Add(mgl32.Vec2{-radius, radius}))
	x1, y1 := c.view.WorldToCell(center.Add(mgl32.Vec2{radius, -radius}))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if p := c.view.CellToWorld(x, y); p.Sub(center).Len() <= radius {
				c.put(x, y, ' ', st)
			}
		}
	}
}

// strokeCircle marks the rim band of a circle, for selection halos.
func (c *canvas) strokeCircle(center mgl32.Vec2, radius float32, col level.Color) {
	cw, ch := c.view.CellSize()
	band := cw
	if ch > band {
		band = ch
	}
	band *= 0.7
	st := c.style(col)
	pad := radius + band
	x0, y0 := c.view.WorldToCell(center.Add(mgl32.Vec2{-pad, pad}))
	x1, y1 := c.view.WorldToCell(center.Add(mgl32.Vec2{pad, -pad}))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := c.view.CellToWorld(x, y).Sub(center).Len()
			if d >= radius-band/2 && d <= radius+band/2 {
				c.put(x, y, '·', st)
			}
		}
	}
}

// line draws a world-space segment with the given glyph.
func (c *canvas) line(a, b mgl32.Vec2, ch rune, col level.Color) {
	x0, y0 := c.view.WorldToCell(a)
	x1, y1 := c.view.WorldToCell(b)
	st := c.style(col)

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.put(x0, y0, ch, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillObstacle paints a terrain body, box or polygon, by testing each
// covered cell's world center against the shape.
func (c *canvas) fillObstacle(ob *level.Obstacle, col level.Color) {
	st := c.fillStyle(col)
	br := boundingRadius(ob)
	x0, y0 := c.view.WorldToCell(ob.Position.Add(mgl32.Vec2{-br, br}))
	x1, y1 := c.view.WorldToCell(ob.Position.Add(mgl32.Vec2{br, -br}))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if ob.Contains(c.view.CellToWorld(x, y)) {
				c.put(x, y, ' ', st)
			}
		}
	}
}

func boundingRadius(ob *level.Obstacle) float32 {
	if !ob.Polygon() {
		return ob.Size.Len() / 2
	}
	var br float32
	for _, v := range ob.Vertices {
		if l := v.Len(); l > br {
			br = l
		}
	}
	return br
}

// panel clears a rectangle and draws its border, for the pause menu
// and the metrics overlay.
func (c *canvas) panel(x, y, w, h int, st tcell.Style) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			ch := ' '
			switch {
			case (row == 0 || row == h-1) && (col == 0 || col == w-1):
				ch = cornerGlyph(row == 0, col == 0)
			case row == 0 || row == h-1:
				ch = '─'
			case col == 0 || col == w-1:
				ch = '│'
			}
			c.put(x+col, y+row, ch, st)
		}
	}
}

func cornerGlyph(top, left bool) rune {
	switch {
	case top && left:
		return '┌'
	case top && !left:
		return '┐'
	case !top && left:
		return '└'
	}
	return '┘'
}

// arrowGlyph picks the 8-way glyph nearest the direction. World y
// points up.
func arrowGlyph(dir mgl32.Vec2) rune {
	if dir.Len() == 0 {
		return '·'
	}
	ang := math.Atan2(float64(dir.Y()), float64(dir.X()))
	oct := int(math.Round(ang / (math.Pi / 4)))
	switch (oct%8 + 8) % 8 {
	case 0:
		return '→'
	case 1:
		return '↗'
	case 2:
		return '↑'
	case 3:
		return '↖'
	case 4:
		return '←'
	case 5:
		return '↙'
	case 6:
		return '↓'
	}
	return '↘'
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
