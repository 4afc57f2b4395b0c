package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/editor"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

// drawEditorArena paints the draft from the preview entities the
// preview system mirrors out of the session. Definition pointers stay
// valid until the next revision rebuild, which happens before any
// draw.
func (r *Renderer) drawEditorArena(c *canvas) {
	previewQuery.Each(r.ctx.World, func(entry *donburi.Entry) {
		pd := component.Preview.Get(entry)
		pos := component.Position.Get(entry).Pos
		switch {
		case pd.Obstacle != nil:
			c.fillObstacle(pd.Obstacle, obstacleColor(pd.Obstacle))
			if pd.Selected {
				c.strokeCircle(pos, boundingRadius(pd.Obstacle)+8, rgbCursor)
			}
		case pd.Particle != nil:
			r.drawParticlePreview(c, pd.Particle, pos, pd.Selected)
		case pd.Player:
			c.fillCircle(pos, parameter.PlayerRadius, rgbPlayer)
			if pd.Selected {
				c.strokeCircle(pos, parameter.PlayerRadius+8, rgbCursor)
			}
		}
	})

	x, y := c.view.WorldToCell(r.sess.Cursor())
	c.put(x, y, '+', c.style(rgbCursor))
}

// drawParticlePreview shows a placed tree root with the same fragment
// arrows gameplay would spawn, so the split pattern reads before a
// test run.
func (r *Renderer) drawParticlePreview(c *canvas, def *level.Particle, pos mgl32.Vec2, selected bool) {
	c.fillCircle(pos, def.Radius, particleColor(def))
	for i := range def.Children {
		dir := def.Children[i].Velocity
		if dir.Len() == 0 {
			continue
		}
		anchor := pos.Add(dir.Normalize().Mul(def.Radius + parameter.ArrowOffset))
		ax, ay := c.view.WorldToCell(anchor)
		c.put(ax, ay, arrowGlyph(dir), c.style(rgbArrow))
	}
	if selected {
		c.strokeCircle(pos, def.Radius+8, rgbCursor)
	}
}

// drawEditorChrome writes the editor status row and the key legend.
func (r *Renderer) drawEditorChrome(c *canvas) {
	bg := c.fillStyle(rgbPanel)
	for x := 0; x < c.cols; x++ {
		c.put(x, 0, ' ', bg)
	}
	st := bg.Foreground(toColor(shade(rgbText, c.fade)))

	data := r.sess.Data()
	line := fmt.Sprintf("editor  %s", data.Name)
	line += fmt.Sprintf("   tool %s", r.sess.Tool())
	if r.sess.Tool() == editor.ToolParticle {
		_, preset := r.sess.Palette()
		line += fmt.Sprintf("  [%s]", preset.Name)
	}
	if sel := r.sess.Selection(); sel.Kind != editor.SelectNone {
		line += "   " + selectionLabel(sel)
	}
	line += fmt.Sprintf("   %dp %do", len(data.Particles), len(data.Obstacles))
	c.text(1, 0, line, st)

	save := "saved"
	saveStyle := bg.Foreground(toColor(shade(rgbTextDim, c.fade)))
	if r.sess.Dirty() {
		save = "unsaved"
		saveStyle = bg.Foreground(toColor(shade(rgbWarn, c.fade)))
	}
	c.text(c.cols-len(save)-1, 0, save, saveStyle)

	c.hintBar("tab tool   [/] preset   u undo   d delete   s save   p test   esc back")
}

func selectionLabel(sel editor.Selection) string {
	switch sel.Kind {
	case editor.SelectParticle:
		return fmt.Sprintf("sel particle %d", sel.Index)
	case editor.SelectObstacle:
		return fmt.Sprintf("sel obstacle %d", sel.Index)
	case editor.SelectPlayer:
		return "sel player"
	}
	return ""
}
