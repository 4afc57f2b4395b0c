package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/mkaza/fission/component"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
	"github.com/mkaza/fission/physics"
)

var (
	obstacleQuery = donburi.NewQuery(filter.Contains(component.Obstacle))
	particleQuery = donburi.NewQuery(filter.Contains(component.Particle, component.Body))
	playerQuery   = donburi.NewQuery(filter.Contains(component.Player, component.Body))
	arrowQuery    = donburi.NewQuery(filter.Contains(component.Arrow, component.Position))
	previewQuery  = donburi.NewQuery(filter.Contains(component.Preview, component.Position))
)

// drawWorld paints the live arena: terrain first, then particles with
// their fragment arrows, the player on top, and the aim line over
// everything while a drag is held.
func (r *Renderer) drawWorld(c *canvas) {
	w := r.ctx.World

	obstacleQuery.Each(w, func(entry *donburi.Entry) {
		def := &component.Obstacle.Get(entry).Def
		c.fillObstacle(def, obstacleColor(def))
	})

	particleQuery.Each(w, func(entry *donburi.Entry) {
		p := component.Particle.Get(entry)
		pos := physics.Position(component.Body.Get(entry).B)
		col := particleColor(&p.Def)
		if entry.HasComponent(component.Immunity) {
			rem := component.Immunity.Get(entry).Remaining
			if (rem/parameter.ImmunityBlink)%2 == 1 {
				col = shade(col, 0.35)
			}
		}
		c.fillCircle(pos, p.Def.Radius, col)
	})

	arrowQuery.Each(w, func(entry *donburi.Entry) {
		pos := component.Position.Get(entry).Pos
		dir := component.Arrow.Get(entry).Dir
		x, y := c.view.WorldToCell(pos)
		c.put(x, y, arrowGlyph(dir), c.style(rgbArrow))
	})

	playerQuery.Each(w, func(entry *donburi.Entry) {
		pl := component.Player.Get(entry)
		pos := physics.Position(component.Body.Get(entry).B)
		c.fillCircle(pos, pl.Radius, rgbPlayer)
		if d := &r.ctx.Res.Drag; d.Active {
			drawAim(c, pos, pl.Radius, d.Vector())
		}
	})
}

// drawAim shows the pending launch from the player's rim along the
// drag vector. Below the dead zone the line dims instead of
// disappearing, so the player can see the gesture registering; beyond
// the clamp it stops growing, matching the impulse that would fire.
func drawAim(c *canvas, center mgl32.Vec2, radius float32, vec mgl32.Vec2) {
	l := vec.Len()
	if l == 0 {
		return
	}
	col := rgbDrag
	if l < parameter.DragMin {
		col = rgbTextDim
	}
	if l > parameter.DragMax {
		vec = vec.Mul(parameter.DragMax / l)
	}
	dir := vec.Normalize()
	from := center.Add(dir.Mul(radius))
	to := center.Add(vec)
	if vec.Len() <= radius {
		to = from
	}
	c.line(from, to, '∙', col)
	x, y := c.view.WorldToCell(to)
	c.put(x, y, arrowGlyph(vec), c.style(col))
}

func obstacleColor(def *level.Obstacle) level.Color {
	switch {
	case def.Killer:
		return rgbWarn
	case def.Color == (level.Color{}):
		return rgbWall
	}
	return def.Color
}

func particleColor(def *level.Particle) level.Color {
	switch {
	case def.Kind == level.KindKiller:
		return rgbWarn
	case def.Color == (level.Color{}):
		return rgbAccent
	}
	return def.Color
}
