package level

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/parameter"
)

// Polygon fixture limit of the physics backend.
const maxPolygonVertices = 8

// Validate rejects levels that cannot be spawned. The critical rule:
// every fragment must carry a non-zero initial velocity, because the
// spawn offset direction is derived from it. A zero vector here is a
// data error, not something to patch over at split time.
func Validate(d *Data) error {
	if d.Name == "" {
		return fmt.Errorf("level has no name")
	}
	if !inArena(d.PlayerSpawn) {
		return fmt.Errorf("level %q: player_spawn %v outside the arena", d.Name, d.PlayerSpawn)
	}
	for i := range d.Obstacles {
		if err := validateObstacle(&d.Obstacles[i]); err != nil {
			return fmt.Errorf("level %q: obstacles[%d]: %w", d.Name, i, err)
		}
	}
	if len(d.Particles) == 0 {
		return fmt.Errorf("level %q: no particles to clear", d.Name)
	}
	for i := range d.Particles {
		p := &d.Particles[i]
		if !inArena(p.Position) {
			return fmt.Errorf("level %q: particles[%d]: position %v outside the arena", d.Name, i, p.Position)
		}
		if err := validateNode(&p.Particle, true); err != nil {
			return fmt.Errorf("level %q: particles[%d]: %w", d.Name, i, err)
		}
	}
	return nil
}

func validateNode(p *Particle, root bool) error {
	if p.Radius <= 0 {
		return fmt.Errorf("radius %v must be positive", p.Radius)
	}
	if !root && p.Velocity.Len() == 0 {
		return fmt.Errorf("fragment needs a non-zero velocity")
	}
	for i := range p.Children {
		if err := validateNode(&p.Children[i], false); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}

func validateObstacle(o *Obstacle) error {
	if o.Polygon() {
		if len(o.Vertices) < 3 {
			return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(o.Vertices))
		}
		if len(o.Vertices) > maxPolygonVertices {
			return fmt.Errorf("polygon limited to %d vertices, got %d", maxPolygonVertices, len(o.Vertices))
		}
		return nil
	}
	if o.Size.X() <= 0 || o.Size.Y() <= 0 {
		return fmt.Errorf("box size %v must be positive", o.Size)
	}
	return nil
}

func inArena(p mgl32.Vec2) bool {
	return p.X() >= -parameter.ArenaWidth/2 && p.X() <= parameter.ArenaWidth/2 &&
		p.Y() >= -parameter.ArenaHeight/2 && p.Y() <= parameter.ArenaHeight/2
}
