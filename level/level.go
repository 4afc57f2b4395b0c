package level

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleKind separates ordinary splittable particles from killers,
// which end the attempt on player contact instead of decomposing.
type ParticleKind uint8

const (
	KindNormal ParticleKind = iota
	KindKiller
)

func (k ParticleKind) String() string {
	if k == KindKiller {
		return "killer"
	}
	return "normal"
}

// MarshalText emits the kind as its lowercase name.
func (k ParticleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ParticleKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "normal":
		*k = KindNormal
	case "killer":
		*k = KindKiller
	default:
		return fmt.Errorf("unknown particle kind %q", text)
	}
	return nil
}

// Color is an sRGB triple stored as "#rrggbb" in level files.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{r, g, b} }

func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("color %q: want #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("color %q: %w", s, err)
	}
	*c = Color{r, g, b}
	return nil
}

// Particle is one node of a decomposition tree. Children describe the
// fragments released when this node is split; a node without children
// simply vanishes on impact. Velocity is the fragment's initial
// velocity and is ignored on root nodes, which spawn at rest.
type Particle struct {
	Kind     ParticleKind `toml:"kind"`
	Radius   float32      `toml:"radius"`
	Color    Color        `toml:"color"`
	Velocity mgl32.Vec2   `toml:"velocity"`
	Children []Particle   `toml:"children,omitempty"`
}

// NodeCount reports the total number of instances this definition can
// ever produce, the node itself included.
func (p *Particle) NodeCount() int {
	n := 1
	for i := range p.Children {
		n += p.Children[i].NodeCount()
	}
	return n
}

// Depth reports the longest chain of splits below this node.
func (p *Particle) Depth() int {
	d := 0
	for i := range p.Children {
		if c := p.Children[i].Depth() + 1; c > d {
			d = c
		}
	}
	return d
}

func (p *Particle) clone() Particle {
	c := *p
	if len(p.Children) > 0 {
		c.Children = make([]Particle, len(p.Children))
		for i := range p.Children {
			c.Children[i] = p.Children[i].clone()
		}
	}
	return c
}

// Placement pins a particle definition to a spawn position.
type Placement struct {
	Position mgl32.Vec2 `toml:"position"`
	Particle Particle   `toml:"particle"`
}

// Obstacle is a static terrain body. With Vertices empty it is an
// axis-aligned box of the given full Size; otherwise a convex polygon
// whose vertices are relative to Position. Killer obstacles end the
// attempt on player contact.
type Obstacle struct {
	Position mgl32.Vec2   `toml:"position"`
	Size     mgl32.Vec2   `toml:"size"`
	Vertices []mgl32.Vec2 `toml:"vertices,omitempty"`
	Angle    float32      `toml:"angle"`
	Killer   bool         `toml:"killer,omitempty"`
	Color    Color        `toml:"color"`
}

// Polygon reports whether the obstacle uses an explicit vertex list.
func (o *Obstacle) Polygon() bool { return len(o.Vertices) > 0 }

// Contains tests a world point against the obstacle footprint, the
// same dimensions its collider is built from. The editor picks with
// it and the renderer rasterizes with it.
func (o *Obstacle) Contains(p mgl32.Vec2) bool {
	local := mgl32.Rotate2D(-o.Angle).Mul2x1(p.Sub(o.Position))
	if o.Polygon() {
		return polygonContains(o.Vertices, local)
	}
	return abs32(local.X()) <= o.Size.X()/2 && abs32(local.Y()) <= o.Size.Y()/2
}

// polygonContains assumes a convex outline, matching the collider.
func polygonContains(verts []mgl32.Vec2, p mgl32.Vec2) bool {
	sign := float32(0)
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		edge := b.Sub(a)
		rel := p.Sub(a)
		cross := edge.X()*rel.Y() - edge.Y()*rel.X()
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (sign > 0) != (cross > 0) {
			return false
		}
	}
	return true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Data is one complete level: metadata, terrain, and the initial
// particle placements. ID is assigned by the editor on first save and
// keys progress tracking for custom levels.
type Data struct {
	ID          string      `toml:"id,omitempty"`
	Name        string      `toml:"name"`
	Author      string      `toml:"author,omitempty"`
	PlayerSpawn mgl32.Vec2  `toml:"player_spawn"`
	Obstacles   []Obstacle  `toml:"obstacles,omitempty"`
	Particles   []Placement `toml:"particles,omitempty"`
}

// RootCount is the number of particle instances present at spawn.
func (d *Data) RootCount() int { return len(d.Particles) }

// NodeTotal is the number of instances the level can ever produce.
func (d *Data) NodeTotal() int {
	n := 0
	for i := range d.Particles {
		n += d.Particles[i].Particle.NodeCount()
	}
	return n
}

// Clone deep-copies the level so a retained spawn snapshot cannot be
// mutated by the editor or a later load.
func (d *Data) Clone() *Data {
	c := *d
	if len(d.Obstacles) > 0 {
		c.Obstacles = make([]Obstacle, len(d.Obstacles))
		copy(c.Obstacles, d.Obstacles)
		for i := range d.Obstacles {
			if len(d.Obstacles[i].Vertices) > 0 {
				c.Obstacles[i].Vertices = make([]mgl32.Vec2, len(d.Obstacles[i].Vertices))
				copy(c.Obstacles[i].Vertices, d.Obstacles[i].Vertices)
			}
		}
	}
	if len(d.Particles) > 0 {
		c.Particles = make([]Placement, len(d.Particles))
		for i := range d.Particles {
			c.Particles[i] = Placement{
				Position: d.Particles[i].Position,
				Particle: d.Particles[i].Particle.clone(),
			}
		}
	}
	return &c
}
