package level

import "github.com/go-gl/mathgl/mgl32"

// Preset is a ready-made particle tree for the editor palette and the
// level generator. Build returns a fresh copy so palette placements
// never share child slices.
type Preset struct {
	Name  string
	Build func() Particle
}

var presets = []Preset{
	{Name: "solo", Build: func() Particle {
		return Particle{Radius: 26, Color: RGB(0x4e, 0xc9, 0xb0)}
	}},
	{Name: "twin", Build: func() Particle {
		return Particle{
			Radius: 30, Color: RGB(0xdc, 0xdc, 0x6a),
			Children: []Particle{
				{Radius: 18, Color: RGB(0xd7, 0xba, 0x7d), Velocity: mgl32.Vec2{160, 90}},
				{Radius: 18, Color: RGB(0xd7, 0xba, 0x7d), Velocity: mgl32.Vec2{-160, -90}},
			},
		}
	}},
	{Name: "triad", Build: func() Particle {
		return Particle{
			Radius: 34, Color: RGB(0x56, 0x9c, 0xd6),
			Children: []Particle{
				{Radius: 20, Color: RGB(0x9c, 0xdc, 0xfe), Velocity: mgl32.Vec2{0, 200}},
				{Radius: 20, Color: RGB(0x9c, 0xdc, 0xfe), Velocity: mgl32.Vec2{173, -100}},
				{Radius: 20, Color: RGB(0x9c, 0xdc, 0xfe), Velocity: mgl32.Vec2{-173, -100}},
			},
		}
	}},
	{Name: "burst", Build: func() Particle {
		return Particle{
			Radius: 40, Color: RGB(0xc5, 0x86, 0xc0),
			Children: []Particle{
				{Radius: 15, Color: RGB(0xd1, 0x9a, 0x66), Velocity: mgl32.Vec2{190, 190}},
				{Radius: 15, Color: RGB(0xd1, 0x9a, 0x66), Velocity: mgl32.Vec2{-190, 190}},
				{Radius: 15, Color: RGB(0xd1, 0x9a, 0x66), Velocity: mgl32.Vec2{190, -190}},
				{Radius: 15, Color: RGB(0xd1, 0x9a, 0x66), Velocity: mgl32.Vec2{-190, -190}},
			},
		}
	}},
	{Name: "nested", Build: func() Particle {
		inner := func(dir mgl32.Vec2) Particle {
			return Particle{
				Radius: 22, Color: RGB(0x6a, 0x99, 0x55), Velocity: dir,
				Children: []Particle{
					{Radius: 13, Color: RGB(0xb5, 0xce, 0xa8), Velocity: mgl32.Vec2{dir.Y(), -dir.X()}},
					{Radius: 13, Color: RGB(0xb5, 0xce, 0xa8), Velocity: mgl32.Vec2{-dir.Y(), dir.X()}},
				},
			}
		}
		return Particle{
			Radius: 36, Color: RGB(0x4f, 0xc1, 0xff),
			Children: []Particle{
				inner(mgl32.Vec2{170, 0}),
				inner(mgl32.Vec2{-170, 0}),
			},
		}
	}},
	{Name: "mine", Build: func() Particle {
		return Particle{Kind: KindKiller, Radius: 22, Color: RGB(0xf4, 0x47, 0x47)}
	}},
}

// Presets lists the palette in menu order.
func Presets() []Preset { return presets }

// PresetByName finds a palette entry, as the generator refers to
// presets by name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultObstacle is the editor's starting terrain block.
func DefaultObstacle(pos mgl32.Vec2) Obstacle {
	return Obstacle{
		Position: pos,
		Size:     mgl32.Vec2{120, 40},
		Color:    RGB(0x80, 0x80, 0x80),
	}
}
