// Command levelgen writes a numbered campaign of generated levels.
// The layout rides a Perlin field, so the same seed always produces
// the same campaign; difficulty rises with the level number through
// bigger preset trees, denser terrain, and killer elements.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/parameter"
)

var (
	outFlag   = flag.String("out", "levels/default", "output directory")
	countFlag = flag.Int("count", 5, "number of levels to generate")
	seedFlag  = flag.Int64("seed", 7, "noise seed")
)

// tiers lists which palette presets each level draws its trees from.
// Levels past the table reuse the last row.
var tiers = [][]string{
	{"solo"},
	{"solo", "twin"},
	{"twin", "triad"},
	{"triad", "burst", "mine"},
	{"burst", "nested", "mine"},
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outFlag, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	noise := perlin.NewPerlin(2, 2, 3, *seedFlag)

	for n := 0; n < *countFlag; n++ {
		d := generate(noise, n)
		if err := level.Validate(d); err != nil {
			fmt.Fprintf(os.Stderr, "generated level %d is invalid: %v\n", n, err)
			os.Exit(1)
		}
		path := filepath.Join(*outFlag, fmt.Sprintf("%d.toml", n))
		if err := level.WriteFile(path, d); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d roots, %d nodes, %d obstacles\n",
			path, d.RootCount(), d.NodeTotal(), len(d.Obstacles))
	}
}

func generate(noise *perlin.Perlin, n int) *level.Data {
	tier := tiers[len(tiers)-1]
	if n < len(tiers) {
		tier = tiers[n]
	}

	d := &level.Data{
		Name:        fmt.Sprintf("stage %d", n+1),
		Author:      "levelgen",
		PlayerSpawn: mgl32.Vec2{-parameter.ArenaWidth/2 + 180, 0},
	}

	// Trees land in the right half, clear of the launch corridor.
	roots := 2 + n
	for i := 0; i < roots; i++ {
		fx := float64(n)*17.0 + float64(i)*2.3
		px := 80 + unit(noise, fx, 0.3)*(parameter.ArenaWidth/2-260)
		py := (unit(noise, fx, 1.7) - 0.5) * (parameter.ArenaHeight - 240)
		pr, ok := level.PresetByName(tier[i%len(tier)])
		if !ok {
			continue
		}
		d.Particles = append(d.Particles, level.Placement{
			Position: mgl32.Vec2{float32(px), float32(py)},
			Particle: pr.Build(),
		})
	}

	// Vertical bars between spawn and targets, one more per level.
	for i := 0; i < n; i++ {
		fx := float64(n)*31.0 + float64(i)*4.1
		x := -40 + unit(noise, fx, 5.1)*360
		y := (unit(noise, fx, 6.4) - 0.5) * 400
		h := 120 + unit(noise, fx, 9.2)*180
		d.Obstacles = append(d.Obstacles, level.Obstacle{
			Position: mgl32.Vec2{float32(x), float32(y)},
			Size:     mgl32.Vec2{40, float32(h)},
			Color:    level.RGB(0x80, 0x80, 0x80),
		})
	}

	// From level 4 on, a killer wedge guards the arena floor.
	if n >= 3 {
		d.Obstacles = append(d.Obstacles, level.Obstacle{
			Position: mgl32.Vec2{0, -parameter.ArenaHeight/2 + 80},
			Killer:   true,
			Vertices: []mgl32.Vec2{{-60, -40}, {60, -40}, {0, 50}},
			Color:    level.RGB(0xf4, 0x47, 0x47),
		})
	}
	return d
}

// unit maps the noise field onto [0, 1].
func unit(p *perlin.Perlin, x, y float64) float64 {
	v := (p.Noise2D(x, y) + 1) / 2
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
