package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkaza/fission/parameter"
)

// drawHUD fills the reserved top row with the attempt status: level
// title on the left, remaining count centered, timer and mode flags
// on the right.
func (r *Renderer) drawHUD(c *canvas) {
	bg := c.fillStyle(rgbPanel)
	for x := 0; x < c.cols; x++ {
		c.put(x, 0, ' ', bg)
	}

	now := r.ctx.Res.Time.Now
	att := r.ctx.State.Attempt(now)
	st := bg.Foreground(toColor(shade(rgbText, c.fade)))

	c.text(1, 0, att.Title, st)

	mid := fmt.Sprintf("remaining %d", att.Count)
	if att.DelayStarted {
		mid = "cleared"
		st = bg.Foreground(toColor(shade(rgbAccent, c.fade)))
	}
	c.text((c.cols-len(mid))/2, 0, mid, st)

	var flags []string
	if r.ctx.Res.Scale.Target() < parameter.NormalTimeScale {
		flags = append(flags, "slow")
	}
	if r.ctx.Res.Audio.Muted() {
		flags = append(flags, "muted")
	}
	if r.ctx.State.Paused() {
		flags = append(flags, "paused")
	}
	right := clockFormat(att.Elapsed)
	if len(flags) > 0 {
		right = strings.Join(flags, " ") + "  " + right
	}
	c.text(c.cols-len(right)-1, 0, right, bg.Foreground(toColor(shade(rgbTextDim, c.fade))))
}

// drawPauseMenu overlays the pause panel mid-arena. The simulation
// behind it is frozen, so nothing moves under the panel.
func (r *Renderer) drawPauseMenu(c *canvas) {
	lines := []string{
		"paused",
		"",
		"esc  resume",
		"r    restart level",
		"q    quit to menu",
	}
	w := 26
	h := len(lines) + 2
	x := (c.cols - w) / 2
	y := (c.rows - h) / 2
	st := c.fillStyle(rgbPanel).Foreground(toColor(rgbText))
	c.panel(x, y, w, h, st)
	for i, s := range lines {
		row := st
		if i == 0 {
			row = row.Foreground(toColor(rgbAccent)).Bold(true)
		}
		c.text(x+3, y+1+i, s, row)
	}
}

// clockFormat renders an attempt duration as m:ss.t.
func clockFormat(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, s)
}

// hintBar writes a dim key legend on the bottom row.
func (c *canvas) hintBar(s string) {
	st := c.style(rgbTextDim)
	c.text(1, c.rows-1, s, st)
}
