package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mkaza/fission/engine"
	"github.com/mkaza/fission/level"
	"github.com/mkaza/fission/progress"
)

var logo = []string{
	`  ___ _    ___ ___ _  ___  _  _ `,
	` | __| |  / __/ __| |/ _ \| \| |`,
	` | _|| |  \__ \__ \ | (_) | .\ |`,
	` |_| |_|  |___/___/_|\___/|_|\_|`,
}

func (c *canvas) drawLogo(y int) {
	st := c.style(rgbAccent)
	for i, line := range logo {
		c.textCentered(y+i, line, st)
	}
}

func (r *Renderer) drawSplash(c *canvas) {
	c.drawLogo(c.rows/2 - 3)
	c.textCentered(c.rows/2+3, "break everything down", c.style(rgbTextDim))
}

func (r *Renderer) drawTitle(c *canvas) {
	c.drawLogo(3)
	cursor := r.ctx.Res.Menu.Title
	y := c.rows/2 - len(engine.TitleMenu)/2
	for i, label := range engine.TitleMenu {
		st := c.style(rgbText)
		prefix := "  "
		if i == cursor {
			st = c.style(rgbAccent).Bold(true)
			prefix = "▸ "
		}
		c.textCentered(y+i*2, prefix+label, st)
	}
	c.hintBar("↑/↓ move   enter select   m mute   q quit")
}

// drawLevelSelect lists the library with the progress line for the
// stage under the cursor. The list windows itself when it outgrows
// the screen.
func (r *Renderer) drawLevelSelect(c *canvas) {
	c.textCentered(2, "select level", c.style(rgbAccent).Bold(true))

	lib := r.ctx.Res.Library
	if lib == nil {
		c.textCentered(c.rows/2, "no levels found", c.style(rgbWarn))
		c.hintBar("esc back")
		return
	}
	stages := lib.Stages()
	if len(stages) == 0 {
		c.textCentered(c.rows/2, "no levels found", c.style(rgbWarn))
		c.hintBar("esc back")
		return
	}

	cursor := r.ctx.Res.Menu.Select
	if cursor >= len(stages) {
		cursor = len(stages) - 1
	}
	recs := r.records()

	top := 4
	visible := c.rows - top - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if len(stages) > visible {
		start = cursor - visible/2
		if start < 0 {
			start = 0
		}
		if start > len(stages)-visible {
			start = len(stages) - visible
		}
	}

	x := c.cols/2 - 16
	if x < 1 {
		x = 1
	}
	for row := 0; row < visible && start+row < len(stages); row++ {
		st := stages[start+row]
		style := c.style(rgbText)
		prefix := "  "
		if start+row == cursor {
			style = c.style(rgbAccent).Bold(true)
			prefix = "▸ "
		}
		label := prefix + st.Title()
		if st.Custom {
			label += "  (custom)"
		}
		if rec, ok := recs[st.Key()]; ok && rec.Completions > 0 {
			label += "  ✓"
		}
		c.text(x, top+row, label, style)
	}

	r.drawStageStats(c, stages[cursor], recs)
	c.hintBar("↑/↓ move   enter play   esc back")
}

// drawStageStats writes the progress summary for the highlighted
// stage above the hint bar.
func (r *Renderer) drawStageStats(c *canvas, st *level.Stage, recs map[string]progress.Record) {
	rec, ok := recs[st.Key()]
	if !ok || rec.Attempts == 0 {
		c.textCentered(c.rows-3, "not played yet", c.style(rgbTextDim))
		return
	}
	line := fmt.Sprintf("attempts %d   cleared %d", rec.Attempts, rec.Completions)
	if best, ok := rec.Best(); ok {
		line += "   best " + clockFormat(best)
	}
	line += "   played " + humanize.Time(rec.LastPlayed())
	c.textCentered(c.rows-3, line, c.style(rgbTextDim))
}

// selectStats caches the progress table for the duration of one menu
// visit, so the renderer does not hit the database every frame.
type selectStats struct {
	loaded time.Time
	byKey  map[string]progress.Record
}

func (r *Renderer) records() map[string]progress.Record {
	since := r.ctx.State.ScreenSince()
	if r.stats.byKey != nil && r.stats.loaded.Equal(since) {
		return r.stats.byKey
	}
	r.stats.loaded = since
	r.stats.byKey = map[string]progress.Record{}
	if r.ctx.Res.Progress == nil {
		return r.stats.byKey
	}
	recs, err := r.ctx.Res.Progress.All()
	if err != nil {
		return r.stats.byKey
	}
	for _, rec := range recs {
		r.stats.byKey[rec.Key] = rec
	}
	return r.stats.byKey
}

func (r *Renderer) drawLoading(c *canvas) {
	dots := int(r.ctx.Res.Time.Now.UnixMilli()/300) % 4
	c.textCentered(c.rows/2, "loading"+"..."[:dots], c.style(rgbText))
}

// drawEnd is the campaign-complete screen, reached only after the
// last numbered level clears.
func (r *Renderer) drawEnd(c *canvas) {
	c.drawLogo(c.rows/2 - 5)
	c.textCentered(c.rows/2+1, "every level cleared", c.style(rgbAccent).Bold(true))
	c.textCentered(c.rows/2+3, "thanks for playing", c.style(rgbText))
	c.hintBar("any key to return")
}
