package render

// drawOverlay pins the live metrics panel to the top-right corner,
// over whatever screen is up. Rows beyond the screen are dropped
// rather than scrolled; the panel is a debugging aid, not a pager.
func (r *Renderer) drawOverlay(c *canvas) {
	lines := r.ctx.Res.Metrics.Snapshot()
	if len(lines) == 0 {
		return
	}

	keyW, valW := 0, 0
	for _, l := range lines {
		if len(l.Key) > keyW {
			keyW = len(l.Key)
		}
		if len(l.Value) > valW {
			valW = len(l.Value)
		}
	}
	w := keyW + valW + 5
	h := len(lines) + 2
	if h > c.rows-2 {
		h = c.rows - 2
	}
	x := c.cols - w - 1
	y := 1

	st := c.fillStyle(rgbPanel).Foreground(toColor(rgbTextDim))
	c.panel(x, y, w, h, st)
	for i, l := range lines {
		if i >= h-2 {
			break
		}
		c.text(x+2, y+1+i, l.Key, st)
		c.text(x+w-2-len(l.Value), y+1+i, l.Value, st.Foreground(toColor(rgbText)))
	}
}
