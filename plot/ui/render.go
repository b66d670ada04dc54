package ui

import (
	"image"
	"image/color"

	"grapher/plot/registry"
	"grapher/plot/render"
)

var (
	colorPanelBG = color.RGBA{R: 0xF8, G: 0xF9, B: 0xFA, A: 0xFF}
	colorText    = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	colorDim     = color.RGBA{R: 0x6C, G: 0x75, B: 0x7D, A: 0xFF}
	colorSelect  = color.RGBA{R: 0xE0, G: 0xE7, B: 0xEE, A: 0xFF}
	colorError   = color.RGBA{R: 0xC0, G: 0x39, B: 0x2B, A: 0xFF}
	colorSuccess = color.RGBA{R: 0x27, G: 0xAE, B: 0x60, A: 0xFF}
)

func (t *Task) render() {
	if t.d == nil {
		return
	}
	if t.plotDirty {
		t.renderPlot()
		t.plotDirty = false
	}
	if t.panelDirty {
		t.renderPanel()
		t.panelDirty = false
	}
	_ = t.fb.Present()
}

func (t *Task) renderPlot() {
	f := t.plotter.Frame
	d := t.d.Clipped(image.Rect(0, 0, f.Width, f.Height))

	res := t.result
	if res == nil && t.view.Validate() == nil {
		res = &registry.Result{Viewport: t.view}
	}
	t.plotter.Draw(d, res)

	if t.msg.text != "" {
		c := colorSuccess
		if t.msg.err {
			c = colorError
		}
		render.Text(d, t.font, int16(f.Margin), (int16(f.Margin)-t.font.Height)/2, t.msg.text, c, 0)
	}
}

func (t *Task) renderPanel() {
	w := t.fb.Width()
	half := w / 2
	fh := t.font.Height
	y0 := t.panelY
	panelBottom := int16(t.fb.Height())

	left := t.d.Clipped(image.Rect(0, int(y0), half, int(panelBottom)))
	left.Fill(colorPanelBG)
	cols := (half - 4) / int(t.font.Width)

	// Input line with a block cursor.
	prompt := "f(x)= "
	x := int16(2)
	render.Text(left, t.font, x, y0, prompt+string(t.input), colorText, cols)
	cx := x + int16(len(prompt)+t.cursor)*t.font.Width
	_ = left.FillRectangle(cx, y0+fh-2, t.font.Width, 2, colorText)

	y := y0 + fh
	render.Text(left, t.font, x, y, "functions (F1 plot, F2 on/off, F3 delete):", colorDim, cols)
	y += fh
	views := t.reg.Views()
	if len(views) == 0 {
		render.Text(left, t.font, x, y, "none added", colorDim, cols)
	}
	first := 0
	visible := int((panelBottom - y) / fh)
	if visible > 0 && t.selected >= visible {
		first = t.selected - visible + 1
	}
	for _, v := range views[first:] {
		if y+fh > panelBottom {
			break
		}
		if v.Index == t.selected {
			_ = left.FillRectangle(0, y, int16(half), fh, colorSelect)
		}
		_ = left.FillRectangle(x, y+2, fh-4, fh-4, v.Color)
		mark := "[x] "
		if !v.Enabled {
			mark = "[ ] "
		}
		render.Text(left, t.font, x+fh, y, mark+v.Expression, colorText, cols-2)
		y += fh
	}

	// Points panel above the event log.
	bottom := panelBottom
	if t.termRegion != nil {
		_, th := t.termRegion.Size()
		bottom -= th
	}
	right := t.d.Clipped(image.Rect(half, int(y0), w, int(bottom)))
	right.Fill(colorPanelBG)
	rcols := (w - half - 4) / int(t.font.Width)
	rx := int16(half + 2)
	y = y0
	render.Text(right, t.font, rx, y, "points:", colorDim, rcols)
	y += fh
	for _, line := range t.PointsInfo() {
		if y+fh > bottom {
			break
		}
		render.Text(right, t.font, rx, y, line, colorText, rcols)
		y += fh
	}
}
