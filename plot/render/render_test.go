package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"grapher/hal"
	"grapher/plot/axis"
	"grapher/plot/registry"
)

// through565 is c after a round trip through the framebuffer encoding.
func through565(c color.RGBA) color.RGBA {
	p := rgb565From888(c.R, c.G, c.B)
	return color.RGBA{
		R: uint8(((p >> 11) & 0x1F) * 255 / 31),
		G: uint8(((p >> 5) & 0x3F) * 255 / 63),
		B: uint8((p & 0x1F) * 255 / 31),
		A: 0xFF,
	}
}

func pixel(fb hal.Framebuffer, x, y int) color.RGBA {
	return hal.ToRGBA(fb).RGBAAt(x, y)
}

func TestDisplay_ClipAndFill(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	fb.ClearRGB(0, 0, 0)
	d := NewDisplay(fb).Clipped(image.Rect(2, 2, 5, 5))

	d.Fill(White)
	d.SetPixel(8, 8, White)

	require.Equal(t, through565(White), pixel(fb, 3, 3), "inside")
	for _, p := range []image.Point{{1, 1}, {5, 5}, {8, 8}} {
		require.Equal(t, color.RGBA{A: 0xFF}, pixel(fb, p.X, p.Y), "outside %v", p)
	}
}

func TestRegion_Scroll(t *testing.T) {
	fb := hal.NewFramebuffer(8, 8)
	fb.ClearRGB(0, 0, 0)
	r := NewRegion(NewDisplay(fb), 2, 4, 4, 4)
	w, h := r.Size()
	require.Equal(t, [2]int16{4, 4}, [2]int16{w, h})

	r.SetScroll(1)
	r.SetPixel(0, 1, White) // memory row 1 shows on screen row 0
	require.Equal(t, through565(White), pixel(fb, 2, 4), "scrolled pixel")
	r.SetPixel(0, 0, White) // memory row 0 wraps to the last screen row
	require.Equal(t, through565(White), pixel(fb, 2, 7), "wrapped pixel")
	r.SetPixel(4, 0, White)
	require.Equal(t, color.RGBA{A: 0xFF}, pixel(fb, 6, 7), "pixel outside region was drawn")
}

func TestLine_Thickness(t *testing.T) {
	fb := hal.NewFramebuffer(20, 20)
	fb.ClearRGB(0, 0, 0)
	d := NewDisplay(fb)
	red := color.RGBA{R: 0xFF, A: 0xFF}

	Line(d, 2, 10, 17, 10, 3, red)
	for _, y := range []int{9, 10, 11} {
		require.Equal(t, through565(red), pixel(fb, 10, y), "(10,%d)", y)
	}
	require.NotEqual(t, through565(red), pixel(fb, 10, 12), "3px line is too thick")
}

func TestPlotter_DrawIdentity(t *testing.T) {
	const w, h = 640, 360
	fb := hal.NewFramebuffer(w, h)
	fb.ClearRGB(0, 0, 0)
	d := NewDisplay(fb)

	reg := registry.New(nil)
	_, err := reg.Add("x")
	require.NoError(t, err)
	res, err := reg.Plot(axis.Default)
	require.NoError(t, err)
	curveColor := res.Curves[0].Color

	p := Plotter{Frame: axis.Frame{Width: w, Height: h, Margin: 40}, Font: DefaultFont()}
	p.Draw(d, res)

	checks := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{name: "background", x: 5, y: 5, want: White},
		{name: "grid", x: 180, y: 60, want: GridColor},
		{name: "y axis", x: 320, y: 60, want: AxisColor},
		{name: "curve", x: 460, y: 110, want: curveColor},
		{name: "marker fill", x: 320, y: 180, want: curveColor},
		{name: "marker ring", x: 326, y: 180, want: White},
	}
	for _, c := range checks {
		require.Equal(t, through565(c.want), pixel(fb, c.x, c.y), "%s at (%d,%d)", c.name, c.x, c.y)
	}
}

func TestPlotter_NilResultClears(t *testing.T) {
	fb := hal.NewFramebuffer(50, 40)
	fb.ClearRGB(0, 0, 0)
	Plotter{Frame: axis.Frame{Width: 50, Height: 40, Margin: 5}}.Draw(NewDisplay(fb), nil)
	require.Equal(t, through565(White), pixel(fb, 25, 20), "center")
}

func TestPlotter_WideViewportSkipsGrid(t *testing.T) {
	const w, h = 320, 200
	fb := hal.NewFramebuffer(w, h)
	fb.ClearRGB(0, 0, 0)

	reg := registry.New(nil)
	_, err := reg.Add("x")
	require.NoError(t, err)
	for _, v := range []axis.Viewport{
		{XMin: 0, XMax: 1e15, YMin: -10, YMax: 10},
		{XMin: -1e9, XMax: 1e9, YMin: -1e9, YMax: 1e9},
		{XMin: -1.7e308, XMax: 1.7e308, YMin: -1.7e308, YMax: 1.7e308},
	} {
		res, err := reg.Plot(v)
		require.NoError(t, err)
		p := Plotter{Frame: axis.Frame{Width: w, Height: h, Margin: 20}, Font: DefaultFont()}
		require.NotPanics(t, func() { p.Draw(NewDisplay(fb), res) }, "%+v", v)
	}

	// 1e15 wide at step 10 is far denser than the frame: no vertical grid
	// lines, so a row away from the axes and curve stays white.
	res, err := reg.Plot(axis.Viewport{XMin: 1, XMax: 1e15, YMin: 1, YMax: 10})
	require.NoError(t, err)
	Plotter{Frame: axis.Frame{Width: w, Height: h, Margin: 20}}.Draw(NewDisplay(fb), res)
	for x := 21; x < w-21; x++ {
		require.Equal(t, through565(White), pixel(fb, x, 21), "x=%d", x)
	}
}
