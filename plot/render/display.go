// Package render draws plot results and text onto an RGB565 framebuffer.
package render

import (
	"image"
	"image/color"

	"grapher/hal"

	"tinygo.org/x/drivers"
)

// Display is a drivers.Displayer over a hal.Framebuffer. Pixels outside the
// clip rectangle are dropped.
type Display struct {
	fb   hal.Framebuffer
	clip image.Rectangle
}

var _ drivers.Displayer = (*Display)(nil)

// NewDisplay returns a display covering the whole framebuffer.
func NewDisplay(fb hal.Framebuffer) *Display {
	d := &Display{fb: fb}
	if fb != nil {
		d.clip = image.Rect(0, 0, fb.Width(), fb.Height())
	}
	return d
}

// Clipped returns a display sharing the framebuffer that only draws inside r.
func (d *Display) Clipped(r image.Rectangle) *Display {
	return &Display{fb: d.fb, clip: r.Intersect(d.clip)}
}

// Bounds is the clip rectangle.
func (d *Display) Bounds() image.Rectangle { return d.clip }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	if !(image.Point{X: int(x), Y: int(y)}).In(d.clip) {
		return
	}
	buf := d.fb.Buffer()
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(d.clip)
	if r.Empty() {
		return nil
	}

	buf := d.fb.Buffer()
	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * stride
		for px := r.Min.X; px < r.Max.X; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// Fill paints the whole clip rectangle.
func (d *Display) Fill(c color.RGBA) {
	r := d.clip
	_ = d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c)
}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

// Region is a window into a Display with its own origin and a vertical scroll
// offset, the way panel controllers scroll in hardware: screen row r shows
// memory row (r + scroll) mod height. It satisfies tinyterm.Displayer.
type Region struct {
	d      *Display
	x, y   int16
	w, h   int16
	scroll int16
}

// NewRegion returns the w x h window of d at (x, y).
func NewRegion(d *Display, x, y, w, h int16) *Region {
	return &Region{d: d.Clipped(image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))), x: x, y: y, w: w, h: h}
}

func (r *Region) Size() (x, y int16) { return r.w, r.h }

func (r *Region) screenY(y int16) int16 {
	if r.h <= 0 {
		return y
	}
	sy := (int(y) - int(r.scroll)) % int(r.h)
	if sy < 0 {
		sy += int(r.h)
	}
	return int16(sy)
}

func (r *Region) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.d.SetPixel(r.x+x, r.y+r.screenY(y), c)
}

func (r *Region) Display() error { return r.d.Display() }

func (r *Region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for row := y; row < y+height; row++ {
		if row < 0 || row >= r.h {
			continue
		}
		_ = r.d.FillRectangle(r.x+x, r.y+r.screenY(row), width, 1, c)
	}
	return nil
}

func (r *Region) SetScroll(line int16) {
	if r.h > 0 {
		r.scroll = ((line % r.h) + r.h) % r.h
	}
}

func (r *Region) SetRotation(rotation drivers.Rotation) error {
	return r.d.SetRotation(rotation)
}
