package hal

import "image"

// snapshotter is implemented by framebuffers that are written concurrently
// with readers.
type snapshotter interface {
	snapshotRGB565(dst []byte)
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// ToRGBA expands an RGB565 framebuffer into an RGBA image.
func ToRGBA(fb Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	if fb.Format() != PixelFormatRGB565 {
		return img
	}
	src := fb.Buffer()
	if s, ok := fb.(snapshotter); ok {
		src = make([]byte, len(src))
		s.snapshotRGB565(src)
	}
	expandRGB565(img.Pix, src, fb.Width(), fb.Height(), fb.StrideBytes())
	return img
}

func expandRGB565(dst, src []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			i := row + x*2
			if i+1 >= len(src) {
				return
			}
			r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (y*width + x) * 4
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}
