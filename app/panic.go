package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"grapher/hal"
	"grapher/plot/render"
)

// showPanic logs the panic through the HAL and paints it over the screen.
func showPanic(h hal.HAL, v any, stack []byte) {
	lines := []string{"Grapher Panic:", fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := render.DefaultFont()
	if font.Width <= 0 || font.Height <= 0 {
		_ = fb.Present()
		return
	}
	d := render.NewDisplay(fb)
	fg := color.RGBA{A: 255}

	cols := fb.Width() / int(font.Width)
	if cols <= 0 {
		cols = 1
	}
	y := int16(0)
	maxH := int16(fb.Height())
	for _, line := range lines {
		for len(line) > 0 {
			if y+font.Height > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			render.Text(d, font, 0, y, chunk, fg, 0)
			y += font.Height
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
