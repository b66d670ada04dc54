package hal

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// WritePNG encodes the current framebuffer contents as PNG.
func WritePNG(w io.Writer, fb Framebuffer) error {
	if fb == nil {
		return fmt.Errorf("write png: %w", ErrNotImplemented)
	}
	if err := png.Encode(w, ToRGBA(fb)); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SavePNG writes the framebuffer to path, replacing any existing file.
func SavePNG(path string, fb Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, fb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
