// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture writes screenshots into a directory with timestamped names.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing to dir. An empty dir means the working
// directory.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05.000"))
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// SavePixels saves bottom-up RGBA pixels as read from OpenGL, flipping
// them so the PNG is top-down. It returns the file written.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: %dx%d with %d bytes", width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return c.Save(img)
}

// Save encodes img as PNG and returns the file written.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := c.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}
