package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedCapture(dir string) *Capture {
	c := New(dir, "starfield")
	c.now = func() time.Time { return time.Date(2024, 3, 9, 21, 4, 5, 0, time.UTC) }
	return c
}

func TestFilename(t *testing.T) {
	c := fixedCapture("shots")
	want := filepath.Join("shots", "starfield_2024-03-09_21-04-05.000.png")
	if got := c.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	if got := fixedCapture("").Filename(); strings.Contains(got, string(filepath.Separator)) {
		t.Errorf("Filename() with no dir = %q, want a bare name", got)
	}
}

func TestSavePixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := fixedCapture(dir)

	// Two rows, bottom row red and top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	name, err := c.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	if top != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	c := fixedCapture(t.TempDir())
	tests := []struct {
		name    string
		n, w, h int
	}{
		{"short", 15, 2, 2},
		{"zero width", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.SavePixels(make([]byte, tt.n), tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}
