package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// starDiameter matches the desktop renderer's star size at scale 1, so
// the same star reads as the same brightness in both hosts.
const starDiameter = 100

// brightness buckets a projected star by its apparent size.
type brightness uint8

const (
	empty brightness = iota
	veryDim
	dim
	medium
	bright
)

var glyphs = [...]rune{
	empty:   ' ',
	veryDim: '·',
	dim:     '•',
	medium:  '✸',
	bright:  '✶',
}

var starColors = [...]lipgloss.Color{
	veryDim: "240",
	dim:     "244",
	medium:  "250",
	bright:  "255",
}

func brightnessOf(scale float32) brightness {
	switch d := scale * starDiameter; {
	case d >= 4:
		return bright
	case d >= 2:
		return medium
	case d >= 0.8:
		return dim
	default:
		return veryDim
	}
}

// rasterize buckets the first n (scale, x, y) triples of stars into a
// cols x rows cell grid where each cell is one pixel wide and two pixels
// tall. The brightest star in a cell wins. dst is reused when large enough.
func rasterize(dst []brightness, cols, rows int, stars []float32, n int) []brightness {
	size := cols * rows
	if cap(dst) < size {
		dst = make([]brightness, size)
	}
	dst = dst[:size]
	clear(dst)

	for i := 0; i < n; i++ {
		scale, x, y := stars[3*i], stars[3*i+1], stars[3*i+2]
		col := int(x + scale/2)
		row := int((y + scale/2) / 2)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		if b := brightnessOf(scale); b > dst[row*cols+col] {
			dst[row*cols+col] = b
		}
	}
	return dst
}

// starStyles holds one style per brightness, bound to a renderer so each
// SSH session gets its own color profile.
type starStyles [len(glyphs)]lipgloss.Style

func newStarStyles(r *lipgloss.Renderer) starStyles {
	var s starStyles
	for b := veryDim; b <= bright; b++ {
		s[b] = r.NewStyle().Foreground(starColors[b])
	}
	return s
}

// draw renders the grid as rows of text.
func (s starStyles) draw(b *strings.Builder, cells []brightness, cols, rows int) {
	for row := 0; row < rows; row++ {
		line := cells[row*cols : (row+1)*cols]
		blank := 0
		for _, c := range line {
			if c == empty {
				blank++
				continue
			}
			if blank > 0 {
				b.WriteString(strings.Repeat(" ", blank))
				blank = 0
			}
			b.WriteString(s[c].Render(string(glyphs[c])))
		}
		if blank > 0 {
			b.WriteString(strings.Repeat(" ", blank))
		}
		b.WriteByte('\n')
	}
}
