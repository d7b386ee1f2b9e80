// Package hud computes the overlay shown on top of the starfield: the axis
// compass, the heading label and the frame rate.
package hud

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
)

// Axis names a world axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Needle is one compass line from the compass center, in screen units
// with y pointing down. Depth orders the needles; larger is further away.
type Needle struct {
	Axis  Axis
	X, Y  float32
	Depth float32
}

// Compass returns the three world axes as seen from the camera, scaled by
// length, in drawing order (furthest first). vecs is the row-major inverse
// camera orientation as written by Universe.CameraVectors.
func Compass(vecs [9]float32, length float32) [3]Needle {
	needles := [3]Needle{
		{Axis: AxisX, X: vecs[0], Y: -vecs[3], Depth: vecs[6]},
		{Axis: AxisY, X: vecs[1], Y: -vecs[4], Depth: vecs[7]},
		{Axis: AxisZ, X: vecs[2], Y: -vecs[5], Depth: vecs[8]},
	}
	for i := range needles {
		needles[i].X *= length
		needles[i].Y *= length
	}
	slices.SortStableFunc(needles[:], func(a, b Needle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return needles
}

// Heading names the world direction closest to the camera's forward axis.
func Heading(vecs [9]float32) string {
	forward := [3]float32{vecs[6], vecs[7], vecs[8]}

	best, idx := float32(0), -1
	for i, v := range forward {
		if math32.Abs(v) > math32.Abs(best) {
			best, idx = v, i
		}
	}

	positive := best > 0
	switch idx {
	case 0:
		return pick(positive, "Right (X+)", "Left (X-)")
	case 1:
		return pick(positive, "Up (Y+)", "Down (Y-)")
	case 2:
		return pick(positive, "Forward (Z+)", "Backwards (Z-)")
	default:
		return "Unknown"
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// RGB returns the needle color of an axis.
func (a Axis) RGB() (r, g, b float32) {
	switch a {
	case AxisX:
		return 1, 0.5, 0.5
	case AxisY:
		return 0.5, 1, 0.5
	default:
		return 0.5, 0.5, 1
	}
}

// Hex returns the needle color of an axis as a #rrggbb string.
func (a Axis) Hex() string {
	switch a {
	case AxisX:
		return "#FF7F7F"
	case AxisY:
		return "#7FFF7F"
	default:
		return "#7F7FFF"
	}
}
