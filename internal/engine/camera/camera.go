// Package camera provides the flight camera, its viewports and the point
// projector used to draw the starfield.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/starfield/pkg/math"
)

// Flight model constants.
const (
	// RPYFactor sets how quickly angular velocity approaches its target.
	// Larger is more sluggish.
	RPYFactor float32 = 20.0

	// MaxAngle is reserved for speed-dependent field of view.
	MaxAngle float32 = math32.Pi / 1.3

	// Mass of the camera. One world unit is a meter.
	Mass float32 = 100.0

	// ResistanceFactor scales the linear drag.
	ResistanceFactor float32 = 1.0
)

// Camera is a free-flying camera with thrust along its forward axis.
type Camera struct {
	Pos math.PointVector
	Vel math.PointVector
	Ori Orientation

	// Angular velocity as (roll, pitch, yaw) rates, and the rates it
	// relaxes towards.
	RPYVel       math.PointVector
	TargetRPYVel math.PointVector

	Thrust float32

	// Render is the viewport stars are drawn with.
	Render Viewport
	// Generation is the larger viewport that decides which chunks exist.
	Generation Viewport

	// RenormalizeEvery re-orthonormalizes the orientation every N ticks.
	// Zero disables it.
	RenormalizeEvery int

	ticks int
}

// New creates a camera at the origin looking down +Z.
// maxBound is the render viewport's extent (usually the larger screen
// dimension) and renderDistance is the generation viewport's depth.
func New(maxBound, fov, renderDistance float32) (*Camera, error) {
	render, err := NewViewportFOVMaxBound(fov, maxBound)
	if err != nil {
		return nil, err
	}
	generation, err := NewViewportFOVAlpha(fov, renderDistance)
	if err != nil {
		return nil, err
	}
	return &Camera{
		Ori:        NewOrientation(math.PointVector{}),
		Render:     render,
		Generation: generation,
	}, nil
}

// Tick integrates one step of the flight model.
func (c *Camera) Tick(dt float32) {
	c.Pos = c.Pos.Add(c.Vel.Scale(dt))
	c.Ori.Rotate(c.RPYVel.Scale(dt))

	c.RPYVel = c.RPYVel.Add(c.TargetRPYVel.Sub(c.RPYVel).Scale(dt / RPYFactor))

	resistance := c.Vel.Neg().Scale(ResistanceFactor)
	_, _, forward := c.Axes()
	c.Vel = c.Vel.Add(forward.Scale(c.Thrust).Add(resistance).Scale(dt / Mass))

	if c.RenormalizeEvery > 0 {
		c.ticks++
		if c.ticks >= c.RenormalizeEvery {
			c.ticks = 0
			c.Ori.Orthonormalize()
		}
	}
}

// Axes returns the camera's right, up and forward directions, the columns
// of its orientation matrix.
func (c *Camera) Axes() (right, up, forward math.PointVector) {
	cols := c.Ori.Matrix().Columns()
	return cols[0], cols[1], cols[2]
}

// Speed returns the magnitude of the velocity.
func (c *Camera) Speed() float32 {
	return math32.Sqrt(c.Vel.Dot(c.Vel))
}
