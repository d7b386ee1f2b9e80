package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/starfield/pkg/math"
)

// Orientation accumulates a rotation matrix from roll/pitch/yaw increments.
// Increments compound onto the stored matrix; nothing is re-derived from
// absolute angles.
type Orientation struct {
	mat math.Mat3
}

// NewOrientation returns the orientation for the given roll, pitch and yaw.
func NewOrientation(rpy math.PointVector) Orientation {
	return Orientation{mat: RotationMatrix(rpy)}
}

// RotationMatrix builds yaw * pitch * roll for rpy = (roll, pitch, yaw).
// Roll turns about Z, pitch about X and yaw about Y.
func RotationMatrix(rpy math.PointVector) math.Mat3 {
	rs, rc := math32.Sin(rpy.X), math32.Cos(rpy.X)
	ps, pc := math32.Sin(rpy.Y), math32.Cos(rpy.Y)
	ys, yc := math32.Sin(rpy.Z), math32.Cos(rpy.Z)

	yaw := math.Mat3{
		yc, 0, ys,
		0, 1, 0,
		-ys, 0, yc,
	}
	pitch := math.Mat3{
		1, 0, 0,
		0, pc, -ps,
		0, ps, pc,
	}
	roll := math.Mat3{
		rc, -rs, 0,
		rs, rc, 0,
		0, 0, 1,
	}
	return yaw.Mul(pitch).Mul(roll)
}

// Rotate applies an incremental rotation in the orientation's local frame.
func (o *Orientation) Rotate(rpy math.PointVector) {
	o.mat = o.mat.Mul(RotationMatrix(rpy))
}

// Orthonormalize removes accumulated floating point drift.
func (o *Orientation) Orthonormalize() {
	o.mat = o.mat.Orthonormalize()
}

// Matrix returns the cumulative rotation.
func (o *Orientation) Matrix() math.Mat3 {
	return o.mat
}
