package camera

import "github.com/Faultbox/starfield/pkg/math"

// Projector maps world points to screen space for one camera pose.
// Build a fresh one each frame.
type Projector struct {
	origin math.PointVector
	xcol   math.PointVector
	ycol   math.PointVector
	total  math.PointVector
}

// NewProjector captures the camera's current pose and the viewport's alpha.
func NewProjector(c *Camera, vp Viewport) Projector {
	right, up, forward := c.Axes()
	return Projector{
		origin: c.Pos,
		xcol:   right.Neg(),
		ycol:   up,
		total:  forward.Scale(vp.Alpha()),
	}
}

// ProjectPoint projects a world point. The result's X is a depth scalar
// (positive in front of the camera, larger when closer) and Y, Z are
// lateral screen offsets. ok is false when the point cannot be projected.
func (p Projector) ProjectPoint(point math.PointVector) (math.PointVector, bool) {
	lambda := point.Sub(p.origin)
	inv, ok := math.Mat3FromColumns(lambda, p.xcol, p.ycol).Inverse()
	if !ok {
		return math.PointVector{}, false
	}
	return inv.Solve(p.total), true
}
