package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidViewport is returned when a viewport would be degenerate.
var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport relates a field of view to a depth extent (alpha) and the linear
// extent visible at that depth (max bound):
//
//	maxBound = 2 * tan(fov/2) * alpha
type Viewport struct {
	fov      float32
	alpha    float32
	maxBound float32
}

// NewViewportFOVMaxBound builds a viewport from a field of view and max bound,
// solving for alpha.
func NewViewportFOVMaxBound(fov, maxBound float32) (Viewport, error) {
	if err := checkFOV(fov); err != nil {
		return Viewport{}, err
	}
	if err := checkExtent("max bound", maxBound); err != nil {
		return Viewport{}, err
	}
	return Viewport{
		fov:      fov,
		alpha:    alphaFor(fov, maxBound),
		maxBound: maxBound,
	}, nil
}

// NewViewportFOVAlpha builds a viewport from a field of view and alpha,
// solving for the max bound.
func NewViewportFOVAlpha(fov, alpha float32) (Viewport, error) {
	if err := checkFOV(fov); err != nil {
		return Viewport{}, err
	}
	if err := checkExtent("alpha", alpha); err != nil {
		return Viewport{}, err
	}
	return Viewport{
		fov:      fov,
		alpha:    alpha,
		maxBound: maxBoundFor(fov, alpha),
	}, nil
}

// SetFOVConstantMaxBound changes the field of view and recomputes alpha.
func (v *Viewport) SetFOVConstantMaxBound(fov float32) error {
	if err := checkFOV(fov); err != nil {
		return err
	}
	v.fov = fov
	v.alpha = alphaFor(fov, v.maxBound)
	return nil
}

// SetFOVConstantAlpha changes the field of view and recomputes the max bound.
func (v *Viewport) SetFOVConstantAlpha(fov float32) error {
	if err := checkFOV(fov); err != nil {
		return err
	}
	v.fov = fov
	v.maxBound = maxBoundFor(fov, v.alpha)
	return nil
}

// FOV returns the field of view in radians.
func (v Viewport) FOV() float32 { return v.fov }

// Alpha returns the depth extent.
func (v Viewport) Alpha() float32 { return v.alpha }

// MaxBound returns the linear extent at depth alpha.
func (v Viewport) MaxBound() float32 { return v.maxBound }

func alphaFor(fov, maxBound float32) float32 {
	return maxBound / (2 * math32.Tan(fov/2))
}

func maxBoundFor(fov, alpha float32) float32 {
	return 2 * math32.Tan(fov/2) * alpha
}

func checkFOV(fov float32) error {
	if math32.IsNaN(fov) || fov <= 0 || fov >= math32.Pi {
		return fmt.Errorf("%w: fov %v outside (0, pi)", ErrInvalidViewport, fov)
	}
	return nil
}

func checkExtent(name string, v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s %v must be positive and finite", ErrInvalidViewport, name, v)
	}
	return nil
}
