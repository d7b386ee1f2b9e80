// Package math provides the vector and matrix types used by the starfield.
package math

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// ChunkSize is the edge length of a chunk in world units.
const ChunkSize = 128

// Number is the set of component types a Vector3 can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Vector3 is an immutable 3-component vector.
type Vector3[T Number] struct {
	X, Y, Z T
}

// PointVector is a position or direction in world space.
type PointVector = Vector3[float32]

// ChunkVector is an integer chunk coordinate.
type ChunkVector = Vector3[int32]

// Vec3 returns the vector (x, y, z).
func Vec3[T Number](x, y, z T) Vector3[T] {
	return Vector3[T]{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vector3[T]) Add(other Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3[T]) Sub(other Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Neg returns -v.
func (v Vector3[T]) Neg() Vector3[T] {
	return Vector3[T]{-v.X, -v.Y, -v.Z}
}

// Scale returns v * s.
func (v Vector3[T]) Scale(s T) Vector3[T] {
	return Vector3[T]{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / s.
func (v Vector3[T]) Div(s T) Vector3[T] {
	return Vector3[T]{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the dot product.
func (v Vector3[T]) Dot(other Vector3[T]) T {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vector3[T]) Cross(other Vector3[T]) Vector3[T] {
	return Vector3[T]{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vector3[T]) Length() float64 {
	return math.Sqrt(float64(v.Dot(v)))
}

// Min returns the component-wise minimum.
func (v Vector3[T]) Min(other Vector3[T]) Vector3[T] {
	return Vector3[T]{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vector3[T]) Max(other Vector3[T]) Vector3[T] {
	return Vector3[T]{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// Less reports whether v sorts before other in (x, y, z) lexicographic order.
func (v Vector3[T]) Less(other Vector3[T]) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// Array returns the components as an array.
func (v Vector3[T]) Array() [3]T {
	return [3]T{v.X, v.Y, v.Z}
}

// Bounds returns the component-wise minimum and maximum of vs.
// ok is false when vs is empty.
func Bounds[T Number](vs ...Vector3[T]) (lo, hi Vector3[T], ok bool) {
	if len(vs) == 0 {
		return lo, hi, false
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi, true
}

// Normalize returns p scaled to unit length, or the zero vector.
func Normalize(p PointVector) PointVector {
	l := math32.Sqrt(p.Dot(p))
	if l == 0 {
		return PointVector{}
	}
	return p.Div(l)
}

// ChunkOf returns the coordinate of the chunk containing p.
func ChunkOf(p PointVector) ChunkVector {
	return ChunkVector{
		X: int32(math32.Floor(p.X / ChunkSize)),
		Y: int32(math32.Floor(p.Y / ChunkSize)),
		Z: int32(math32.Floor(p.Z / ChunkSize)),
	}
}

// ChunkOrigin returns the world position of the chunk's minimum corner.
func ChunkOrigin(c ChunkVector) PointVector {
	return PointVector{
		X: float32(c.X) * ChunkSize,
		Y: float32(c.Y) * ChunkSize,
		Z: float32(c.Z) * ChunkSize,
	}
}
