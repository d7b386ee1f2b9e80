package math

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	a := Vec3[float32](1, 2, 3)
	b := Vec3[float32](4, -5, 6)

	if got, want := a.Add(b), Vec3[float32](5, -3, 9); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), Vec3[float32](-3, 7, -3); got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := a.Neg(), Vec3[float32](-1, -2, -3); got != want {
		t.Errorf("Neg() = %v, want %v", got, want)
	}
	if got, want := a.Scale(2), Vec3[float32](2, 4, 6); got != want {
		t.Errorf("Scale() = %v, want %v", got, want)
	}
	if got, want := b.Div(2), Vec3[float32](2, -2.5, 3); got != want {
		t.Errorf("Div() = %v, want %v", got, want)
	}
	if got, want := a.Dot(b), float32(12); got != want {
		t.Errorf("Dot() = %v, want %v", got, want)
	}
}

func TestVector3Cross(t *testing.T) {
	x := Vec3[float32](1, 0, 0)
	y := Vec3[float32](0, 1, 0)
	got := x.Cross(y)
	want := Vec3[float32](0, 0, 1)
	if got != want {
		t.Errorf("Cross() = %v, want %v", got, want)
	}
}

func TestVector3IntegerOps(t *testing.T) {
	a := Vec3[int32](-2, 5, 7)
	b := Vec3[int32](3, 1, 7)

	if got, want := a.Min(b), Vec3[int32](-2, 1, 7); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), Vec3[int32](3, 5, 7); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
	if got, want := a.Add(Vec3[int32](1, 1, 1)), Vec3[int32](-1, 6, 8); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	lo, hi, ok := Bounds(
		Vec3[int32](0, 0, 0),
		Vec3[int32](-3, 4, 1),
		Vec3[int32](2, -1, 9),
	)
	if !ok {
		t.Fatal("Bounds() ok = false for non-empty input")
	}
	if want := Vec3[int32](-3, -1, 0); lo != want {
		t.Errorf("lo = %v, want %v", lo, want)
	}
	if want := Vec3[int32](2, 4, 9); hi != want {
		t.Errorf("hi = %v, want %v", hi, want)
	}

	if _, _, ok := Bounds[int32](); ok {
		t.Error("Bounds() of no vectors should report ok = false")
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b ChunkVector
		want bool
	}{
		{Vec3[int32](0, 0, 0), Vec3[int32](0, 0, 1), true},
		{Vec3[int32](0, 0, 1), Vec3[int32](0, 0, 0), false},
		{Vec3[int32](0, 0, 9), Vec3[int32](0, 1, 0), true},
		{Vec3[int32](0, 9, 9), Vec3[int32](1, 0, 0), true},
		{Vec3[int32](1, 0, 0), Vec3[int32](0, 9, 9), false},
		{Vec3[int32](2, 2, 2), Vec3[int32](2, 2, 2), false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestChunkOf(t *testing.T) {
	tests := []struct {
		p    PointVector
		want ChunkVector
	}{
		{Vec3[float32](0, 0, 0), Vec3[int32](0, 0, 0)},
		{Vec3[float32](127.9, 128, 255.9), Vec3[int32](0, 1, 1)},
		{Vec3[float32](-0.5, -128, -128.5), Vec3[int32](-1, -1, -2)},
	}
	for _, tt := range tests {
		if got := ChunkOf(tt.p); got != tt.want {
			t.Errorf("ChunkOf(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(Vec3[float32](3, 4, 0))
	if l := n.Length(); math.Abs(l-1) > 1e-6 {
		t.Errorf("Normalize().Length() = %v, want ~1", l)
	}
	if got := Normalize(PointVector{}); got != (PointVector{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}
