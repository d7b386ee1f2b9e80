package universe

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/starfield/pkg/math"
)

// centerGenerator puts one star in the middle of every chunk.
func centerGenerator(c math.ChunkVector) *Chunk {
	center := math.ChunkOrigin(c).Add(math.Vec3[float32](64, 64, 64))
	return &Chunk{pos: c, stars: []math.PointVector{center}}
}

// singleStarGenerator puts one star at p and leaves every other chunk empty.
func singleStarGenerator(p math.PointVector) Generator {
	owner := math.ChunkOf(p)
	return func(c math.ChunkVector) *Chunk {
		if c == owner {
			return &Chunk{pos: c, stars: []math.PointVector{p}}
		}
		return &Chunk{pos: c}
	}
}

func newTestUniverse(t *testing.T, opts ...Option) *Universe {
	t.Helper()
	u, err := NewWithSize(800, 600, testFOV, 1536, opts...)
	if err != nil {
		t.Fatalf("NewWithSize: %v", err)
	}
	return u
}

func TestNew(t *testing.T) {
	u, err := New(1024, testFOV, 1536)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := u.Size(); w != 1024 || h != 1024 {
		t.Errorf("Size() = %dx%d, want 1024x1024", w, h)
	}
	if u.Camera().Pos != (math.PointVector{}) {
		t.Errorf("camera starts at %v, want origin", u.Camera().Pos)
	}
	if u.Chunks().Len() == 0 {
		t.Error("initial chunk window is empty")
	}
	if u.CountStars() != u.Chunks().CountStars() {
		t.Errorf("CountStars() = %d, store has %d", u.CountStars(), u.Chunks().CountStars())
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name                     string
		maxBound, fov, renderDst float32
	}{
		{"zero max bound", 0, testFOV, 1536},
		{"fov pi", 800, gomath.Pi, 1536},
		{"zero fov", 800, 0, 1536},
		{"negative render distance", 800, testFOV, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.maxBound, tt.fov, tt.renderDst); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := NewWithSize(0, 600, testFOV, 1536); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewWithSize(0, 600) error = %v, want ErrInvalidSize", err)
	}
}

func TestTickAtRest(t *testing.T) {
	u := newTestUniverse(t)
	lo, hi, _ := u.Chunks().Bounds()

	if err := u.Tick(1.0); err != nil {
		t.Fatal(err)
	}
	if u.Camera().Pos != (math.PointVector{}) {
		t.Errorf("Pos = %v, want origin", u.Camera().Pos)
	}
	if gotLo, gotHi, _ := u.Chunks().Bounds(); gotLo != lo || gotHi != hi {
		t.Errorf("window moved at rest: [%v, %v) -> [%v, %v)", lo, hi, gotLo, gotHi)
	}
}

func TestTickInvalidDelta(t *testing.T) {
	u := newTestUniverse(t)
	for _, dt := range []float32{-1, float32(gomath.NaN()), float32(gomath.Inf(1)), float32(gomath.Inf(-1))} {
		if err := u.Tick(dt); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Tick(%v) error = %v, want ErrInvalidDelta", dt, err)
		}
	}
	if err := u.Tick(0); err != nil {
		t.Errorf("Tick(0) error = %v", err)
	}
}

func TestTickInfiniteDeltaKeepsCamera(t *testing.T) {
	u := newTestUniverse(t)
	u.SetThrust(40)
	if err := u.Tick(1); err != nil {
		t.Fatal(err)
	}
	pos, chunks := u.Camera().Pos, u.Chunks().Len()

	if err := u.Tick(float32(gomath.Inf(1))); !errors.Is(err, ErrInvalidDelta) {
		t.Fatalf("Tick(+Inf) error = %v, want ErrInvalidDelta", err)
	}
	if u.Camera().Pos != pos || u.Chunks().Len() != chunks {
		t.Errorf("after Tick(+Inf): pos %v chunks %d, want %v and %d", u.Camera().Pos, u.Chunks().Len(), pos, chunks)
	}
	if err := u.Tick(1); err != nil {
		t.Fatalf("Tick(1) after rejected delta: %v", err)
	}
	if p := u.Camera().Pos; gomath.IsNaN(float64(p.Z)) || gomath.IsInf(float64(p.Z), 0) {
		t.Errorf("camera position %v is not finite", p)
	}
}

func TestTickFailedUpdateRestoresCamera(t *testing.T) {
	broken := false
	gen := func(c math.ChunkVector) *Chunk {
		if broken {
			// Report the wrong coordinate so the order check fails.
			return &Chunk{pos: c.Add(math.Vec3[int32](1, 0, 0))}
		}
		return centerGenerator(c)
	}
	u := newTestUniverse(t, WithStoreOptions(WithGenerator(gen), WithOrderCheck(true)))
	u.SetThrust(40)

	broken = true
	before := *u.Camera()
	lo, hi, _ := u.Chunks().Bounds()

	// Fly until the window has to generate a new chunk.
	var err error
	for i := 0; i < 200 && err == nil; i++ {
		before = *u.Camera()
		lo, hi, _ = u.Chunks().Bounds()
		err = u.Tick(1)
	}
	if !errors.Is(err, ErrChunkOrder) {
		t.Fatalf("Tick error = %v, want ErrChunkOrder", err)
	}
	if got := *u.Camera(); got.Pos != before.Pos || got.Vel != before.Vel || got.Ori != before.Ori {
		t.Errorf("camera moved on failed tick: pos %v, want %v", got.Pos, before.Pos)
	}
	if gotLo, gotHi, _ := u.Chunks().Bounds(); gotLo != lo || gotHi != hi {
		t.Errorf("window changed on failed tick: %v..%v, want %v..%v", gotLo, gotHi, lo, hi)
	}
}

func TestTickFlight(t *testing.T) {
	u := newTestUniverse(t, WithStoreOptions(WithOrderCheck(true)), WithRenormalizeEvery(100))
	u.SetThrust(40)
	u.SetCameraYawVel(0.05)
	u.SetCameraPitchVel(-0.02)

	for i := 0; i < 600; i++ {
		if err := u.Tick(1); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if u.Camera().Speed() == 0 {
		t.Error("camera did not move under thrust")
	}
	checkWindow(t, u.Chunks())

	// The window always contains the camera.
	lo, hi, _ := u.Chunks().Bounds()
	if c := math.ChunkOf(u.Camera().Pos); !inWindow(c, lo, hi) {
		t.Errorf("camera chunk %v outside window [%v, %v)", c, lo, hi)
	}
}

func TestSetters(t *testing.T) {
	u := newTestUniverse(t)
	u.SetCameraRollVel(0.1)
	u.SetCameraPitchVel(0.2)
	u.SetCameraYawVel(0.3)
	u.SetThrust(4)

	cam := u.Camera()
	if want := math.Vec3[float32](0.1, 0.2, 0.3); cam.TargetRPYVel != want {
		t.Errorf("TargetRPYVel = %v, want %v", cam.TargetRPYVel, want)
	}
	if cam.Thrust != 4 {
		t.Errorf("Thrust = %v, want 4", cam.Thrust)
	}
	if cam.RPYVel != (math.PointVector{}) {
		t.Errorf("setters must only change the target, RPYVel = %v", cam.RPYVel)
	}
}

func TestProjectStarOnAxis(t *testing.T) {
	star := math.Vec3[float32](0, 0, 640)
	u := newTestUniverse(t, WithStoreOptions(WithGenerator(singleStarGenerator(star))))

	if u.CountStars() != 1 {
		t.Fatalf("CountStars() = %d, want 1", u.CountStars())
	}
	out := make([]float32, 3)
	n, err := u.ProjectStars(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("ProjectStars() = %d, want 1", n)
	}

	depth := u.Camera().Render.Alpha() / 640
	scale := depth / starScaleDivisor
	want := []float32{scale, 400 - scale/2, 300 - scale/2}
	for i := range want {
		if gomath.Abs(float64(out[i]-want[i])) > 1e-4 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestProjectStarsFiltersInvisible(t *testing.T) {
	tests := []struct {
		name string
		star math.PointVector
	}{
		{"behind", math.Vec3[float32](0, 0, -640)},
		{"off screen", math.Vec3[float32](1000, 0, 640)},
		{"beyond generation horizon", math.Vec3[float32](0, 0, 1600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUniverse(t, WithStoreOptions(WithGenerator(singleStarGenerator(tt.star))))
			if u.CountStars() != 1 {
				t.Skipf("star %v not in the chunk window", tt.star)
			}
			n, err := u.ProjectStars(make([]float32, 3))
			if err != nil {
				t.Fatal(err)
			}
			if n != 0 {
				t.Errorf("ProjectStars() = %d, want 0", n)
			}
		})
	}
}

func TestProjectStarsBuffer(t *testing.T) {
	u := newTestUniverse(t, WithStoreOptions(WithGenerator(centerGenerator)))

	full := make([]float32, 3*u.CountStars())
	visible, err := u.ProjectStars(full)
	if err != nil {
		t.Fatalf("ProjectStars with 3*CountStars buffer: %v", err)
	}
	if visible < 2 {
		t.Fatalf("expected several visible stars, got %d", visible)
	}
	if visible > u.CountStars() {
		t.Errorf("visible %d > total %d", visible, u.CountStars())
	}
	for i := 0; i < visible; i++ {
		scale, x, y := full[3*i], full[3*i+1], full[3*i+2]
		if scale <= 0 {
			t.Errorf("star %d: scale %v <= 0", i, scale)
		}
		if x+scale/2 < 0 || x+scale/2 >= 800 || y+scale/2 < 0 || y+scale/2 >= 600 {
			t.Errorf("star %d: center (%v, %v) off screen", i, x+scale/2, y+scale/2)
		}
	}

	// One triple plus a sentinel that must survive.
	small := []float32{0, 0, 0, -7}
	n, err := u.ProjectStars(small)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("ProjectStars(small) error = %v, want ErrBufferTooSmall", err)
	}
	if n != 1 {
		t.Errorf("ProjectStars(small) = %d, want 1", n)
	}
	if small[3] != -7 {
		t.Errorf("sentinel overwritten: %v", small[3])
	}
	for i := 0; i < 3; i++ {
		if small[i] != full[i] {
			t.Errorf("small[%d] = %v, want %v", i, small[i], full[i])
		}
	}

	if n, err := u.ProjectStars(nil); !errors.Is(err, ErrBufferTooSmall) || n != 0 {
		t.Errorf("ProjectStars(nil) = %d, %v", n, err)
	}
}

func TestSetSize(t *testing.T) {
	u := newTestUniverse(t)

	if err := u.SetSize(1920, 1080); err != nil {
		t.Fatal(err)
	}
	if w, h := u.Size(); w != 1920 || h != 1080 {
		t.Errorf("Size() = %dx%d, want 1920x1080", w, h)
	}
	if mb := u.Camera().Render.MaxBound(); mb != 1920 {
		t.Errorf("render MaxBound() = %v, want 1920", mb)
	}

	for _, size := range [][2]int{{0, 100}, {100, 0}, {-5, -5}} {
		if err := u.SetSize(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("SetSize(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
	if w, h := u.Size(); w != 1920 || h != 1080 {
		t.Errorf("failed SetSize changed size to %dx%d", w, h)
	}
}

func TestCameraVectors(t *testing.T) {
	u := newTestUniverse(t)

	if err := u.CameraVectors(make([]float32, 8)); !errors.Is(err, ErrBadBufferLength) {
		t.Errorf("CameraVectors(len 8) error = %v, want ErrBadBufferLength", err)
	}
	if err := u.CameraVectors(make([]float32, 10)); !errors.Is(err, ErrBadBufferLength) {
		t.Errorf("CameraVectors(len 10) error = %v, want ErrBadBufferLength", err)
	}

	out := make([]float32, CameraVectorsLen)
	if err := u.CameraVectors(out); err != nil {
		t.Fatal(err)
	}
	id := math.Identity3()
	for i := range out {
		if out[i] != id[i] {
			t.Fatalf("CameraVectors() = %v, want identity", out)
		}
	}

	// A rotation's inverse is its transpose.
	u.Camera().Ori.Rotate(math.Vec3[float32](0.3, -0.2, 1.1))
	if err := u.CameraVectors(out); err != nil {
		t.Fatal(err)
	}
	var got math.Mat3
	copy(got[:], out)
	if want := u.Camera().Ori.Matrix().Transpose(); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("CameraVectors() = %v, want %v", got, want)
	}
}

func TestRenderDistanceRatio(t *testing.T) {
	u := newTestUniverse(t)
	cam := u.Camera()
	want := cam.Render.Alpha() / cam.Generation.Alpha()
	if got := u.RenderDistanceRatio(); gomath.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("RenderDistanceRatio() = %v, want %v", got, want)
	}
}
