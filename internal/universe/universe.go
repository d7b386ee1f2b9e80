// Package universe streams procedurally generated star chunks around a
// flying camera and projects them to screen space.
package universe

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/engine/camera"
	"github.com/Faultbox/starfield/internal/logger"
)

// starScaleDivisor converts the projected depth scalar to a sprite scale.
const starScaleDivisor = 50

// CameraVectorsLen is the buffer length CameraVectors requires.
const CameraVectorsLen = 9

var (
	// ErrInvalidDelta is returned for a negative or NaN tick delta.
	ErrInvalidDelta = errors.New("invalid tick delta")
	// ErrInvalidSize is returned for a non-positive screen size.
	ErrInvalidSize = errors.New("invalid screen size")
	// ErrBufferTooSmall is returned when projected stars do not fit.
	ErrBufferTooSmall = errors.New("star buffer too small")
	// ErrBadBufferLength is returned when the camera vector buffer is not
	// exactly CameraVectorsLen long.
	ErrBadBufferLength = errors.New("bad camera vector buffer length")
)

// Option configures a Universe.
type Option func(*options)

type options struct {
	renormalizeEvery int
	slowTick         time.Duration
	store            []StoreOption
}

// WithRenormalizeEvery re-orthonormalizes the camera orientation every n
// ticks. Zero disables it.
func WithRenormalizeEvery(n int) Option {
	return func(o *options) {
		o.renormalizeEvery = n
	}
}

// WithSlowTick logs a warning when a tick takes longer than d.
// Zero disables the warning.
func WithSlowTick(d time.Duration) Option {
	return func(o *options) {
		o.slowTick = d
	}
}

// WithStoreOptions passes options through to the chunk store.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(o *options) {
		o.store = append(o.store, opts...)
	}
}

// Universe is one starfield session: a camera and the chunks around it.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Universe struct {
	camera   *camera.Camera
	chunks   *ChunkStore
	fov      float32
	width    int
	height   int
	slowTick time.Duration
}

// New creates a session with the camera at the origin. initialMaxBound
// sizes the render viewport and the initial square screen, fov is in
// radians and renderDistance is the depth of the generation viewport.
func New(initialMaxBound, fov, renderDistance float32, opts ...Option) (*Universe, error) {
	o := options{slowTick: 16 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}

	cam, err := camera.New(initialMaxBound, fov, renderDistance)
	if err != nil {
		return nil, fmt.Errorf("creating camera: %w", err)
	}
	cam.RenormalizeEvery = o.renormalizeEvery

	chunks, err := NewChunkStore(cam, o.store...)
	if err != nil {
		return nil, fmt.Errorf("creating chunk store: %w", err)
	}

	lo, hi, _ := chunks.Bounds()
	logger.Debug("universe created",
		zap.Float32("max_bound", initialMaxBound),
		zap.Float32("fov", fov),
		zap.Float32("render_distance", renderDistance),
		zap.Int("chunks", chunks.Len()),
		zap.Int("stars", chunks.CountStars()),
		zap.Any("lo", lo),
		zap.Any("hi", hi),
	)

	size := int(initialMaxBound)
	return &Universe{
		camera:   cam,
		chunks:   chunks,
		fov:      fov,
		width:    size,
		height:   size,
		slowTick: o.slowTick,
	}, nil
}

// NewWithSize creates a session for a width x height screen.
func NewWithSize(width, height int, fov, renderDistance float32, opts ...Option) (*Universe, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	u, err := New(float32(max(width, height)), fov, renderDistance, opts...)
	if err != nil {
		return nil, err
	}
	u.width, u.height = width, height
	return u, nil
}

// Tick advances the camera by dt and moves the chunk window with it.
// A zero dt leaves the camera where it is. If the chunk window cannot be
// updated, the camera is restored and the session is left as it was.
func (u *Universe) Tick(dt float32) error {
	if math32.IsNaN(dt) || math32.IsInf(dt, 0) || dt < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	start := time.Now()
	prev := *u.camera
	u.camera.Tick(dt)
	if err := u.chunks.Update(u.camera); err != nil {
		*u.camera = prev
		return fmt.Errorf("updating chunks: %w", err)
	}
	elapsed := time.Since(start)

	stats := u.chunks.Stats()
	if stats.Generated > 0 || stats.Discarded > 0 {
		logger.Debug("chunk window moved",
			zap.Int("reused", stats.Reused),
			zap.Int("generated", stats.Generated),
			zap.Int("discarded", stats.Discarded),
		)
	}
	if u.slowTick > 0 && elapsed > u.slowTick {
		logger.Warn("slow tick",
			zap.Duration("elapsed", elapsed),
			zap.Int("generated", stats.Generated),
			zap.Int("chunks", u.chunks.Len()),
		)
	}
	return nil
}

// ProjectStars writes a (scale, x, y) triple into out for every visible
// star, in chunk then star order, and returns the number of triples.
// A buffer of 3*CountStars() always suffices. If out fills up first,
// ProjectStars stops and returns ErrBufferTooSmall with the count written.
func (u *Universe) ProjectStars(out []float32) (int, error) {
	p := camera.NewProjector(u.camera, u.camera.Render)
	maxDist := u.camera.Generation.Alpha() / u.camera.Render.Alpha()

	w, h := float32(u.width), float32(u.height)
	halfW, halfH := float32(u.width/2), float32(u.height/2)

	n := 0
	for star := range u.chunks.Stars() {
		s, ok := p.ProjectPoint(star)
		if !ok {
			continue
		}
		if s.X <= 0 || 1/s.X >= maxDist {
			continue
		}
		x := s.Y + halfW
		y := s.Z + halfH
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}

		i := 3 * n
		if i+3 > len(out) {
			return n, fmt.Errorf("%w: room for %d stars", ErrBufferTooSmall, len(out)/3)
		}
		scale := s.X / starScaleDivisor
		offset := scale / 2
		out[i] = scale
		out[i+1] = x - offset
		out[i+2] = y - offset
		n++
	}
	return n, nil
}

// SetSize resizes the screen and recomputes the render viewport.
func (u *Universe) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	vp, err := camera.NewViewportFOVMaxBound(u.fov, float32(max(width, height)))
	if err != nil {
		return err
	}
	u.camera.Render = vp
	u.width, u.height = width, height
	return nil
}

// Size returns the screen size.
func (u *Universe) Size() (width, height int) {
	return u.width, u.height
}

// SetCameraRollVel sets the target roll rate.
func (u *Universe) SetCameraRollVel(rate float32) {
	u.camera.TargetRPYVel.X = rate
}

// SetCameraPitchVel sets the target pitch rate.
func (u *Universe) SetCameraPitchVel(rate float32) {
	u.camera.TargetRPYVel.Y = rate
}

// SetCameraYawVel sets the target yaw rate.
func (u *Universe) SetCameraYawVel(rate float32) {
	u.camera.TargetRPYVel.Z = rate
}

// SetThrust sets the forward thrust.
func (u *Universe) SetThrust(value float32) {
	u.camera.Thrust = value
}

// CameraVectors writes the inverse of the camera orientation, row-major,
// into out. out must hold exactly CameraVectorsLen values. If the
// orientation cannot be inverted, out is left unchanged.
func (u *Universe) CameraVectors(out []float32) error {
	if len(out) != CameraVectorsLen {
		return fmt.Errorf("%w: got %d, want %d", ErrBadBufferLength, len(out), CameraVectorsLen)
	}
	inv, ok := u.camera.Ori.Matrix().Inverse()
	if ok {
		copy(out, inv[:])
	}
	return nil
}

// RenderDistanceRatio returns the render viewport's max bound relative to
// the generation viewport's.
func (u *Universe) RenderDistanceRatio() float32 {
	return u.camera.Render.MaxBound() / u.camera.Generation.MaxBound()
}

// CountStars returns the number of stars in the chunk window.
func (u *Universe) CountStars() int {
	return u.chunks.CountStars()
}

// Camera returns the session camera.
func (u *Universe) Camera() *camera.Camera {
	return u.camera
}

// Chunks returns the session chunk store.
func (u *Universe) Chunks() *ChunkStore {
	return u.chunks
}
