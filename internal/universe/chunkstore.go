package universe

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/Faultbox/starfield/internal/engine/camera"
	"github.com/Faultbox/starfield/pkg/math"
)

// ErrChunkOrder is returned when the chunk sequence is not strictly
// increasing in (x, y, z) order.
var ErrChunkOrder = errors.New("chunk sequence out of order")

// Generator produces the chunk for a coordinate.
type Generator func(math.ChunkVector) *Chunk

// StoreOption configures a ChunkStore.
type StoreOption func(*ChunkStore)

// WithGenerator replaces Populate as the chunk generator.
func WithGenerator(gen Generator) StoreOption {
	return func(s *ChunkStore) {
		s.gen = gen
	}
}

// WithOrderCheck verifies the sort order of the chunk sequence on every
// update.
func WithOrderCheck(enabled bool) StoreOption {
	return func(s *ChunkStore) {
		s.checkOrder = enabled
	}
}

// UpdateStats describes what the last update did.
type UpdateStats struct {
	Reused    int
	Generated int
	Discarded int
}

// ChunkStore holds every chunk inside the generation window, sorted by
// coordinate in (x, y, z) order. The window is [lo, hi) on each axis.
type ChunkStore struct {
	lo    math.ChunkVector
	hi    math.ChunkVector
	delta math.ChunkVector

	chunks   []*Chunk
	numStars int
	stats    UpdateStats

	gen        Generator
	checkOrder bool
}

// NewChunkStore creates a store and fills the window for the camera.
func NewChunkStore(cam *camera.Camera, opts ...StoreOption) (*ChunkStore, error) {
	s := &ChunkStore{gen: Populate}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Update(cam); err != nil {
		return nil, err
	}
	return s, nil
}

// GenBounds returns the chunk window for the camera: the bounding box of
// the camera position and the four corners of the generation viewport's far
// plane, with hi exclusive, and delta = hi - lo.
func GenBounds(cam *camera.Camera) (lo, hi, delta math.ChunkVector) {
	right, up, forward := cam.Axes()
	far := cam.Pos.Add(forward.Scale(cam.Generation.Alpha()))
	half := cam.Generation.MaxBound() / 2
	r := right.Scale(half)
	u := up.Scale(half)

	lo, hi, _ = math.Bounds(
		math.ChunkOf(cam.Pos),
		math.ChunkOf(far.Sub(r).Add(u)),
		math.ChunkOf(far.Add(r).Add(u)),
		math.ChunkOf(far.Add(r).Sub(u)),
		math.ChunkOf(far.Sub(r).Sub(u)),
	)
	hi = hi.Add(math.Vec3[int32](1, 1, 1))
	return lo, hi, hi.Sub(lo)
}

// Update moves the window to the camera's current pose. Chunks inside both
// the old and new window are kept; the rest are generated or dropped.
//
// Both the old sequence and the new window are walked in increasing order
// with a single cursor into the old sequence, so an update costs
// O(old + new).
func (s *ChunkStore) Update(cam *camera.Camera) error {
	lo, hi, delta := GenBounds(cam)

	old := s.chunks
	if s.checkOrder {
		if err := verifyOrder(old); err != nil {
			return err
		}
	}

	next := make([]*Chunk, 0, int(delta.X)*int(delta.Y)*int(delta.Z))
	var stats UpdateStats
	numStars := 0
	cursor := 0

	for x := lo.X; x < hi.X; x++ {
		for y := lo.Y; y < hi.Y; y++ {
			for z := lo.Z; z < hi.Z; z++ {
				coord := math.Vec3(x, y, z)

				// Anything before coord has left the window.
				for cursor < len(old) && old[cursor].pos.Less(coord) {
					cursor++
					stats.Discarded++
				}

				var chunk *Chunk
				if cursor < len(old) && old[cursor].pos == coord {
					chunk = old[cursor]
					cursor++
					stats.Reused++
				} else {
					chunk = s.gen(coord)
					if s.checkOrder && chunk.pos != coord {
						return fmt.Errorf("%w: generator returned %v for %v", ErrChunkOrder, chunk.pos, coord)
					}
					stats.Generated++
				}

				numStars += len(chunk.stars)
				next = append(next, chunk)
			}
		}
	}
	stats.Discarded += len(old) - cursor

	s.lo, s.hi, s.delta = lo, hi, delta
	s.chunks = next
	s.numStars = numStars
	s.stats = stats
	return nil
}

func verifyOrder(chunks []*Chunk) error {
	for i := 1; i < len(chunks); i++ {
		if !chunks[i-1].pos.Less(chunks[i].pos) {
			return fmt.Errorf("%w: %v at %d does not follow %v", ErrChunkOrder, chunks[i].pos, i, chunks[i-1].pos)
		}
	}
	return nil
}

// CountStars returns the number of stars in the window.
func (s *ChunkStore) CountStars() int {
	return s.numStars
}

// Bounds returns the window: lo inclusive, hi exclusive, delta = hi - lo.
func (s *ChunkStore) Bounds() (lo, hi, delta math.ChunkVector) {
	return s.lo, s.hi, s.delta
}

// Len returns the number of chunks in the window.
func (s *ChunkStore) Len() int {
	return len(s.chunks)
}

// Stats reports what the last update reused, generated and discarded.
func (s *ChunkStore) Stats() UpdateStats {
	return s.stats
}

// Chunk looks up the chunk at coordinate c.
func (s *ChunkStore) Chunk(c math.ChunkVector) (*Chunk, bool) {
	i, found := slices.BinarySearchFunc(s.chunks, c, func(ch *Chunk, target math.ChunkVector) int {
		switch {
		case ch.pos == target:
			return 0
		case ch.pos.Less(target):
			return -1
		default:
			return 1
		}
	})
	if !found {
		return nil, false
	}
	return s.chunks[i], true
}

// Chunks iterates the chunks in coordinate order.
func (s *ChunkStore) Chunks() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for _, c := range s.chunks {
			if !yield(c) {
				return
			}
		}
	}
}

// Stars iterates every star, chunk by chunk, in generation order within
// each chunk.
func (s *ChunkStore) Stars() iter.Seq[math.PointVector] {
	return func(yield func(math.PointVector) bool) {
		for _, c := range s.chunks {
			for _, star := range c.stars {
				if !yield(star) {
					return
				}
			}
		}
	}
}
