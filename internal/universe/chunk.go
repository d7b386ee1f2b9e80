package universe

import (
	"github.com/MichaelTJones/pcg"

	"github.com/Faultbox/starfield/pkg/math"
)

// Seed multipliers for the y and z chunk coordinates.
const (
	seedMulY int64 = 889438532
	seedMulZ int64 = 374324760
)

// chunkStream selects the PCG32 stream used for star generation.
const chunkStream uint64 = 0

// MaxStarsPerChunk is the exclusive upper bound on stars in one chunk.
const MaxStarsPerChunk = 5

// Chunk is a cubic region of space and the stars generated inside it.
// A chunk never changes after Populate returns.
type Chunk struct {
	pos   math.ChunkVector
	stars []math.PointVector
}

// Populate generates the chunk at c. The result depends only on c, so a
// discarded chunk can be regenerated at any time.
func Populate(c math.ChunkVector) *Chunk {
	rng := pcg.NewPCG32()
	rng.Seed(Seed(c), chunkStream)

	n := int(rng.Bounded(MaxStarsPerChunk))
	stars := make([]math.PointVector, 0, n)
	for i := 0; i < n; i++ {
		offset := math.Vec3(unitFloat(rng), unitFloat(rng), unitFloat(rng))
		stars = append(stars, math.PointVector{
			X: (offset.X + float32(c.X)) * math.ChunkSize,
			Y: (offset.Y + float32(c.Y)) * math.ChunkSize,
			Z: (offset.Z + float32(c.Z)) * math.ChunkSize,
		})
	}
	return &Chunk{pos: c, stars: stars}
}

// Seed derives the generator seed for a chunk coordinate. The sum is
// computed in signed 64-bit arithmetic and its two's complement bits are
// reused as the unsigned seed.
func Seed(c math.ChunkVector) uint64 {
	total := int64(c.X) + int64(c.Y)*seedMulY + int64(c.Z)*seedMulZ
	return uint64(total)
}

// unitFloat returns a uniform float in [0, 1) from the top 24 bits.
func unitFloat(rng *pcg.PCG32) float32 {
	return float32(rng.Random()>>8) / (1 << 24)
}

// Pos returns the chunk coordinate.
func (c *Chunk) Pos() math.ChunkVector {
	return c.pos
}

// Stars returns the absolute star positions in generation order.
// The slice is shared and must not be modified.
func (c *Chunk) Stars() []math.PointVector {
	return c.stars
}

// Len returns the number of stars.
func (c *Chunk) Len() int {
	return len(c.stars)
}
