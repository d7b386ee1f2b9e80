package universe

import (
	"fmt"

	"github.com/Faultbox/starfield/internal/config"
)

// FromConfig creates a session for a width x height screen with the
// settings in sf. opts are applied after the configured ones.
func FromConfig(sf config.StarfieldConfig, width, height int, opts ...Option) (*Universe, error) {
	all := append([]Option{
		WithRenormalizeEvery(sf.RenormalizeEvery),
		WithSlowTick(sf.SlowTick),
		WithStoreOptions(WithOrderCheck(sf.VerifyChunkOrder)),
	}, opts...)

	u, err := NewWithSize(width, height, sf.FOV(), sf.RenderDistance, all...)
	if err != nil {
		return nil, fmt.Errorf("creating universe: %w", err)
	}
	return u, nil
}

// StarBuffer returns buf resized to hold the projected triples of stars
// stars, reusing its storage when it is large enough.
func StarBuffer(buf []float32, stars int) []float32 {
	need := 3 * stars
	if cap(buf) < need {
		return make([]float32, need, need+need/4)
	}
	return buf[:need]
}
