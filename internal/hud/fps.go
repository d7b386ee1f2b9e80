package hud

import "time"

const (
	fpsBucket  = 250 * time.Millisecond
	fpsBuckets = 4
)

// FPSMeter averages the frame rate over the last second in quarter-second
// buckets.
type FPSMeter struct {
	counts []int
	start  time.Time
	fps    float64
}

// NewFPSMeter creates a meter whose first bucket opens at now.
func NewFPSMeter(now time.Time) *FPSMeter {
	return &FPSMeter{
		counts: make([]int, 1, fpsBuckets+1),
		start:  now,
	}
}

// Frame records a frame at now.
func (m *FPSMeter) Frame(now time.Time) {
	m.advance(now)
	m.counts[len(m.counts)-1]++
}

// FPS returns the rate computed when the last bucket closed.
func (m *FPSMeter) FPS() float64 {
	return m.fps
}

func (m *FPSMeter) advance(now time.Time) {
	for now.Sub(m.start) >= fpsBucket {
		m.start = m.start.Add(fpsBucket)

		total := 0
		for _, c := range m.counts {
			total += c
		}
		m.fps = float64(total) / (fpsBucket.Seconds() * float64(len(m.counts)))

		if len(m.counts) == fpsBuckets {
			m.counts = append(m.counts[:0], m.counts[1:]...)
		}
		m.counts = append(m.counts, 0)
	}
}
