package telemetry

import (
	"math/rand/v2"
	"time"

	"cruisemon/pkg/config"
)

// Simulator appends synthetic cruise readings to a Buffer.
type Simulator struct {
	buf *Buffer
	rng *rand.Rand
	cfg config.TelemetryConfig
}

// NewSimulator creates a simulator writing into buf. A zero cfg.Seed seeds
// the generator from the clock.
func NewSimulator(buf *Buffer, cfg config.TelemetryConfig) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewSimulatorWithRand(buf, cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewSimulatorWithRand creates a simulator drawing from rng.
func NewSimulatorWithRand(buf *Buffer, cfg config.TelemetryConfig, rng *rand.Rand) *Simulator {
	return &Simulator{buf: buf, rng: rng, cfg: cfg}
}

// Buffer returns the buffer the simulator writes into.
func (s *Simulator) Buffer() *Buffer { return s.buf }

// Advance appends one sample with time index last+1 (0 on an empty buffer)
// and returns it.
func (s *Simulator) Advance() Sample {
	next := 0
	if last, ok := s.buf.Last(); ok {
		next = last.Time + 1
	}
	sample := Sample{
		Time:     next,
		Speed:    s.uniform(s.cfg.Speed),
		Altitude: s.uniform(s.cfg.Altitude),
		Thrust:   s.uniform(s.cfg.Thrust),
	}
	s.buf.Push(sample)
	return sample
}

// Seed performs n advances.
func (s *Simulator) Seed(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

func (s *Simulator) uniform(r config.Range) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}
