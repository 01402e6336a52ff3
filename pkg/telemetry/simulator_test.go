package telemetry

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"cruisemon/pkg/config"
)

func newTestSimulator(capacity int, seed uint64) *Simulator {
	cfg := config.DefaultConfig().Telemetry
	return NewSimulatorWithRand(NewBuffer(capacity), cfg, rand.New(rand.NewPCG(seed, seed)))
}

func TestSimulator_LengthCapsAtCapacity(t *testing.T) {
	sim := newTestSimulator(100, 1)
	for n := 1; n <= 250; n++ {
		sim.Advance()
		want := min(n, 100)
		buf := sim.Buffer()
		if buf.Len() != want || len(buf.Times()) != want || len(buf.Speeds()) != want ||
			len(buf.Altitudes()) != want || len(buf.Thrusts()) != want {
			t.Fatalf("after %d advances: len=%d, want %d", n, buf.Len(), want)
		}
	}
}

func TestSimulator_TimeIndexIncreasesByOne(t *testing.T) {
	sim := newTestSimulator(100, 2)
	sim.Seed(100)
	times := sim.Buffer().Times()
	assert.Equal(t, 0, times[0])
	assert.Equal(t, 99, times[99])

	sim.Seed(37)
	times = sim.Buffer().Times()
	assert.Len(t, times, 100)
	assert.Equal(t, 37, times[0])
	for i := 1; i < len(times); i++ {
		if times[i] != times[i-1]+1 {
			t.Fatalf("time index jump at %d: %d -> %d", i, times[i-1], times[i])
		}
	}
}

func TestSimulator_ValuesWithinRanges(t *testing.T) {
	sim := newTestSimulator(100, 3)
	sim.Seed(500)
	cfg := config.DefaultConfig().Telemetry
	for _, s := range sim.Buffer().Samples() {
		assert.True(t, s.Speed >= cfg.Speed.Min && s.Speed <= cfg.Speed.Max, "speed %v", s.Speed)
		assert.True(t, s.Altitude >= cfg.Altitude.Min && s.Altitude <= cfg.Altitude.Max, "altitude %v", s.Altitude)
		assert.True(t, s.Thrust >= cfg.Thrust.Min && s.Thrust <= cfg.Thrust.Max, "thrust %v", s.Thrust)
	}
}

func TestSimulator_DeterministicForSeed(t *testing.T) {
	a := newTestSimulator(10, 42)
	b := newTestSimulator(10, 42)
	a.Seed(25)
	b.Seed(25)
	assert.Equal(t, a.Buffer().Samples(), b.Buffer().Samples())
}

func TestNewSimulator_ConfigSeed(t *testing.T) {
	cfg := config.DefaultConfig().Telemetry
	cfg.Seed = 7
	a := NewSimulator(NewBuffer(5), cfg)
	b := NewSimulator(NewBuffer(5), cfg)
	assert.Equal(t, a.Advance(), b.Advance())
}
