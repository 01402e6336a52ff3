package tracker

import (
	"sync"
	"sync/atomic"
)

// Tracker counts engine steps per trigger source.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*SourceStats
}

// SourceStats holds metrics for one trigger source.
// Fields are accessed atomically.
type SourceStats struct {
	Steps            int64
	Fallbacks        int64
	DegeneratePoints int64
	EmptyWindows     int64
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{
		stats: make(map[string]*SourceStats),
	}
}

// getStats returns the stats object for a source, creating it if needed.
func (t *Tracker) getStats(source string) *SourceStats {
	t.mu.RLock()
	s, ok := t.stats[source]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double check
	if s, ok = t.stats[source]; ok {
		return s
	}
	s = &SourceStats{}
	t.stats[source] = s
	return s
}

// TrackStep increments the step counter.
func (t *Tracker) TrackStep(source string) {
	atomic.AddInt64(&t.getStats(source).Steps, 1)
}

// TrackFallback records a step that ran on the default weight and wing area.
func (t *Tracker) TrackFallback(source string) {
	atomic.AddInt64(&t.getStats(source).Fallbacks, 1)
}

func (t *Tracker) TrackDegenerate(source string, n int) {
	if n <= 0 {
		return
	}
	atomic.AddInt64(&t.getStats(source).DegeneratePoints, int64(n))
}

func (t *Tracker) TrackEmptyWindow(source string) {
	atomic.AddInt64(&t.getStats(source).EmptyWindows, 1)
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() map[string]SourceStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]SourceStats)
	for k, v := range t.stats {
		result[k] = SourceStats{
			Steps:            atomic.LoadInt64(&v.Steps),
			Fallbacks:        atomic.LoadInt64(&v.Fallbacks),
			DegeneratePoints: atomic.LoadInt64(&v.DegeneratePoints),
			EmptyWindows:     atomic.LoadInt64(&v.EmptyWindows),
		}
	}
	return result
}

// Total sums the step counter over all sources.
func (t *Tracker) Total() int64 {
	var n int64
	for _, s := range t.Snapshot() {
		n += s.Steps
	}
	return n
}
