package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"cruisemon/pkg/tracker"
)

type componentState struct {
	lastCPUNS int64
	lastTime  time.Time
	maxMem    uint64
	maxCPU    float64
}

// StatsHandler reports process diagnostics and step counters.
type StatsHandler struct {
	tracker *tracker.Tracker
	frames  *FrameHandler
	stream  *StreamHub
	mu      sync.Mutex
	state   *componentState
}

func NewStatsHandler(t *tracker.Tracker, frames *FrameHandler, stream *StreamHub) *StatsHandler {
	return &StatsHandler{
		tracker: t,
		frames:  frames,
		stream:  stream,
	}
}

type SourceStatsDTO struct {
	Steps            int64 `json:"steps"`
	Fallbacks        int64 `json:"fallbacks"`
	DegeneratePoints int64 `json:"degenerate_points"`
	EmptyWindows     int64 `json:"empty_windows"`
}

type ComponentStats struct {
	Name          string  `json:"name"`
	MemoryMB      uint64  `json:"memory_mb"`
	MemoryMaxMB   uint64  `json:"memory_max_mb"`
	CPUSec        float64 `json:"cpu_sec"`     // Seconds per second
	CPUMaxSec     float64 `json:"cpu_max_sec"` // Peak
	SystemTotalMB uint64  `json:"system_total_mb,omitempty"`
	SystemUsedMB  uint64  `json:"system_used_mb,omitempty"`
}

type EngineStats struct {
	Seq           uint64 `json:"seq"`
	BufferLen     int    `json:"buffer_len"`
	LatestTime    int    `json:"latest_time"`
	StreamClients int    `json:"stream_clients"`
	TotalSteps    int64  `json:"total_steps"`
}

type StatsResponse struct {
	Diagnostics []ComponentStats          `json:"diagnostics"`
	Engine      EngineStats               `json:"engine"`
	Triggers    map[string]SourceStatsDTO `json:"triggers"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snapshot := h.tracker.Snapshot()

	h.mu.Lock()
	diagnostics := h.gatherDiagnostics(r.Context())
	h.mu.Unlock()

	resp := StatsResponse{
		Diagnostics: diagnostics,
		Engine:      EngineStats{TotalSteps: h.tracker.Total()},
		Triggers:    make(map[string]SourceStatsDTO),
	}
	if f := h.frames.Latest(); f != nil {
		resp.Engine.Seq = f.Seq
		resp.Engine.BufferLen = f.BufferLen
		resp.Engine.LatestTime = f.Latest.Time
	}
	if h.stream != nil {
		resp.Engine.StreamClients = h.stream.Clients()
	}

	for source, s := range snapshot {
		resp.Triggers[source] = SourceStatsDTO{
			Steps:            s.Steps,
			Fallbacks:        s.Fallbacks,
			DegeneratePoints: s.DegeneratePoints,
			EmptyWindows:     s.EmptyWindows,
		}
	}

	writeJSON(w, resp)
}

func (h *StatsHandler) gatherDiagnostics(ctx context.Context) []ComponentStats {
	now := time.Now()

	cpuNS, rss, err := GetProcessStats(ctx, os.Getpid())
	if err != nil {
		slog.Debug("Failed to read process stats", "error", err)
	}

	if h.state == nil {
		h.state = &componentState{lastTime: now, lastCPUNS: cpuNS}
	}
	state := h.state

	// CPU delta in seconds per second
	duration := now.Sub(state.lastTime).Seconds()
	cpuSec := 0.0
	if duration > 0 {
		cpuDeltaNS := max(cpuNS-state.lastCPUNS, 0)
		cpuSec = float64(cpuDeltaNS) / 1e9 / duration
	}

	state.lastCPUNS = cpuNS
	state.lastTime = now
	state.maxMem = max(state.maxMem, rss)
	state.maxCPU = max(state.maxCPU, cpuSec)

	server := ComponentStats{
		Name:        "Server",
		MemoryMB:    bToMb(rss),
		MemoryMaxMB: bToMb(state.maxMem),
		CPUSec:      cpuSec,
		CPUMaxSec:   state.maxCPU,
	}
	if total, used, err := GetSystemMemory(ctx); err == nil {
		server.SystemTotalMB = bToMb(total)
		server.SystemUsedMB = bToMb(used)
	}
	return []ComponentStats{server}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
