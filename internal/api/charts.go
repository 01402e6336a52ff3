package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"cruisemon/pkg/chart"
)

// ChartHandler serves the frame datasets as SVG. Renders are cached per frame.
type ChartHandler struct {
	frames *FrameHandler

	mu    sync.Mutex
	seq   uint64
	cache map[string][]byte
}

func NewChartHandler(frames *FrameHandler) *ChartHandler {
	return &ChartHandler{frames: frames, cache: make(map[string][]byte)}
}

func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(chart.Names, name) {
		http.Error(w, "Unknown chart", http.StatusNotFound)
		return
	}

	f := h.frames.Latest()
	if f == nil {
		http.Error(w, "No frame yet", http.StatusServiceUnavailable)
		return
	}

	h.mu.Lock()
	if h.seq != f.Seq {
		h.seq = f.Seq
		clear(h.cache)
	}
	svg, ok := h.cache[name]
	if !ok {
		ds, _ := f.Charts.Get(name)
		var buf bytes.Buffer
		if err := chart.Render(&buf, ds); err != nil {
			h.mu.Unlock()
			slog.Error("Failed to render chart", "chart", name, "error", err)
			http.Error(w, "Render failed", http.StatusInternalServerError)
			return
		}
		svg = buf.Bytes()
		h.cache[name] = svg
	}
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(svg); err != nil {
		slog.Debug("Failed to write chart", "chart", name, "error", err)
	}
}
