package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"cruisemon/pkg/dashboard"
)

// FrameHandler caches the latest frame for HTTP readers.
type FrameHandler struct {
	mu    sync.RWMutex
	frame *dashboard.Frame
}

func NewFrameHandler() *FrameHandler {
	return &FrameHandler{}
}

// Publish implements dashboard.Sink.
func (h *FrameHandler) Publish(f *dashboard.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = f
}

// Latest returns the cached frame, or nil before the first step.
func (h *FrameHandler) Latest() *dashboard.Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame
}

func (h *FrameHandler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	f := h.Latest()
	if f == nil {
		http.Error(w, "No frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, f)
}

// WindowResponse echoes the selected time range.
type WindowResponse struct {
	Window [2]int `json:"window"`
	Label  string `json:"label"`
}

func (h *FrameHandler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	f := h.Latest()
	if f == nil {
		http.Error(w, "No frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, WindowResponse{Window: f.Controls.Window, Label: f.WindowLabel})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
