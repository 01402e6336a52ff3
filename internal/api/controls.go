package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"cruisemon/pkg/config"
	"cruisemon/pkg/dashboard"
)

// Submitter delivers interactions to the engine.
type Submitter interface {
	Submit(ctx context.Context, in dashboard.Interaction) (*dashboard.Frame, error)
}

// ControlsHandler reads and updates the dashboard controls.
type ControlsHandler struct {
	engine  Submitter
	frames  *FrameHandler
	cfgProv config.Provider
}

func NewControlsHandler(engine Submitter, frames *FrameHandler, prov config.Provider) *ControlsHandler {
	return &ControlsHandler{engine: engine, frames: frames, cfgProv: prov}
}

// ControlsResponse is returned by both GET and POST.
type ControlsResponse struct {
	dashboard.Controls
	SliderMax   int    `json:"slider_max"`
	WindowLabel string `json:"window_label"`
	Seq         uint64 `json:"seq"`
}

// ControlsRequest updates the controls. Absent fields keep their current value;
// a null weight or wing_area clears the field. Update marks a button click.
type ControlsRequest struct {
	Window   *[2]int  `json:"window"`
	Weight   *float64 `json:"weight"`
	WingArea *float64 `json:"wing_area"`
	Update   bool     `json:"update"`
}

func (h *ControlsHandler) current(ctx context.Context) (dashboard.Controls, string, uint64) {
	if f := h.frames.Latest(); f != nil {
		return f.Controls, f.WindowLabel, f.Seq
	}
	c := dashboard.LoadControls(ctx, h.cfgProv)
	return c, c.WindowLabel(), 0
}

func (h *ControlsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, label, seq := h.current(r.Context())
	writeJSON(w, ControlsResponse{Controls: c, SliderMax: h.cfgProv.SliderMax(r.Context()), WindowLabel: label, Seq: seq})
}

func (h *ControlsHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, _, _ := h.current(ctx)

	// Decode onto a copy of the current values so that absent keys are kept
	req := ControlsRequest{Window: &c.Window, Weight: c.Weight, WingArea: c.WingArea}
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Window != nil {
		c.Window = [2]int{max(req.Window[0], 0), max(req.Window[1], 0)}
	}
	c.Weight = req.Weight
	c.WingArea = req.WingArea

	trig := dashboard.TriggerInteraction
	if req.Update {
		trig = dashboard.TriggerButton
	}

	f, err := h.engine.Submit(ctx, dashboard.Interaction{Trigger: trig, Controls: c})
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusRequestTimeout
		}
		slog.Warn("Failed to submit controls", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	slog.Debug("Controls updated", "trigger", trig, "window", f.WindowLabel, "fell_back", f.Params.FellBack)
	writeJSON(w, ControlsResponse{Controls: f.Controls, SliderMax: h.cfgProv.SliderMax(ctx), WindowLabel: f.WindowLabel, Seq: f.Seq})
}
