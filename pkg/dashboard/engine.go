package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cruisemon/pkg/aero"
	"cruisemon/pkg/chart"
	"cruisemon/pkg/config"
	"cruisemon/pkg/logging"
	"cruisemon/pkg/stats"
	"cruisemon/pkg/store"
	"cruisemon/pkg/telemetry"
	"cruisemon/pkg/tracker"
)

// ErrStopped is returned to callers once the engine loop has exited.
var ErrStopped = errors.New("dashboard engine stopped")

type command struct {
	in    Interaction
	reply chan *Frame
}

type frameReq struct {
	reply chan *Frame
}

// Engine owns the telemetry buffer. All steps run on the goroutine executing
// Run, so ticks and interactions never overlap.
type Engine struct {
	prov     config.Provider
	store    store.StateStore
	sim      *telemetry.Simulator
	tracker  *tracker.Tracker
	sinks    []Sink
	defaults aero.Resolved
	bins     int

	// Actor channels
	cmdCh      chan command
	frameReqCh chan frameReq
	done       chan struct{}

	// Loop-owned state
	controls Controls
	last     *Frame
	seq      uint64
}

// New creates an engine. st and tr may be nil.
func New(prov config.Provider, st store.StateStore, sim *telemetry.Simulator, tr *tracker.Tracker, sinks ...Sink) *Engine {
	cfg := prov.AppConfig()
	if tr == nil {
		tr = tracker.New()
	}
	return &Engine{
		prov:    prov,
		store:   st,
		sim:     sim,
		tracker: tr,
		sinks:   sinks,
		defaults: aero.Resolved{
			Weight:   float64(cfg.Aero.DefaultWeight),
			WingArea: float64(cfg.Aero.DefaultWingArea),
		},
		bins:       prov.HistogramBins(context.Background()),
		cmdCh:      make(chan command, 16),
		frameReqCh: make(chan frameReq, 32),
		done:       make(chan struct{}),
		controls:   LoadControls(context.Background(), prov),
	}
}

// Tracker returns the step counters.
func (e *Engine) Tracker() *tracker.Tracker { return e.tracker }

// Run executes the startup step and then serves ticks, interactions and frame
// requests until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	interval := e.prov.TickInterval(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.publish(e.Step(ctx, TriggerStartup, e.controls))
	slog.Info("Engine started", "interval", interval, "samples", e.sim.Buffer().Len())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Engine stopped", "steps", e.seq)
			return nil
		case <-ticker.C:
			e.publish(e.Step(ctx, TriggerInterval, e.controls))
		case cmd := <-e.cmdCh:
			next := cmd.in.Controls
			next.UpdateClicks = e.controls.UpdateClicks
			if cmd.in.Trigger == TriggerButton {
				next.UpdateClicks++
			}
			e.controls = next
			if err := SaveControls(ctx, e.store, e.controls); err != nil {
				slog.Warn("Failed to save controls", "error", err)
			}
			f := e.Step(ctx, cmd.in.Trigger, e.controls)
			e.publish(f)
			cmd.reply <- f
		case req := <-e.frameReqCh:
			req.reply <- e.last
		}
	}
}

// Submit delivers an interaction and waits for the frame of the step it caused.
func (e *Engine) Submit(ctx context.Context, in Interaction) (*Frame, error) {
	if in.Trigger == "" {
		in.Trigger = TriggerInteraction
	}
	cmd := command{in: in, reply: make(chan *Frame, 1)}
	select {
	case e.cmdCh <- cmd:
	case <-e.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case f := <-cmd.reply:
		return f, nil
	case <-e.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Frame returns the latest frame through the loop.
func (e *Engine) Frame(ctx context.Context) (*Frame, error) {
	req := frameReq{reply: make(chan *Frame, 1)}
	select {
	case e.frameReqCh <- req:
	case <-e.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case f := <-req.reply:
		return f, nil
	case <-e.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) publish(f *Frame) {
	e.last = f
	for _, s := range e.sinks {
		s.Publish(f)
	}
}

// Step advances the simulation by one sample and derives a frame for c.
// It must not be called concurrently with Run or with itself.
func (e *Engine) Step(ctx context.Context, trig Trigger, c Controls) *Frame {
	source := string(trig)
	latest := e.sim.Advance()
	buf := e.sim.Buffer()

	w := telemetry.Select(buf.Samples(), c.Window[0], c.Window[1])
	if w.Empty() {
		e.tracker.TrackEmptyWindow(source)
	}

	params := aero.Resolve(aero.Params{Weight: c.Weight, WingArea: c.WingArea}, e.defaults)
	if params.FellBack {
		slog.Debug("Using default aero parameters", "reason", params.Reason, "weight", params.Weight, "wing_area", params.WingArea)
		e.tracker.TrackFallback(source)
	}

	coeff := aero.Compute(w.Altitudes, w.Speeds, w.Thrusts, params.Weight, params.WingArea)
	if n := len(coeff.Degenerate); n > 0 {
		slog.Debug("Degenerate coefficient points", "count", n, "indices", coeff.Degenerate)
		e.tracker.TrackDegenerate(source, n)
	}

	e.seq++
	f := &Frame{
		ID:          uuid.NewString(),
		Seq:         e.seq,
		Trigger:     trig,
		Time:        time.Now(),
		Controls:    c,
		WindowLabel: c.WindowLabel(),
		Latest:      latest,
		BufferLen:   buf.Len(),
		Window:      w,
		Params:      params,
		CL:          stats.Numbers(coeff.CL),
		CD:          stats.Numbers(coeff.CD),
		Degenerate:  coeff.Degenerate,
		Stats: stats.NewTable(
			stats.Column{Name: "Speed", Values: w.Speeds},
			stats.Column{Name: "Altitude", Values: w.Altitudes},
			stats.Column{Name: "Thrust", Values: w.Thrusts},
		),
		Charts: chart.Build(w, coeff, e.bins),
	}
	e.tracker.TrackStep(source)

	logging.Trace(slog.Default(), "Step", "seq", f.Seq, "trigger", trig, "time_index", latest.Time, "window", w.Len())
	return f
}
