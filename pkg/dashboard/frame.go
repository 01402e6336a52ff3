package dashboard

import (
	"time"

	"cruisemon/pkg/aero"
	"cruisemon/pkg/chart"
	"cruisemon/pkg/stats"
	"cruisemon/pkg/telemetry"
)

// Frame is the complete output of one step. Frames are shared between readers
// and must not be modified after publication.
type Frame struct {
	ID          string           `json:"id"`
	Seq         uint64           `json:"seq"`
	Trigger     Trigger          `json:"trigger"`
	Time        time.Time        `json:"time"`
	Controls    Controls         `json:"controls"`
	WindowLabel string           `json:"window_label"`
	Latest      telemetry.Sample `json:"latest"`
	BufferLen   int              `json:"buffer_len"`
	Window      telemetry.Window `json:"window"`
	Params      aero.Resolved    `json:"params"`
	CL          []stats.Number   `json:"cl"`
	CD          []stats.Number   `json:"cd"`
	Degenerate  []int            `json:"degenerate,omitempty"`
	Stats       stats.Table      `json:"stats"`
	Charts      chart.Set        `json:"charts"`
}

// Sink receives every new frame. Publish is called from the engine loop and
// must not block.
type Sink interface {
	Publish(f *Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f *Frame)

func (fn SinkFunc) Publish(f *Frame) { fn(f) }
