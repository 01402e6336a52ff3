package config

import (
	"context"
	"strconv"
	"time"

	"cruisemon/pkg/store"
)

// Provider defines the interface for accessing unified configuration.
type Provider interface {
	TickInterval(ctx context.Context) time.Duration
	HistogramBins(ctx context.Context) int
	SliderMax(ctx context.Context) int

	// Controls
	Window(ctx context.Context) (start, end int)
	Weight(ctx context.Context) *float64
	WingArea(ctx context.Context) *float64
	UpdateClicks(ctx context.Context) int

	// Raw access (for components that need deep access)
	AppConfig() *Config
}

// UnifiedProvider implements Provider by bridging static Config and the state store.
type UnifiedProvider struct {
	base  *Config
	store store.StateStore
}

// NewProvider creates a new UnifiedProvider. st may be nil.
func NewProvider(base *Config, st store.StateStore) *UnifiedProvider {
	return &UnifiedProvider{
		base:  base,
		store: st,
	}
}

func (p *UnifiedProvider) AppConfig() *Config { return p.base }

func (p *UnifiedProvider) TickInterval(ctx context.Context) time.Duration {
	d := time.Duration(p.base.Ticker.Interval)
	if d <= 0 {
		return time.Second
	}
	return d
}

func (p *UnifiedProvider) HistogramBins(ctx context.Context) int {
	if p.base.Dashboard.HistogramBins <= 0 {
		return 20
	}
	return p.base.Dashboard.HistogramBins
}

func (p *UnifiedProvider) SliderMax(ctx context.Context) int {
	if p.base.Dashboard.SliderMax <= 0 {
		return p.base.Telemetry.Capacity
	}
	return p.base.Dashboard.SliderMax
}

func (p *UnifiedProvider) Window(ctx context.Context) (start, end int) {
	start = p.getInt(ctx, KeyWindowStart, p.base.Dashboard.WindowStart)
	end = p.getInt(ctx, KeyWindowEnd, p.base.Dashboard.WindowEnd)
	return start, end
}

// Weight returns the user-entered weight. A key that was stored empty means the
// user cleared the field, which is reported as nil; an absent key yields the default.
func (p *UnifiedProvider) Weight(ctx context.Context) *float64 {
	return p.getOptionalFloat(ctx, KeyWeight, float64(p.base.Aero.DefaultWeight))
}

func (p *UnifiedProvider) WingArea(ctx context.Context) *float64 {
	return p.getOptionalFloat(ctx, KeyWingArea, float64(p.base.Aero.DefaultWingArea))
}

func (p *UnifiedProvider) UpdateClicks(ctx context.Context) int {
	return p.getInt(ctx, KeyUpdateClicks, 0)
}

// --- Helpers ---

func (p *UnifiedProvider) getInt(ctx context.Context, key string, fallback int) int {
	if p.store != nil {
		if val, ok := p.store.GetState(ctx, key); ok && val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				return i
			}
		}
	}
	return fallback
}

func (p *UnifiedProvider) getOptionalFloat(ctx context.Context, key string, fallback float64) *float64 {
	if p.store != nil {
		if val, ok := p.store.GetState(ctx, key); ok {
			if val == "" {
				return nil
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return &f
			}
			return nil
		}
	}
	return &fallback
}
