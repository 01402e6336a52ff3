package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cruisemon/pkg/config"
	"cruisemon/pkg/store"
)

// Trigger identifies what caused a step.
type Trigger string

const (
	TriggerStartup     Trigger = "startup"
	TriggerInterval    Trigger = "interval"
	TriggerInteraction Trigger = "interaction" // slider or parameter change
	TriggerButton      Trigger = "button"
)

// Controls are the user inputs of the dashboard. A nil Weight or WingArea is
// an empty input field.
type Controls struct {
	Window       [2]int   `json:"window"`
	Weight       *float64 `json:"weight"`
	WingArea     *float64 `json:"wing_area"`
	UpdateClicks int      `json:"update_clicks"`
}

// WindowLabel is the text shown under the time range slider.
func (c Controls) WindowLabel() string {
	return fmt.Sprintf("Selected time range: [%d, %d]", c.Window[0], c.Window[1])
}

// Interaction is a user event delivered to the engine.
type Interaction struct {
	Trigger  Trigger
	Controls Controls
}

// LoadControls reads the remembered controls, falling back to configured defaults.
func LoadControls(ctx context.Context, p config.Provider) Controls {
	start, end := p.Window(ctx)
	return Controls{
		Window:       [2]int{start, end},
		Weight:       p.Weight(ctx),
		WingArea:     p.WingArea(ctx),
		UpdateClicks: p.UpdateClicks(ctx),
	}
}

// SaveControls remembers c. A nil parameter is stored as an empty value.
func SaveControls(ctx context.Context, st store.StateStore, c Controls) error {
	if st == nil {
		return nil
	}
	vals := map[string]string{
		config.KeyWindowStart:  strconv.Itoa(c.Window[0]),
		config.KeyWindowEnd:    strconv.Itoa(c.Window[1]),
		config.KeyWeight:       formatOptional(c.Weight),
		config.KeyWingArea:     formatOptional(c.WingArea),
		config.KeyUpdateClicks: strconv.Itoa(c.UpdateClicks),
	}
	var errs []error
	for k, v := range vals {
		if err := st.SetState(ctx, k, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
