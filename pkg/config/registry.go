package config

// Persistent state keys (Registry)
const (
	KeyWindowStart  = "window_start"
	KeyWindowEnd    = "window_end"
	KeyWeight       = "weight"
	KeyWingArea     = "wing_area"
	KeyUpdateClicks = "update_clicks"
)
