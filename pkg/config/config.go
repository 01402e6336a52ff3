package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	DB        DBConfig        `yaml:"db"`
	Ticker    TickerConfig    `yaml:"ticker"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Aero      AeroConfig      `yaml:"aero"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address     string `yaml:"address"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// DBConfig holds database settings. The default in-memory database keeps
// dashboard controls for the life of the process only.
type DBConfig struct {
	Path string `yaml:"path"`
}

// TickerConfig holds ticker settings.
type TickerConfig struct {
	Interval Duration `yaml:"interval"`
}

// Range is a closed interval [Min, Max] for uniform sampling.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// TelemetryConfig holds settings for the synthetic telemetry generator.
type TelemetryConfig struct {
	Capacity int    `yaml:"capacity"`
	Seed     uint64 `yaml:"seed"` // 0 = seeded from the clock
	Speed    Range  `yaml:"speed"`
	Altitude Range  `yaml:"altitude"`
	Thrust   Range  `yaml:"thrust"`
}

// AeroConfig holds the fallback physical parameters.
type AeroConfig struct {
	DefaultWeight   Force `yaml:"default_weight"`
	DefaultWingArea Area  `yaml:"default_wing_area"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	WindowStart   int `yaml:"window_start"`
	WindowEnd     int `yaml:"window_end"`
	SliderMax     int `yaml:"slider_max"`
	HistogramBins int `yaml:"histogram_bins"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:8050",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:       "./logs/server.log",
				Level:      "INFO",
				MaxSizeMB:  16,
				MaxBackups: 3,
			},
			Requests: LogSettings{
				Path:       "./logs/requests.log",
				Level:      "INFO",
				MaxSizeMB:  16,
				MaxBackups: 1,
			},
		},
		DB: DBConfig{
			Path: ":memory:",
		},
		Ticker: TickerConfig{
			Interval: Duration(1 * time.Second),
		},
		Telemetry: TelemetryConfig{
			Capacity: 100,
			Speed:    Range{Min: 200, Max: 250},
			Altitude: Range{Min: 30000, Max: 35000},
			Thrust:   Range{Min: 20000, Max: 25000},
		},
		Aero: AeroConfig{
			DefaultWeight:   Force(50000),
			DefaultWingArea: Area(30),
		},
		Dashboard: DashboardConfig{
			WindowStart:   0,
			WindowEnd:     10,
			SliderMax:     100,
			HistogramBins: 20,
		},
	}
}

// Environment variables that override file values.
const (
	EnvAddress  = "CRUISEMON_ADDR"
	EnvLogLevel = "CRUISEMON_LOG_LEVEL"
	EnvDBPath   = "CRUISEMON_DB_PATH"
)

// LoadEnv loads KEY=VALUE pairs from the given dotenv files into the process
// environment. Missing files are ignored and existing variables win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	applyEnv(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAddress); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Server.Level = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DB.Path = v
	}
}

// expandPaths resolves $VAR references in file paths. The raw value stays on disk.
func expandPaths(cfg *Config) {
	cfg.DB.Path = os.ExpandEnv(cfg.DB.Path)
	cfg.Log.Server.Path = os.ExpandEnv(cfg.Log.Server.Path)
	cfg.Log.Requests.Path = os.ExpandEnv(cfg.Log.Requests.Path)
}

var validLevel = regexp.MustCompile(`^(?i)(debug|info|warn|error)$`)

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Telemetry.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.capacity must be positive, got %d", c.Telemetry.Capacity))
	}
	for name, r := range map[string]Range{"speed": c.Telemetry.Speed, "altitude": c.Telemetry.Altitude, "thrust": c.Telemetry.Thrust} {
		if r.Min > r.Max {
			errs = append(errs, fmt.Errorf("telemetry.%s: min %.2f exceeds max %.2f", name, r.Min, r.Max))
		}
	}
	if c.Aero.DefaultWeight <= 0 || c.Aero.DefaultWingArea <= 0 {
		errs = append(errs, errors.New("aero defaults must be positive"))
	}
	if c.Dashboard.HistogramBins <= 0 {
		errs = append(errs, fmt.Errorf("dashboard.histogram_bins must be positive, got %d", c.Dashboard.HistogramBins))
	}
	if lvl := c.Log.Server.Level; lvl != "" && !validLevel.MatchString(lvl) {
		errs = append(errs, fmt.Errorf("invalid log level %q", lvl))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# cruisemon configuration
# ------------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)
#   Force:    N, kN, lbf
#   Area:     m2, ft2

`)
	data = append(header, data...)

	reLevel := regexp.MustCompile(`(?m)^(\s+)level:`)
	data = reLevel.ReplaceAll(data, []byte("${1}# Options: DEBUG, INFO, WARN, ERROR\n${1}level:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
