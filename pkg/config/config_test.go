package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cruisemon.yaml")

	tests := []struct {
		name          string
		setup         func(*testing.T)
		validate      func(*testing.T, *Config)
		checkFile     func(*testing.T)
		expectedError bool
	}{
		{
			name:  "NewFile_Defaults",
			setup: func(t *testing.T) {},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Telemetry.Capacity != 100 {
					t.Errorf("expected default capacity 100, got %d", cfg.Telemetry.Capacity)
				}
				if cfg.Aero.DefaultWeight != 50000 || cfg.Aero.DefaultWingArea != 30 {
					t.Errorf("expected defaults 50000/30, got %v/%v", cfg.Aero.DefaultWeight, cfg.Aero.DefaultWingArea)
				}
				if time.Duration(cfg.Ticker.Interval) != time.Second {
					t.Errorf("expected 1s interval, got %v", time.Duration(cfg.Ticker.Interval))
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if !strings.Contains(string(content), "capacity: 100") {
					t.Error("config file missing default values")
				}
				if !strings.Contains(string(content), "histogram_bins: 20") {
					t.Error("config file missing histogram_bins default")
				}
			},
		},
		{
			name: "ExistingFile_Override",
			setup: func(t *testing.T) {
				err := os.WriteFile(configPath, []byte("aero:\n  default_weight: 60kN\ndashboard:\n  window_end: 25\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Aero.DefaultWeight != 60000 {
					t.Errorf("expected weight 60000, got %v", cfg.Aero.DefaultWeight)
				}
				if cfg.Dashboard.WindowEnd != 25 {
					t.Errorf("expected window_end 25, got %d", cfg.Dashboard.WindowEnd)
				}
				// Untouched fields keep defaults
				if cfg.Aero.DefaultWingArea != 30 {
					t.Errorf("expected default area 30, got %v", cfg.Aero.DefaultWingArea)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if strings.Contains(string(content), "capacity") {
					t.Error("existing config file should not be rewritten")
				}
			},
		},
		{
			name: "Env_Override",
			setup: func(t *testing.T) {
				t.Setenv(EnvAddress, "0.0.0.0:9000")
				t.Setenv(EnvLogLevel, "debug")
				err := os.WriteFile(configPath, []byte("server:\n  address: localhost:1\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Server.Address != "0.0.0.0:9000" {
					t.Errorf("expected env address, got %s", cfg.Server.Address)
				}
				if cfg.Log.Server.Level != "debug" {
					t.Errorf("expected env level, got %s", cfg.Log.Server.Level)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if strings.Contains(string(content), "9000") {
					t.Error("environment override should NOT be persisted to config file")
				}
			},
		},
		{
			name: "Path_Env_Expansion",
			setup: func(t *testing.T) {
				t.Setenv("CRUISEMON_HOME", "/srv/cruisemon")
				err := os.WriteFile(configPath, []byte("db:\n  path: \"$CRUISEMON_HOME/state.db\"\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.DB.Path != "/srv/cruisemon/state.db" {
					t.Errorf("expected expanded DB path, got '%s'", cfg.DB.Path)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if !strings.Contains(string(content), "$CRUISEMON_HOME") {
					t.Error("config file should persist raw $VAR path")
				}
			},
		},
		{
			name: "Invalid_YAML",
			setup: func(t *testing.T) {
				err := os.WriteFile(configPath, []byte("telemetry: [not a map]"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
		{
			name: "Invalid_Range",
			setup: func(t *testing.T) {
				err := os.WriteFile(configPath, []byte("telemetry:\n  speed:\n    min: 300\n    max: 200\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
		{
			name: "Invalid_Level",
			setup: func(t *testing.T) {
				err := os.WriteFile(configPath, []byte("log:\n  server:\n    level: loud\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(configPath)
			tt.setup(t)

			cfg, err := Load(configPath)
			if (err != nil) != tt.expectedError {
				t.Fatalf("Load() error = %v, expectedError %v", err, tt.expectedError)
			}
			if err == nil {
				tt.validate(t, cfg)
				tt.checkFile(t)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envPath, []byte("CRUISEMON_TEST_VALUE=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("CRUISEMON_TEST_VALUE", "")
	os.Unsetenv("CRUISEMON_TEST_VALUE")

	if err := LoadEnv(envPath, filepath.Join(tempDir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv("CRUISEMON_TEST_VALUE"); got != "from-dotenv" {
		t.Errorf("expected from-dotenv, got %q", got)
	}
}

func TestGenerateDefault(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "default_config.yaml")

	err := GenerateDefault(configPath)
	if err != nil {
		t.Fatalf("GenerateDefault() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("GenerateDefault() did not create file")
	}

	content, _ := os.ReadFile(configPath)
	if !strings.Contains(string(content), "# Options: DEBUG, INFO, WARN, ERROR") {
		t.Error("GenerateDefault() did not annotate log levels")
	}

	// Running again should not fail
	err = GenerateDefault(configPath)
	if err != nil {
		t.Errorf("GenerateDefault() error on second run = %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() of generated file failed: %v", err)
	}
	if cfg.Aero.DefaultWeight != 50000 {
		t.Errorf("round-tripped default weight = %v", cfg.Aero.DefaultWeight)
	}
}
