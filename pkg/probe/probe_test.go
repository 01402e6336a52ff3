package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"cruisemon/pkg/config"
)

func TestRun(t *testing.T) {
	probes := []Probe{
		{
			Name: "Success Probe",
			Check: func(ctx context.Context) error {
				return nil
			},
			Critical: true,
		},
		{
			Name: "Failure Probe (Non-Critical)",
			Check: func(ctx context.Context) error {
				return errors.New("minor issue")
			},
			Critical: false,
		},
	}

	results := Run(context.Background(), probes)

	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}

	if results[0].Error != nil {
		t.Errorf("Expected success probe to pass, got error: %v", results[0].Error)
	}

	if results[1].Error == nil {
		t.Error("Expected failure probe to fail, got nil")
	}
}

func TestAnalyzeResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		wantErr bool
	}{
		{
			name: "All Pass",
			results: []Result{
				{Probe: Probe{Name: "P1", Critical: true}, Error: nil},
			},
			wantErr: false,
		},
		{
			name: "Critical Failure",
			results: []Result{
				{Probe: Probe{Name: "P1", Critical: true}, Error: errors.New("fail")},
			},
			wantErr: true,
		},
		{
			name: "Non-Critical Failure",
			results: []Result{
				{Probe: Probe{Name: "P1", Critical: false}, Error: errors.New("fail")},
			},
			wantErr: false,
		},
		{
			name: "Mixed Failure",
			results: []Result{
				{Probe: Probe{Name: "P1", Critical: false}, Error: errors.New("fail")},
				{Probe: Probe{Name: "P2", Critical: true}, Error: errors.New("fail")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AnalyzeResults(tt.results)
			if (err != nil) != tt.wantErr {
				t.Errorf("AnalyzeResults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestChecks(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	badCfg := config.DefaultConfig()
	badCfg.Telemetry.Capacity = 0

	tests := []struct {
		name    string
		probe   Probe
		wantErr bool
	}{
		{"Database_OK", Database(fakePinger{}), false},
		{"Database_Fail", Database(fakePinger{err: errors.New("locked")}), true},
		{"Database_Nil", Database(nil), true},
		{"Config_OK", Config(config.DefaultConfig()), false},
		{"Config_Invalid", Config(badCfg), true},
		{"LogDir_OK", LogDir(filepath.Join(tempDir, "server.log")), false},
		{"LogDir_Missing", LogDir(filepath.Join(tempDir, "nope", "server.log")), true},
		{"Listen_Free", ListenAddr("127.0.0.1:0"), false},
		{"Listen_Busy", ListenAddr(busy.Addr().String()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.probe.Check(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("%s: error = %v, wantErr %v", tt.probe.Name, err, tt.wantErr)
			}
		})
	}

	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 0 {
		t.Errorf("LogDir probe left %d files behind", len(entries))
	}
}
