package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cruisemon/pkg/logging"
)

func TestFormatLogLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Info_SortedParams",
			input: `time=2026-01-18T06:50:46.074+01:00 level=INFO msg="Engine started" samples=100 interval=1s longparam=thisiswaytooLongtobedisplayed`,
			want:  "06:50:46 Engine started (interval=1s, samples=100)",
		},
		{
			name:  "Warn_ShowsLevel",
			input: `time=2026-01-18T06:50:47.000+01:00 level=WARN msg="Failed to save controls" error="database is locked"`,
			want:  "06:50:47 [WARN] Failed to save controls (error=database is locked)",
		},
		{
			name:  "No_Msg",
			input: `just some text`,
			want:  "just some text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatLogLine(tt.input); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestHandleLatestLog(t *testing.T) {
	if _, err := logging.GlobalLogCapture.Write([]byte(`level=INFO msg="Scheduler tick" seq=4` + "\n")); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handleLatestLog(rr, httptest.NewRequest(http.MethodGet, "/api/log/latest", nil))

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["log"] != "Scheduler tick (seq=4)" {
		t.Errorf("unexpected log line %q", resp["log"])
	}
}
