package api

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"cruisemon/pkg/logging"
)

// Matches key=value or key="value with spaces"
var logRegex = regexp.MustCompile(`([a-zA-Z0-9_\-.]+)=(?:"([^"]*)"|([^ ]+))`)

const maxParamLen = 20

// handleLatestLog returns the last captured log line for the status bar.
func handleLatestLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"log": formatLogLine(logging.GlobalLogCapture.GetLastLine()),
	})
}

// formatLogLine condenses a slog text line to "HH:MM:SS [LEVEL] msg (k=v, ...)".
// The level is only shown for WARN and ERROR; parameters are sorted and values
// longer than maxParamLen are dropped.
func formatLogLine(raw string) string {
	matches := logRegex.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return raw
	}

	var msg, timeStr, level string
	var params []string

	for _, m := range matches {
		key, val := m[1], m[2]
		if val == "" {
			val = m[3]
		}
		val = strings.TrimSpace(val)

		switch key {
		case "time":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				timeStr = t.Format("15:04:05")
			}
		case "level":
			if val == "WARN" || val == "ERROR" {
				level = val
			}
		case "msg":
			msg = val
		default:
			if len(val) <= maxParamLen {
				params = append(params, fmt.Sprintf("%s=%s", key, val))
			}
		}
	}

	if msg == "" {
		return raw
	}

	sort.Strings(params)

	parts := make([]string, 0, 3)
	if timeStr != "" {
		parts = append(parts, timeStr)
	}
	if level != "" {
		parts = append(parts, "["+level+"]")
	}
	parts = append(parts, msg)
	output := strings.Join(parts, " ")

	if len(params) > 0 {
		return fmt.Sprintf("%s (%s)", output, strings.Join(params, ", "))
	}
	return output
}
