package api

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"cruisemon/internal/ui"
	"cruisemon/pkg/version"
)

// Handlers groups the endpoint handlers of the dashboard server.
type Handlers struct {
	Frames   *FrameHandler
	Controls *ControlsHandler
	Charts   *ChartHandler
	Stream   *StreamHub
	Stats    *StatsHandler
}

// NewServer creates and configures the HTTP server.
// shutdown is called after POST /api/shutdown has been answered.
func NewServer(addr string, h Handlers, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 2. Version Endpoint
	mux.HandleFunc("GET /api/version", handleVersion)

	// 3. Frame Endpoints
	mux.HandleFunc("GET /api/frame", h.Frames.HandleFrame)
	mux.HandleFunc("GET /api/window", h.Frames.HandleWindow)
	mux.HandleFunc("GET /api/charts/{name}", h.Charts.HandleChart)

	// 4. Controls Endpoints
	mux.HandleFunc("GET /api/controls", h.Controls.HandleGet)
	mux.HandleFunc("POST /api/controls", h.Controls.HandleSet)

	// 5. Stream Endpoint
	if h.Stream != nil {
		mux.Handle("GET /api/stream", h.Stream)
	}

	// 6. Diagnostics
	mux.Handle("GET /api/stats", h.Stats)
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)

	// 7. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Let the response flush first
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	// 8. Static Frontend
	distFS, err := fs.Sub(ui.DistFS, "dist")
	if err != nil {
		panic(fmt.Sprintf("Failed to subtree dist from embedded assets: %v", err))
	}
	mux.Handle("/", http.FileServer(&spaFileSystem{root: http.FS(distFS)}))

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": version.Version})
}
