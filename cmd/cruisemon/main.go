package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"

	"cruisemon/internal/api"
	"cruisemon/pkg/config"
	"cruisemon/pkg/dashboard"
	"cruisemon/pkg/db"
	"cruisemon/pkg/logging"
	"cruisemon/pkg/probe"
	"cruisemon/pkg/store"
	"cruisemon/pkg/telemetry"
	"cruisemon/pkg/tracker"
	"cruisemon/pkg/version"
)

const defaultConfigPath = "configs/cruisemon.yaml"

var (
	configPath  = flag.String("config", defaultConfigPath, "Path to the YAML config file")
	initConfig  = flag.Bool("init-config", false, "Generate default config file and exit")
	debug       = flag.Bool("debug", false, "Log at DEBUG level and enable step tracing")
	openBrowser = flag.Bool("open", false, "Open the dashboard in the default browser")
	addr        = flag.String("addr", "", "Listen address, overrides server.address")
)

// options are the command line overrides applied after the config is loaded.
type options struct {
	ConfigPath  string
	Debug       bool
	OpenBrowser bool
	Addr        string
}

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	opts := options{
		ConfigPath:  *configPath,
		Debug:       *debug,
		OpenBrowser: *openBrowser,
		Addr:        *addr,
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := config.LoadEnv(); err != nil {
		return err
	}

	appCfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOptions(appCfg, opts)

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("cruisemon started", "version", version.Version)

	dbConn, st, err := initDB(appCfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	results := probe.Run(ctx, []probe.Probe{
		probe.Config(appCfg),
		probe.Database(dbConn),
		probe.LogDir(appCfg.Log.Server.Path),
	})
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	prov := config.NewProvider(appCfg, st)
	tr := tracker.New()

	buf := telemetry.NewBuffer(appCfg.Telemetry.Capacity)
	sim := telemetry.NewSimulator(buf, appCfg.Telemetry)
	sim.Seed(buf.Cap())
	slog.Debug("Telemetry buffer seeded", "samples", buf.Len())

	frames := api.NewFrameHandler()
	stream := api.NewStreamHub()
	engine := dashboard.New(prov, st, sim, tr, frames, stream)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(appCfg.Server.Address, api.Handlers{
		Frames:   frames,
		Controls: api.NewControlsHandler(engine, frames, prov),
		Charts:   api.NewChartHandler(frames),
		Stream:   stream,
		Stats:    api.NewStatsHandler(tr, frames, stream),
	}, shutdownFunc)
	srv.Handler = loggingMiddleware(srv.Handler)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		// Stopping the server stops the engine
		defer cancel()
		return runServerLifecycle(gctx, srv, ln, quit)
	})

	if appCfg.Server.OpenBrowser {
		url := "http://" + ln.Addr().String()
		if err := browser.OpenURL(url); err != nil {
			slog.Warn("Failed to open browser", "url", url, "error", err)
		}
	}

	return g.Wait()
}

func applyOptions(cfg *config.Config, opts options) {
	if opts.Addr != "" {
		cfg.Server.Address = opts.Addr
	}
	if opts.Debug {
		cfg.Log.Server.Level = "DEBUG"
		logging.EnableTrace = true
	}
	if opts.OpenBrowser {
		cfg.Server.OpenBrowser = true
	}
}

func initDB(appCfg *config.Config) (*db.DB, store.Store, error) {
	dbConn, err := db.Init(appCfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return dbConn, store.NewSQLiteStore(dbConn), nil
}

func runServerLifecycle(ctx context.Context, srv *http.Server, ln net.Listener, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", ln.Addr().String())
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
