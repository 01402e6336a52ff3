package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"cruisemon/pkg/config"
)

// Pinger is satisfied by *sql.DB and *db.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Database checks that the state database answers.
func Database(p Pinger) Probe {
	return Probe{
		Name:     "State Database",
		Critical: true,
		Check: func(ctx context.Context) error {
			if p == nil {
				return fmt.Errorf("no database handle")
			}
			return p.PingContext(ctx)
		},
	}
}

// Config re-validates the loaded configuration.
func Config(cfg *config.Config) Probe {
	return Probe{
		Name:     "Configuration",
		Critical: true,
		Check: func(ctx context.Context) error {
			return cfg.Validate()
		},
	}
}

// LogDir checks that the log directory is writable. Failure is not critical
// since console logging keeps working.
func LogDir(path string) Probe {
	return Probe{
		Name: "Log Directory",
		Check: func(ctx context.Context) error {
			f, err := os.CreateTemp(filepath.Dir(path), ".probe-*")
			if err != nil {
				return err
			}
			name := f.Name()
			f.Close()
			return os.Remove(name)
		},
	}
}

// ListenAddr checks that the HTTP address can be bound.
func ListenAddr(addr string) Probe {
	return Probe{
		Name:     "Listen Address",
		Critical: true,
		Check: func(ctx context.Context) error {
			var lc net.ListenConfig
			l, err := lc.Listen(ctx, "tcp", addr)
			if err != nil {
				return err
			}
			return l.Close()
		},
	}
}
