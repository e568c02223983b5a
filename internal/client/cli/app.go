// Package cli is the interactive view layer of the EcoSync client: a REPL
// over the coordinator, the gateway client, and the capture pipeline. All
// failures are rendered as messages; nothing here is fatal to the process.
package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ecosync/ecosync-cli/internal/client/api"
	"github.com/ecosync/ecosync-cli/internal/client/capture"
	"github.com/ecosync/ecosync-cli/internal/client/config"
	"github.com/ecosync/ecosync-cli/internal/client/coordinator"
	"github.com/ecosync/ecosync-cli/internal/client/repositories/localstate"
	"github.com/ecosync/ecosync-cli/internal/client/services"
	"github.com/ecosync/ecosync-cli/internal/client/session"
	"github.com/ecosync/ecosync-cli/internal/filex"
	"github.com/ecosync/ecosync-cli/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	sessions session.Repository
	auth     services.AuthService
	api      api.Client
	coord    *coordinator.Coordinator
	pipeline *capture.Pipeline

	reader *bufio.Reader
	out    io.Writer

	online atomic.Bool

	close func() error
}

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := filex.EnsureParentDir(c.StateDBPath); err != nil {
		log.Error(ctx, "error creating state directory", "error", err)
		return nil, err
	}

	db, err := localstate.Open(ctx, c.StateDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local state database", "error", err)
		return nil, err
	}

	sessions := session.NewLocalRepository(localstate.NewSQLiteRepository(db))
	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, session.TokenProvider{Repo: sessions})
	device := capture.NewFileDevice(c.FrontCameraSource, c.RearCameraSource)

	app := &App{
		config:   c,
		log:      log,
		sessions: sessions,
		auth:     services.NewAuthService(apiClient, sessions),
		api:      apiClient,
		coord:    coordinator.New(apiClient, sessions, log),
		pipeline: capture.NewPipeline(device),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		close:    db.Close,
	}
	app.online.Store(true)
	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		a.pipeline.Stop()
		a.coord.Close()
		if a.close != nil {
			_ = a.close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isSignedIn() bool {
	return a.coord.Snapshot().User != nil
}

func (a *App) setOnline(ctx context.Context, online bool) {
	if a.online.Swap(online) == online {
		return
	}
	if online {
		a.log.Info(ctx, "server reachable again")
	} else {
		a.log.Warn(ctx, "server unreachable")
	}
}

// StartOnlineStatusWatcher probes the API health endpoint on the given
// interval and flips the prompt's offline marker on transitions. It returns
// when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.api.Ping(pingCtx)
			cancel()
			a.setOnline(ctx, err == nil)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isAdmin() bool {
	return a.coord.Snapshot().User.IsAdmin()
}
