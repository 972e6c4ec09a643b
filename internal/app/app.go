package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/store"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	config   config.Config
	router   *http.ServeMux
	sessions *store.Store[handlers.Session]
}

func New(log *logrus.Logger, c config.Config) *App {
	app := &App{
		log:      log,
		config:   c,
		router:   http.NewServeMux(),
		sessions: store.New[handlers.Session](c.SessionTTL.Duration),
	}
	app.loadRoutes()
	return app
}

// Handler is the router wrapped in the request middleware.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithFields(logrus.Fields{
		"addr":      a.config.Addr,
		"base_path": a.config.BasePath,
	}).Info("ready to serve")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.sessions.Run(gCtx, a.config.JanitorInterval.Duration, a.log)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
