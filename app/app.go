package app

import (
	"context"
	"sync"

	"log/slog"

	"github.com/marginboard/marginboard-manager/config"
	httpapi "github.com/marginboard/marginboard-manager/internal/api/http"
	"github.com/marginboard/marginboard-manager/internal/dependency"
	"github.com/marginboard/marginboard-manager/internal/report"
	"github.com/marginboard/marginboard-manager/internal/store"
	"github.com/shopspring/decimal"
)

// App is the main application
type App struct {
	hs       *httpapi.Server
	db       dependency.Repository
	c        *config.Config
	done     chan struct{}
	doneOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting marginboard manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	eng := report.NewEngine()
	if v := a.c.Metrics.VATMultiplier; v != "" {
		vat, err := decimal.NewFromString(v)
		if err != nil {
			slog.Default().ErrorContext(ctx, "invalid vat multiplier",
				slog.String("value", v),
			)
			return err
		}
		eng = report.NewEngineWithVAT(vat)
	}
	svc := report.New(a.db, eng)

	a.hs = httpapi.New(&a.c.HTTP, a.db, svc)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.doneOnce.Do(func() { close(a.done) })
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	a.doneOnce.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
