package view

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/whaeuser/plotterm/internal/service/log"
)

// Mounter is the view that the app will mount when running.
type Mounter interface {
	Mount(ctx context.Context) (cleanup func())
}

// App represents the application that will render the metrics panels.
type App struct {
	page   Mounter
	logger log.Logger

	running bool
	mu      sync.Mutex
}

// NewApp Is the main application
func NewApp(page Mounter, logger log.Logger) *App {
	if logger == nil {
		logger = log.Dummy
	}

	return &App{
		page:   page,
		logger: logger,
	}
}

// Run will start running the application, it blocks until the context is
// done and the page has been unmounted.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return errors.New("already running")
	}
	a.running = true
	a.mu.Unlock()

	if a.page == nil {
		return errors.New("page is required")
	}

	// The app is not reused once stopped.
	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	cleanup := a.page.Mount(ctx)
	a.logger.Infof("app running")

	<-ctx.Done()

	cleanup()
	a.logger.Infof("app stopped")

	return nil
}
