package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mum4k/termdash/terminal/termbox"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/whaeuser/plotterm/internal/controller"
	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/configuration"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/service/metric"
	"github.com/whaeuser/plotterm/internal/service/metric/datasource"
	"github.com/whaeuser/plotterm/internal/service/metrics"
	"github.com/whaeuser/plotterm/internal/view"
	"github.com/whaeuser/plotterm/internal/view/page"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
	"github.com/whaeuser/plotterm/internal/view/render/plain"
	"github.com/whaeuser/plotterm/internal/view/render/termdash"
)

var (
	// Version is the app version.
	Version = "dev"
)

// Main is the main application.
type Main struct {
	args   []string
	out    io.Writer
	flags  *cmdFlags
	logger log.Logger
}

// Run runs the main application.
func (m *Main) Run() error {
	// Initialization.
	flags, err := newCmdFlags(m.args)
	if err != nil {
		return err
	}
	m.flags = flags

	var logCloser io.Closer
	m.logger, logCloser, err = m.newLogger()
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	cfg, err := m.loadConfiguration()
	if err != nil {
		return err
	}

	// Self metrics.
	reg := prometheus.NewRegistry()
	var recorder metrics.Recorder = metrics.Dummy
	if m.flags.metricsListenAddress != "" {
		recorder = metrics.NewPrometheus(reg)
	}

	// Gatherers and the controller.
	gatherers, err := datasource.NewGatherers(datasource.ConfigGatherer{
		Datasources:  cfg.Datasources,
		QueryTimeout: m.flags.queryTimeout,
		Logger:       m.logger,
	})
	if err != nil {
		return errors.Wrap(err, "error creating datasource gatherers")
	}

	executor := metric.NewQueryExecutor(metric.GatherConfig{
		EnableCaching:        m.flags.cacheTTL > 0,
		CacheTTL:             m.flags.cacheTTL,
		QueryTimeout:         m.flags.queryTimeout,
		MaxConcurrentQueries: m.flags.maxConcurrentQueries,
	}, recorder)
	ctrl := controller.NewController(gatherers, executor)

	var g run.Group
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Renderer.
	var renderer render.Renderer
	if m.flags.plain {
		pr := plain.NewRenderer(plain.Config{
			Out:     m.out,
			Plugins: plugin.Global,
			Draws:   m.flags.plainTicks,
		})
		renderer = pr

		g.Add(
			func() error {
				select {
				case <-ctx.Done():
				case <-pr.Done():
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	} else {
		term, err := termbox.New(termbox.ColorMode(terminalapi.ColorMode256))
		if err != nil {
			return errors.Wrap(err, "error creating terminal")
		}
		defer term.Close()

		tr := termdash.NewRenderer(term, plugin.Global, m.logger)
		renderer = tr

		g.Add(
			func() error {
				return tr.Run(ctx, cancel)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Page and app.
	pg, err := page.NewPage(ctx, page.PageCfg{
		AppRefreshInterval:   m.flags.refreshInterval,
		AppRelativeTimeRange: m.flags.relativeDur,
		Config:               *cfg,
		Controller:           ctrl,
		Renderer:             renderer,
		Plugins:              plugin.Global,
		Recorder:             recorder,
	}, m.logger)
	if err != nil {
		return errors.Wrap(err, "error creating page")
	}
	app := view.NewApp(pg, m.logger)

	// App.
	g.Add(
		func() error {
			return app.Run(ctx)
		},
		func(_ error) {
			cancel()
		},
	)

	// Query cache eviction.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				executor.Run(ctx)
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Self metrics server.
	if m.flags.metricsListenAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: m.flags.metricsListenAddress, Handler: mux}

		g.Add(
			func() error {
				m.logger.Infof("serving metrics on %s", m.flags.metricsListenAddress)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return errors.Wrap(err, "error serving metrics")
				}
				return nil
			},
			func(_ error) {
				_ = srv.Shutdown(context.Background())
			},
		)
	}

	// Signals.
	{
		sigC := make(chan os.Signal, 1)
		exitC := make(chan struct{})
		signal.Notify(sigC, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(sigC)

		g.Add(
			func() error {
				select {
				case <-sigC:
				case <-exitC:
				}
				return nil
			},
			func(_ error) {
				close(exitC)
			},
		)
	}

	return g.Run()
}

// newLogger returns a zerolog logger writing on the log path in debug mode,
// otherwise the logs are discarded so they don't break the terminal.
func (m *Main) newLogger() (log.Logger, io.Closer, error) {
	if !m.flags.debug {
		return log.Dummy, nil, nil
	}

	f, err := os.OpenFile(m.flags.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error opening log file %s", m.flags.logPath)
	}

	return log.NewZerolog(f, true), f, nil
}

func (m *Main) loadConfiguration() (*model.Config, error) {
	f, err := os.Open(m.flags.cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening configuration file %s", m.flags.cfg)
	}
	defer f.Close()

	cfg, err := configuration.YAMLLoader{}.Load(f)
	if err != nil {
		return nil, errors.Wrap(err, "error loading configuration")
	}

	return cfg, nil
}

func main() {
	m := Main{args: os.Args[1:], out: os.Stdout}
	if err := m.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running app: %s", err)
		os.Exit(1)
	}

	os.Exit(0)
}
