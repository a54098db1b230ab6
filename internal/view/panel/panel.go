package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/service/metrics"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
)

// DefaultRefreshInterval is the interval the panel data is fetched again.
const DefaultRefreshInterval = 60 * time.Second

// DataSource returns the dataset a panel plots.
type DataSource func(ctx context.Context) (model.Dataset, error)

// Ticker is a repeating timer.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct {
	*time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.Ticker.C }

func newStdTicker(d time.Duration) Ticker {
	return stdTicker{Ticker: time.NewTicker(d)}
}

// Config is the configuration of a panel.
type Config struct {
	ID              string
	DataSource      DataSource
	Renderer        render.PanelRenderer
	Props           Props
	RefreshInterval time.Duration
	// Plugins is the registry the chart plugins are registered on, by
	// default the process wide one.
	Plugins  *plugin.Registry
	Recorder metrics.Recorder
	Logger   log.Logger
	// Now returns the wall clock, by default time.Now.
	Now func() time.Time
	// NewTicker creates the refresh ticker, by default a time.Ticker.
	NewTicker func(d time.Duration) Ticker
}

func (c *Config) defaults() error {
	if c.DataSource == nil {
		return fmt.Errorf("data source is required")
	}
	if c.Renderer == nil {
		return fmt.Errorf("renderer is required")
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.Plugins == nil {
		c.Plugins = plugin.Global
	}
	if c.Recorder == nil {
		c.Recorder = metrics.Dummy
	}
	if c.Logger == nil {
		c.Logger = log.Dummy
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewTicker == nil {
		c.NewTicker = newStdTicker
	}
	return nil
}

// TimeSeriesPanel fetches the data of a time series periodically and draws it
// with its renderer every time the state changes.
type TimeSeriesPanel struct {
	cfg    Config
	logger log.Logger

	mu         sync.Mutex
	state      State
	mounted    bool
	generation uint64
	cleanup    func()
}

// New returns a new unmounted panel.
func New(cfg Config) (*TimeSeriesPanel, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid panel configuration: %w", err)
	}

	return &TimeSeriesPanel{
		cfg:    cfg,
		logger: cfg.Logger.WithValues(map[string]interface{}{"panel": cfg.ID}),
		state:  initialState(),
	}, nil
}

// ID returns the panel ID.
func (p *TimeSeriesPanel) ID() string {
	return p.cfg.ID
}

// State returns the current state of the panel.
func (p *TimeSeriesPanel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mount starts the panel: draws the placeholder, fetches the data in the
// background and fetches it again on every refresh interval until the
// returned cleanup is called or the context is done. Mounting a mounted
// panel cleans up the previous mount first.
//
// The fetches in flight are not cancelled by the cleanup, their results are
// ignored.
func (p *TimeSeriesPanel) Mount(ctx context.Context) (cleanup func()) {
	p.mu.Lock()
	prev := p.cleanup
	p.mu.Unlock()
	if prev != nil {
		prev()
	}

	p.cfg.Plugins.RegisterDefaults()

	done := make(chan struct{})
	stopped := make(chan struct{})
	tk := p.cfg.NewTicker(p.cfg.RefreshInterval)

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mounted = true
	p.state = initialState()
	p.draw()

	var once sync.Once
	cleanup = func() {
		once.Do(func() {
			close(done)
			<-stopped

			p.mu.Lock()
			defer p.mu.Unlock()
			if p.generation == gen {
				p.mounted = false
				p.cleanup = nil
			}
			p.logger.Debugf("panel unmounted")
		})
	}
	p.cleanup = cleanup
	p.mu.Unlock()

	go p.fetchAndUpdate(ctx, gen)
	go func() {
		defer close(stopped)
		defer tk.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-tk.C():
			}

			go p.fetchAndUpdate(ctx, gen)
		}
	}()

	p.logger.Debugf("panel mounted, refreshing every %s", p.cfg.RefreshInterval)

	return cleanup
}

// fetchAndUpdate fetches the data and updates the state of the mount
// generation gen. Results of an unmounted or remounted panel are ignored.
func (p *TimeSeriesPanel) fetchAndUpdate(ctx context.Context, gen uint64) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("panel fetch panic recovered: %v", r)
		}
	}()

	start := time.Now()
	ds, err := p.cfg.DataSource(ctx)
	p.cfg.Recorder.ObservePanelFetch(p.cfg.ID, err == nil, time.Since(start))
	if err != nil {
		p.logger.Errorf("error fetching panel data, retrying on next refresh: %s", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted || p.generation != gen {
		p.logger.Debugf("ignoring panel data fetched by a previous mount")
		return
	}

	p.state = p.state.withDataset(ds, p.cfg.Now())
	p.cfg.Recorder.SetPanelEmpty(p.cfg.ID, ds.Empty())
	p.draw()
}

// draw must be called with the lock held.
func (p *TimeSeriesPanel) draw() {
	err := p.cfg.Renderer.Draw(Render(p.state, p.cfg.Props))
	if err != nil {
		p.logger.Errorf("error drawing panel: %s", err)
	}
}
