package page

import (
	"context"
	"fmt"
	"time"

	"github.com/whaeuser/plotterm/internal/controller"
	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/service/metrics"
	"github.com/whaeuser/plotterm/internal/view/panel"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
)

// PageCfg is the configuration required to create a Page.
type PageCfg struct {
	// AppRefreshInterval overrides the refresh interval of every panel.
	AppRefreshInterval time.Duration
	// AppRelativeTimeRange overrides the time range of every panel.
	AppRelativeTimeRange time.Duration
	Config               model.Config
	Controller           controller.Controller
	Renderer             render.Renderer
	Plugins              *plugin.Registry
	Recorder             metrics.Recorder
}

// Page is a group of panels shown at the same time.
type Page struct {
	panels []*panel.TimeSeriesPanel
	logger log.Logger
}

// NewPage loads the panels on the renderer and returns the page with all
// the panels ready to be mounted.
func NewPage(ctx context.Context, cfg PageCfg, logger log.Logger) (*Page, error) {
	if logger == nil {
		logger = log.Dummy
	}

	// Call the view to load the page and return us the panel renderers.
	renderers, err := cfg.Renderer.LoadPage(ctx, cfg.Config.Panels)
	if err != nil {
		return nil, fmt.Errorf("could not load page on renderer: %w", err)
	}
	if len(renderers) != len(cfg.Config.Panels) {
		return nil, fmt.Errorf("renderer returned %d panel renderers for %d panels", len(renderers), len(cfg.Config.Panels))
	}

	p := &Page{logger: logger}
	for i, pcfg := range cfg.Config.Panels {
		ds, err := NewDataSource(DataSourceConfig{
			Controller:    cfg.Controller,
			Panel:         pcfg,
			RelativeRange: cfg.AppRelativeTimeRange,
		})
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", pcfg.ID, err)
		}

		refresh := pcfg.Refresh
		if cfg.AppRefreshInterval > 0 {
			refresh = cfg.AppRefreshInterval
		}

		tsp, err := panel.New(panel.Config{
			ID:              pcfg.ID,
			DataSource:      ds,
			Renderer:        renderers[i],
			RefreshInterval: refresh,
			Plugins:         cfg.Plugins,
			Recorder:        cfg.Recorder,
			Logger:          logger,
			Props: panel.Props{
				Options:   pcfg.Options,
				Layout:    pcfg.Layout,
				Drawer:    pcfg.Drawer,
				HasDrawer: pcfg.Drawer != "",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", pcfg.ID, err)
		}
		p.panels = append(p.panels, tsp)
	}

	return p, nil
}

// Panels returns the panels of the page.
func (p *Page) Panels() []*panel.TimeSeriesPanel {
	return p.panels
}

// Mount mounts all the panels, the returned cleanup unmounts them.
func (p *Page) Mount(ctx context.Context) (cleanup func()) {
	cleanups := make([]func(), 0, len(p.panels))
	for _, tsp := range p.panels {
		cleanups = append(cleanups, tsp.Mount(ctx))
	}
	p.logger.Infof("%d panels mounted", len(p.panels))

	return func() {
		for _, c := range cleanups {
			c()
		}
	}
}
