package termdash

import (
	"context"
	"fmt"
	"sync"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mum4k/termdash"
	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/linestyle"
	"github.com/mum4k/termdash/terminal/terminalapi"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
)

const (
	rootID         = "root"
	headerPercent  = 15
	drawerPercent  = 50
	redrawInterval = 250 * time.Millisecond
)

// Renderer is a terminal renderer based on termdash. Every panel is a box with
// a header, the chart, the optional drawer and the error line from top to
// bottom.
type Renderer struct {
	terminal terminalapi.Terminal
	plugins  *plugin.Registry
	logger   log.Logger

	mu    sync.Mutex
	cont  *container.Container
	ready chan struct{}
}

// NewRenderer returns a new termdash renderer that draws on the terminal.
func NewRenderer(t terminalapi.Terminal, plugins *plugin.Registry, logger log.Logger) *Renderer {
	if plugins == nil {
		plugins = plugin.Global
	}
	if logger == nil {
		logger = log.Dummy
	}

	return &Renderer{
		terminal: t,
		plugins:  plugins,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// LoadPage creates the layout of the panels stacked one below the other and
// returns their renderers.
func (r *Renderer) LoadPage(ctx context.Context, panels []model.Panel) ([]render.PanelRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cont != nil {
		return nil, fmt.Errorf("page already loaded")
	}
	if len(panels) == 0 {
		return nil, fmt.Errorf("at least one panel is required")
	}

	prs := make([]*panelRenderer, 0, len(panels))
	for _, p := range panels {
		prs = append(prs, newPanelRenderer(p, r.plugins, r.logger))
	}

	layout, err := stack(prs)
	if err != nil {
		return nil, fmt.Errorf("error creating panels layout: %w", err)
	}

	opts := append([]container.Option{container.ID(rootID)}, layout...)
	c, err := container.New(r.terminal, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating termdash container: %w", err)
	}
	r.cont = c
	close(r.ready)

	res := make([]render.PanelRenderer, 0, len(prs))
	for _, pr := range prs {
		pr.setContainer(c)
		res = append(res, pr)
	}

	r.logger.Debugf("termdash page loaded with %d panels", len(prs))

	return res, nil
}

// Run draws the loaded page on the terminal until the context is done or the
// user presses q, Esc or Ctrl+C, on those keys quit is called.
func (r *Renderer) Run(ctx context.Context, quit func()) error {
	select {
	case <-ctx.Done():
		return nil
	case <-r.ready:
	}

	quitter := func(k *terminalapi.Keyboard) {
		switch k.Key {
		case 'q', 'Q', keyboard.KeyEsc, keyboard.KeyCtrlC:
			quit()
		}
	}

	err := termdash.Run(ctx, r.terminal, r.cont,
		termdash.KeyboardSubscriber(quitter),
		termdash.RedrawInterval(redrawInterval),
	)
	if err != nil {
		return fmt.Errorf("error running termdash: %w", err)
	}

	return nil
}

// stack returns the container options that place the panels in rows of the
// same height.
func stack(prs []*panelRenderer) ([]container.Option, error) {
	first, err := prs[0].layout()
	if err != nil {
		return nil, err
	}
	if len(prs) == 1 {
		return first, nil
	}

	rest, err := stack(prs[1:])
	if err != nil {
		return nil, err
	}

	return []container.Option{
		container.SplitHorizontal(
			container.Top(first...),
			container.Bottom(rest...),
			container.SplitPercent(100/len(prs)),
		),
	}, nil
}

func cellColor(c colorful.Color) cell.Color {
	r, g, b := render.RGB255(c)
	return cell.ColorRGB24(r, g, b)
}

func borderOptions(l model.Layout, title string) []container.Option {
	if l.NoBorder {
		return nil
	}

	opts := []container.Option{container.Border(linestyle.Light)}
	if c, err := colorful.Hex(l.BorderColor); err == nil {
		opts = append(opts, container.BorderColor(cellColor(c)))
	}
	if title != "" {
		opts = append(opts, container.BorderTitle(" "+title+" "))
	}
	return opts
}
