package plain

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
)

// Config is the configuration of the plain renderer.
type Config struct {
	Out     io.Writer
	Plugins *plugin.Registry
	// Draws is the number of data draws every panel makes before Done is
	// closed, 0 never closes it.
	Draws int
}

// Renderer prints every panel view as text lines, used when there is no
// terminal to draw the charts on.
type Renderer struct {
	cfg Config

	mu       sync.Mutex
	lip      *lipgloss.Renderer
	pending  int
	done     chan struct{}
	doneOnce sync.Once

	title  lipgloss.Style
	faint  lipgloss.Style
	errSty lipgloss.Style
}

// NewRenderer returns a plain renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Plugins == nil {
		cfg.Plugins = plugin.Global
	}

	lip := lipgloss.NewRenderer(cfg.Out)
	return &Renderer{
		cfg:    cfg,
		lip:    lip,
		done:   make(chan struct{}),
		title:  lip.NewStyle().Bold(true),
		faint:  lip.NewStyle().Faint(true),
		errSty: lip.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// LoadPage satisfies render.Renderer interface.
func (r *Renderer) LoadPage(ctx context.Context, panels []model.Panel) ([]render.PanelRenderer, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("at least one panel is required")
	}

	r.mu.Lock()
	r.pending = len(panels)
	r.mu.Unlock()

	res := make([]render.PanelRenderer, 0, len(panels))
	for _, p := range panels {
		res = append(res, &panelRenderer{r: r, panel: p})
	}
	return res, nil
}

// Done is closed when all the panels made the configured number of draws.
func (r *Renderer) Done() <-chan struct{} {
	return r.done
}

func (r *Renderer) drawFinished() {
	r.pending--
	if r.pending <= 0 {
		r.doneOnce.Do(func() { close(r.done) })
	}
}

type panelRenderer struct {
	r     *Renderer
	panel model.Panel
	draws int
}

// Draw satisfies render.PanelRenderer interface.
func (p *panelRenderer) Draw(v render.View) error {
	r := p.r
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString(r.title.Render(p.header(v)))
	b.WriteString("\n")

	if v.Placeholder {
		b.WriteString(r.faint.Render("  loading..."))
		b.WriteString("\n")
		_, err := io.WriteString(r.cfg.Out, b.String())
		return err
	}

	colors := render.Palette(len(v.Dataset.Series), v.Options.Colors, r.cfg.Plugins.Has(plugin.Colors))
	labels := render.SeriesLabels(v.Dataset)
	for i, s := range v.Dataset.Series {
		mark := r.lip.NewStyle().Foreground(lipgloss.Color(colors[i].Hex())).Render("■")
		b.WriteString("  " + mark + " " + p.summary(labels[i], s) + "\n")
	}
	if v.HasDrawer {
		b.WriteString(r.faint.Render(v.Drawer))
		b.WriteString("\n")
	}
	// The error line is always printed.
	b.WriteString(r.errSty.Render(v.ErrorLine))
	b.WriteString("\n")

	if _, err := io.WriteString(r.cfg.Out, b.String()); err != nil {
		return err
	}

	p.draws++
	if r.cfg.Draws > 0 && p.draws == r.cfg.Draws {
		r.drawFinished()
	}

	return nil
}

func (p *panelRenderer) header(v render.View) string {
	h := p.panel.ID
	if p.panel.Title != "" {
		h = p.panel.Title
	}
	if t := v.Options.Title; t != nil && t.Display && t.Text != "" && p.r.cfg.Plugins.Has(plugin.Title) {
		h = fmt.Sprintf("%s: %s", h, t.Text)
	}
	return h
}

func (p *panelRenderer) summary(label string, s model.MetricSeries) string {
	vs := render.Values(s)
	if len(vs) == 0 {
		return fmt.Sprintf("%s (no points)", label)
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	res := fmt.Sprintf("%s points=%d min=%.2f max=%.2f", label, len(vs), min, max)
	if last, ok := render.LastValue(s); ok && p.r.cfg.Plugins.Has(plugin.Tooltip) {
		res += fmt.Sprintf(" last=%.2f", last)
	}
	return res
}
