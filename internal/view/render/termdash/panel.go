package termdash

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/widgetapi"
	"github.com/mum4k/termdash/widgets/linechart"
	"github.com/mum4k/termdash/widgets/text"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/view/plugin"
	"github.com/whaeuser/plotterm/internal/view/render"
)

const loadingText = "loading..."

// panelRenderer draws the views of a panel on its regions of the page.
type panelRenderer struct {
	panel   model.Panel
	options model.ChartOptions
	boxLay  model.Layout
	plugins *plugin.Registry
	logger  log.Logger

	mu   sync.Mutex
	cont *container.Container
}

func newPanelRenderer(p model.Panel, plugins *plugin.Registry, logger log.Logger) *panelRenderer {
	l := p.Layout
	l.Defaults()

	return &panelRenderer{
		panel:   p,
		options: model.DefaultChartOptions().Merge(p.Options),
		boxLay:  l,
		plugins: plugins,
		logger:  logger.WithValues(map[string]interface{}{"panel": p.ID}),
	}
}

func (p *panelRenderer) setContainer(c *container.Container) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cont = c
}

func (p *panelRenderer) id(region string) string {
	return p.panel.ID + "-" + region
}

func (p *panelRenderer) hasDrawer() bool {
	return p.panel.Drawer != ""
}

// leaf returns the options of a region that starts blank.
func (p *panelRenderer) leaf(region string) ([]container.Option, error) {
	t, err := newText("")
	if err != nil {
		return nil, err
	}
	return []container.Option{container.ID(p.id(region)), container.PlaceWidget(t)}, nil
}

// layout returns the container tree of the panel.
func (p *panelRenderer) layout() ([]container.Option, error) {
	leaves := map[string][]container.Option{}
	for _, region := range []string{"header", "plot", "drawer", "error"} {
		l, err := p.leaf(region)
		if err != nil {
			return nil, err
		}
		leaves[region] = l
	}

	chart := container.SplitHorizontal(
		container.Top(leaves["header"]...),
		container.Bottom(leaves["plot"]...),
		container.SplitPercent(headerPercent),
	)
	if p.options.Legend != nil && p.options.Legend.Position == "bottom" {
		chart = container.SplitHorizontal(
			container.Top(leaves["plot"]...),
			container.Bottom(leaves["header"]...),
			container.SplitPercent(100-headerPercent),
		)
	}

	bottom := container.Bottom(leaves["error"]...)
	if p.hasDrawer() {
		bottom = container.Bottom(container.SplitHorizontal(
			container.Top(leaves["drawer"]...),
			container.Bottom(leaves["error"]...),
			container.SplitPercent(drawerPercent),
		))
	}

	opts := []container.Option{
		container.ID(p.panel.ID),
		container.SplitHorizontal(
			container.Top(chart),
			bottom,
			container.SplitPercent(p.boxLay.ChartPercent),
		),
	}

	return append(opts, borderOptions(p.boxLay, p.panel.Title)...), nil
}

// Draw satisfies render.PanelRenderer interface.
func (p *panelRenderer) Draw(v render.View) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cont == nil {
		return fmt.Errorf("page is not loaded")
	}

	widgets, err := p.widgets(v)
	if err != nil {
		return err
	}

	return p.place(widgets)
}

// widgets returns the widget of every region for the view.
func (p *panelRenderer) widgets(v render.View) (map[string]widgetapi.Widget, error) {
	blank := func() (widgetapi.Widget, error) { return newText("") }

	if v.Placeholder {
		return build(map[string]func() (widgetapi.Widget, error){
			"header": blank,
			"plot":   func() (widgetapi.Widget, error) { return newText(loadingText) },
			"drawer": blank,
			"error":  blank,
		})
	}

	drawer := ""
	if v.HasDrawer {
		drawer = v.Drawer
	}

	return build(map[string]func() (widgetapi.Widget, error){
		"header": func() (widgetapi.Widget, error) { return p.header(v) },
		"plot":   func() (widgetapi.Widget, error) { return p.chart(v) },
		"drawer": func() (widgetapi.Widget, error) { return newText(drawer) },
		"error": func() (widgetapi.Widget, error) {
			return newText(v.ErrorLine, text.WriteCellOpts(cell.FgColor(cell.ColorRed)))
		},
	})
}

func build(fs map[string]func() (widgetapi.Widget, error)) (map[string]widgetapi.Widget, error) {
	res := make(map[string]widgetapi.Widget, len(fs))
	for region, f := range fs {
		w, err := f()
		if err != nil {
			return nil, fmt.Errorf("error creating %s widget: %w", region, err)
		}
		res[region] = w
	}
	return res, nil
}

func (p *panelRenderer) place(widgets map[string]widgetapi.Widget) error {
	for _, region := range []string{"header", "plot", "drawer", "error"} {
		if region == "drawer" && !p.hasDrawer() {
			continue
		}

		err := p.cont.Update(p.id(region), container.PlaceWidget(widgets[region]))
		if err != nil {
			return fmt.Errorf("error placing %s widget: %w", region, err)
		}
	}
	return nil
}

// chart returns the line chart of the view dataset.
func (p *panelRenderer) chart(v render.View) (*linechart.LineChart, error) {
	opts := []linechart.Option{
		linechart.AxesCellOpts(cell.FgColor(cell.ColorNumber(8))),
		linechart.XLabelCellOpts(cell.FgColor(cell.ColorNumber(250))),
		linechart.YLabelCellOpts(cell.FgColor(cell.ColorNumber(250))),
		linechart.XAxisUnscaled(),
	}

	var x, y model.AxisOptions
	if v.Options.Scales != nil {
		x, y = v.Options.Scales.X, v.Options.Scales.Y
	}
	if y.Min != nil && y.Max != nil && *y.Min < *y.Max {
		opts = append(opts, linechart.YAxisCustomScale(*y.Min, *y.Max))
	} else {
		opts = append(opts, linechart.YAxisAdaptive())
	}
	if z := v.Options.Zoom; z != nil && z.Enabled && z.StepPercent > 0 && z.StepPercent <= 100 && p.plugins.Has(plugin.Zoom) {
		opts = append(opts, linechart.ZoomStepPercent(z.StepPercent))
	}

	lc, err := linechart.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating line chart: %w", err)
	}

	if !p.plugins.Has(plugin.LineElement) {
		return lc, nil
	}

	xLabels := render.XLabels(v.Dataset, x, p.plugins.Has(plugin.TimeScale))
	colors := render.Palette(len(v.Dataset.Series), v.Options.Colors, p.plugins.Has(plugin.Colors))
	labels := render.SeriesLabels(v.Dataset)
	for i, s := range v.Dataset.Series {
		err := lc.Series(labels[i], render.Values(s),
			linechart.SeriesCellOpts(cell.FgColor(cellColor(colors[i]))),
			linechart.SeriesXLabels(xLabels),
		)
		if err != nil {
			return nil, fmt.Errorf("error setting series %q: %w", labels[i], err)
		}
	}

	return lc, nil
}

// header returns the text above the chart: the title, and the legend with
// the latest values.
func (p *panelRenderer) header(v render.View) (*text.Text, error) {
	t, err := newText("")
	if err != nil {
		return nil, err
	}

	if ti := v.Options.Title; ti != nil && ti.Display && ti.Text != "" && p.plugins.Has(plugin.Title) {
		if err := writeText(t, ti.Text+"\n"); err != nil {
			return nil, fmt.Errorf("error writing title: %w", err)
		}
	}

	if lg := v.Options.Legend; lg == nil || !lg.Display || !p.plugins.Has(plugin.Legend) {
		return t, nil
	}

	colors := render.Palette(len(v.Dataset.Series), v.Options.Colors, p.plugins.Has(plugin.Colors))
	labels := render.SeriesLabels(v.Dataset)
	for i, s := range v.Dataset.Series {
		err := writeText(t, "■ ", text.WriteCellOpts(cell.FgColor(cellColor(colors[i]))))
		if err != nil {
			return nil, fmt.Errorf("error writing legend: %w", err)
		}

		entry := labels[i]
		if last, ok := render.LastValue(s); ok && p.plugins.Has(plugin.Tooltip) {
			entry = fmt.Sprintf("%s: %.2f", labels[i], last)
		}
		if err := writeText(t, entry+"  "); err != nil {
			return nil, fmt.Errorf("error writing legend: %w", err)
		}
	}

	return t, nil
}

// newText returns a text widget with s written.
func newText(s string, opts ...text.WriteOption) (*text.Text, error) {
	t, err := text.New(text.WrapAtWords())
	if err != nil {
		return nil, fmt.Errorf("error creating text: %w", err)
	}
	if err := writeText(t, s, opts...); err != nil {
		return nil, err
	}
	return t, nil
}

// writeText writes s on the text widget. The widget only accepts non empty
// text without control or space runes other than space and newline, empty
// strings are skipped and the rest of the runes are replaced.
func writeText(t *text.Text, s string, opts ...text.WriteOption) error {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\n':
			return r
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil
	}

	if err := t.Write(s, opts...); err != nil {
		return fmt.Errorf("error writing text: %w", err)
	}
	return nil
}
