package page

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/whaeuser/plotterm/internal/controller"
	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/panel"
)

const (
	defRange     = 1 * time.Hour
	defMaxPoints = 300
)

// DataSourceConfig is the configuration of a panel data source.
type DataSourceConfig struct {
	Controller controller.Controller
	Panel      model.Panel
	// RelativeRange overrides the panel range when set.
	RelativeRange time.Duration
	// MaxPoints is the number of points per series used to calculate the
	// step when the panel doesn't set one.
	MaxPoints int
	Now       func() time.Time
}

func (c *DataSourceConfig) defaults() error {
	if c.Controller == nil {
		return fmt.Errorf("controller is required")
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = defMaxPoints
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

type dataSource struct {
	cfg     DataSourceConfig
	rng     time.Duration
	queries []model.Query
	legends []*template.Template
}

// NewDataSource returns the data source of a panel: the range queries of the
// panel over a window that ends now.
func NewDataSource(cfg DataSourceConfig) (panel.DataSource, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	d := &dataSource{cfg: cfg}

	d.rng = cfg.Panel.Range
	if cfg.RelativeRange > 0 {
		d.rng = cfg.RelativeRange
	}
	if d.rng <= 0 {
		d.rng = defRange
	}

	for i, q := range cfg.Panel.Queries {
		if q.DatasourceID == "" {
			q.DatasourceID = cfg.Panel.DatasourceID
		}
		d.queries = append(d.queries, q)

		var tpl *template.Template
		if q.Legend != "" {
			t, err := template.New(fmt.Sprintf("legend-%d", i)).Option("missingkey=zero").Parse(q.Legend)
			if err != nil {
				return nil, fmt.Errorf("invalid legend template on query %d: %w", i, err)
			}
			tpl = t
		}
		d.legends = append(d.legends, tpl)
	}

	return d.fetch, nil
}

func (d *dataSource) fetch(ctx context.Context) (model.Dataset, error) {
	end := d.cfg.Now().UTC()
	tr := model.TimeRange{Start: end.Add(-d.rng), End: end}

	step := d.cfg.Panel.Step
	if step <= 0 {
		step = autoStep(d.rng, d.cfg.MaxPoints)
	}

	results, err := d.cfg.Controller.GetRangeMetrics(ctx, d.queries, tr, step)
	if err != nil {
		return model.Dataset{}, err
	}

	ds := model.Dataset{}
	for i, series := range results {
		for _, s := range series {
			s.ID = d.legend(i, s)
			ds.Series = append(ds.Series, s)
		}
	}

	return ds, nil
}

func (d *dataSource) legend(query int, s model.MetricSeries) string {
	tpl := d.legends[query]
	if tpl == nil {
		return s.ID
	}

	var b bytes.Buffer
	if err := tpl.Execute(&b, s.Labels); err != nil {
		return s.ID
	}

	// Missing labels render empty legends.
	l := b.String()
	if strings.TrimSpace(l) == "" {
		return s.ID
	}
	return l
}

// autoStep returns the step to get at most maxPoints points on the range,
// rounded up to the second.
func autoStep(rng time.Duration, maxPoints int) time.Duration {
	step := rng / time.Duration(maxPoints)
	if rem := step % time.Second; rem != 0 {
		step += time.Second - rem
	}
	if step < time.Second {
		step = time.Second
	}
	return step
}
