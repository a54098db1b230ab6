package fake

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric"
)

// ConfigGatherer is the configuration of the fake gatherer.
type ConfigGatherer struct {
	// Empty makes the gatherer return one series without points.
	Empty bool
	// Series is the number of series returned for every query.
	Series int
}

type gatherer struct {
	cfg ConfigGatherer
}

// NewGatherer returns a gatherer that generates sine waves whose phase
// depends on the query, useful to demo and test panels without backends.
func NewGatherer(cfg ConfigGatherer) metric.Gatherer {
	if cfg.Series <= 0 {
		cfg.Series = 1
	}
	return &gatherer{cfg: cfg}
}

func (g *gatherer) GatherRange(ctx context.Context, query model.Query, start, end time.Time, step time.Duration) ([]model.MetricSeries, error) {
	if g.cfg.Empty {
		return []model.MetricSeries{{ID: query.Expr, Labels: map[string]string{"query": query.Expr}}}, nil
	}

	if step <= 0 {
		step = time.Minute
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(query.Expr))
	phase := float64(h.Sum32()%360) * math.Pi / 180

	res := make([]model.MetricSeries, 0, g.cfg.Series)
	for s := 0; s < g.cfg.Series; s++ {
		var ms []model.Metric
		for ts := start; !ts.After(end); ts = ts.Add(step) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			x := float64(ts.Unix()) / 600
			ms = append(ms, model.Metric{
				TS:    ts,
				Value: 50 + 40*math.Sin(x+phase+float64(s)),
			})
		}

		id := query.Expr
		if g.cfg.Series > 1 {
			id = query.Expr + "-" + string(rune('a'+s%26))
		}
		res = append(res, model.MetricSeries{
			ID:      id,
			Labels:  map[string]string{"query": query.Expr, "series": id},
			Metrics: ms,
		})
	}

	return res, nil
}
