package graphite

import (
	"context"
	"fmt"
	"time"

	graphite "github.com/JensRantil/graphite-client"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric"
)

// ConfigGatherer is the configuration of the Graphite gatherer.
type ConfigGatherer struct {
	// Client is the graphite API client.
	Client *graphite.Client
}

type gatherer struct {
	cfg ConfigGatherer
}

// NewGatherer returns a new metric gatherer for graphite backends.
func NewGatherer(cfg ConfigGatherer) metric.Gatherer {
	return &gatherer{cfg: cfg}
}

// NewClient returns a graphite client for the address.
func NewClient(address string) (*graphite.Client, error) {
	return graphite.New(address)
}

// GatherRange satisfies metric.Gatherer. Graphite calculates the steps by
// itself, the step is ignored.
func (g *gatherer) GatherRange(ctx context.Context, query model.Query, start, end time.Time, _ time.Duration) ([]model.MetricSeries, error) {
	type result struct {
		series graphite.MultiDatapoints
		err    error
	}

	// The client doesn't support contexts, don't wait for it when cancelled.
	resC := make(chan result, 1)
	go func() {
		s, err := g.cfg.Client.QueryMulti([]string{query.Expr}, graphite.TimeInterval{
			From: start,
			To:   end,
		})
		resC <- result{series: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resC:
		if res.err != nil {
			return nil, fmt.Errorf("error querying graphite: %w", res.err)
		}
		return g.transformSeries(res.series)
	}
}

func (g *gatherer) transformSeries(gs graphite.MultiDatapoints) ([]model.MetricSeries, error) {
	res := make([]model.MetricSeries, 0, len(gs))

	for _, s := range gs {
		dps, err := s.AsFloats()
		if err != nil {
			return nil, fmt.Errorf("invalid graphite datapoints on %q: %w", s.Target, err)
		}

		ms := make([]model.Metric, 0, len(dps))
		for _, dp := range dps {
			// Missing values on graphite are nulls.
			if dp.Value == nil {
				continue
			}
			ms = append(ms, model.Metric{
				TS:    dp.Time,
				Value: *dp.Value,
			})
		}

		res = append(res, model.MetricSeries{
			ID:      s.Target,
			Labels:  map[string]string{"target": s.Target},
			Metrics: ms,
		})
	}

	return res, nil
}
