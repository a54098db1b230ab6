package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric"
)

// Controller is what has the domain logic, the one that
// can be used by the views to get the metrics.
type Controller interface {
	// GetRangeMetrics gathers the series of every query, the result is in
	// the same order as the queries. If any of the queries fails the whole
	// gathering fails.
	GetRangeMetrics(ctx context.Context, queries []model.Query, tr model.TimeRange, step time.Duration) ([][]model.MetricSeries, error)
}

type controller struct {
	gatherers map[string]metric.IdentifiableGatherer
	executor  *metric.ParallelQueryExecutor
}

// NewController returns a new controller that routes the queries to the
// gatherer of their datasource.
func NewController(gatherers map[string]metric.IdentifiableGatherer, executor *metric.QueryExecutor) Controller {
	return &controller{
		gatherers: gatherers,
		executor:  metric.NewParallelQueryExecutor(executor),
	}
}

func (c *controller) GetRangeMetrics(ctx context.Context, queries []model.Query, tr model.TimeRange, step time.Duration) ([][]model.MetricSeries, error) {
	qs := make([]metric.QueryData, 0, len(queries))
	for _, q := range queries {
		g, ok := c.gatherers[q.DatasourceID]
		if !ok {
			return nil, fmt.Errorf("datasource %q does not exist", q.DatasourceID)
		}
		qs = append(qs, metric.QueryData{
			Gatherer:  g,
			Query:     q,
			TimeRange: tr,
			Step:      step,
		})
	}

	results := c.executor.ExecuteQueries(ctx, qs)

	res := make([][]model.MetricSeries, 0, len(results))
	for i, r := range results {
		if r.Error != nil {
			return nil, fmt.Errorf("query %q failed: %w", queries[i].Expr, r.Error)
		}
		res = append(res, r.Metrics)
	}

	return res, nil
}
