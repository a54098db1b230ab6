package metric

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metrics"
)

// QueryExecutor executes range queries with a timeout, a limit of concurrent
// queries and an optional cache. Failed queries are not retried, the caller
// will query again on its next refresh.
type QueryExecutor struct {
	cfg       GatherConfig
	semaphore chan struct{}
	cache     *MetricCache
	recorder  metrics.Recorder
}

// NewQueryExecutor creates a new query executor.
func NewQueryExecutor(cfg GatherConfig, recorder metrics.Recorder) *QueryExecutor {
	cfg.defaults()
	if recorder == nil {
		recorder = metrics.Dummy
	}

	qe := &QueryExecutor{
		cfg:       cfg,
		semaphore: make(chan struct{}, cfg.MaxConcurrentQueries),
		recorder:  recorder,
	}
	if cfg.EnableCaching {
		qe.cache = NewMetricCache(cfg.CacheSize, cfg.CacheTTL)
	}

	return qe
}

// Run runs the background tasks of the executor until the context is done.
func (qe *QueryExecutor) Run(ctx context.Context) {
	if qe.cache == nil {
		<-ctx.Done()
		return
	}
	qe.cache.Run(ctx)
}

// CacheStats returns the cache statistics, zero when caching is disabled.
func (qe *QueryExecutor) CacheStats() CacheStats {
	if qe.cache == nil {
		return CacheStats{}
	}
	return qe.cache.Stats()
}

// ExecuteRange performs a range query.
func (qe *QueryExecutor) ExecuteRange(
	ctx context.Context,
	gatherer IdentifiableGatherer,
	query model.Query,
	tr model.TimeRange,
	step time.Duration,
) ([]model.MetricSeries, error) {
	key := NewCacheKey(gatherer.ID(), query.Expr, tr, step)
	if qe.cache != nil {
		if cached, ok := qe.cache.Get(key); ok {
			qe.recorder.IncDatasourceQueryCacheHit(gatherer.ID())
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, qe.cfg.QueryTimeout)
	defer cancel()

	select {
	case qe.semaphore <- struct{}{}:
		defer func() { <-qe.semaphore }()
	case <-ctx.Done():
		return nil, fmt.Errorf("query execution timeout waiting for rate limit: %w", ctx.Err())
	}

	start := time.Now()
	result, err := gatherer.GatherRange(ctx, query, tr.Start, tr.End, step)
	qe.recorder.ObserveDatasourceQuery(gatherer.ID(), err == nil, time.Since(start))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("query timeout after %s: %w", qe.cfg.QueryTimeout, err)
		}
		return nil, fmt.Errorf("error gathering range metrics: %w", err)
	}

	if qe.cache != nil {
		qe.cache.Set(key, result)
	}

	return result, nil
}

// ParallelQueryExecutor runs the queries of a panel concurrently.
type ParallelQueryExecutor struct {
	qe *QueryExecutor
}

// NewParallelQueryExecutor creates parallel executor.
func NewParallelQueryExecutor(qe *QueryExecutor) *ParallelQueryExecutor {
	return &ParallelQueryExecutor{qe: qe}
}

// QueryData represents a single range query.
type QueryData struct {
	Gatherer  IdentifiableGatherer
	Query     model.Query
	TimeRange model.TimeRange
	Step      time.Duration
}

// QueryResult contains the execution result for a query.
type QueryResult struct {
	Metrics []model.MetricSeries
	Error   error
}

// ExecuteQueries executes all the queries concurrently and returns the
// results in the same order as the queries.
func (pqe *ParallelQueryExecutor) ExecuteQueries(ctx context.Context, queries []QueryData) []QueryResult {
	results := make([]QueryResult, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q QueryData) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = QueryResult{Error: fmt.Errorf("query panic recovered: %v", r)}
				}
			}()

			m, err := pqe.qe.ExecuteRange(ctx, q.Gatherer, q.Query, q.TimeRange, q.Step)
			results[i] = QueryResult{Metrics: m, Error: err}
		}(i, q)
	}
	wg.Wait()

	return results
}
