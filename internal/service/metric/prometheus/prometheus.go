package prometheus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/service/metric"
)

// Timeout limits of a single range query.
const (
	DefaultTimeout = 5 * time.Second
	MinTimeout     = 1 * time.Second
	MaxTimeout     = 30 * time.Second
)

// ConfigGatherer is the configuration of the Prometheus gatherer.
type ConfigGatherer struct {
	// Client is the prometheus API client.
	Client api.Client
	// Timeout is the base timeout of the queries.
	Timeout time.Duration
	Logger  log.Logger
}

// Gatherer is the Prometheus gatherer, it also tracks its own query stats.
type Gatherer interface {
	metric.Gatherer
	SetTimeout(duration time.Duration)
	GetMetrics() GathererStats
}

type gatherer struct {
	cli     promv1.API
	logger  log.Logger
	mu      sync.RWMutex
	timeout time.Duration
	stats   gathererStats
}

type gathererStats struct {
	mu                sync.Mutex
	queriesTotal      int64
	queriesSuccessful int64
	queriesFailed     int64
	queriesTimeout    int64
	averageExecTime   time.Duration
}

// NewGatherer returns a new metric gatherer for prometheus backends.
func NewGatherer(cfg ConfigGatherer) Gatherer {
	if cfg.Logger == nil {
		cfg.Logger = log.Dummy
	}

	g := &gatherer{
		logger: cfg.Logger,
	}
	if cfg.Client != nil {
		g.cli = promv1.NewAPI(cfg.Client)
	}
	g.SetTimeout(cfg.Timeout)

	return g
}

// NewClient returns a Prometheus API client for the address.
func NewClient(address string) (api.Client, error) {
	return api.NewClient(api.Config{Address: address})
}

func (g *gatherer) SetTimeout(duration time.Duration) {
	switch {
	case duration <= 0:
		duration = DefaultTimeout
	case duration > MaxTimeout:
		duration = MaxTimeout
	case duration < MinTimeout:
		duration = MinTimeout
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.timeout = duration
}

func (g *gatherer) GatherRange(ctx context.Context, query model.Query, start, end time.Time, step time.Duration) ([]model.MetricSeries, error) {
	if g.cli == nil {
		return nil, fmt.Errorf("prometheus client is not configured")
	}

	if step <= 0 {
		step = time.Second
	}

	queryStart := time.Now()
	defer func() {
		g.recordExecutionTime(time.Since(queryStart))
	}()

	ctx, cancel := context.WithTimeout(ctx, g.calculateRangeTimeout(start, end))
	defer cancel()

	r := promv1.Range{Start: start, End: end, Step: step}
	val, warnings, err := g.cli.QueryRange(ctx, query.Expr, r)
	if err != nil {
		if ctx.Err() != nil {
			g.markTimeout()
			return nil, fmt.Errorf("range query deadline exceeded: %w", err)
		}
		g.markFailure()
		return nil, fmt.Errorf("error querying prometheus: %w", err)
	}
	for _, w := range warnings {
		g.logger.Warningf("prometheus query %q warning: %s", query.Expr, w)
	}

	series, err := g.promToModel(val)
	if err != nil {
		g.markFailure()
		return nil, err
	}
	g.markSuccess()

	return series, nil
}

// promToModel converts a prometheus result in our model.
func (g *gatherer) promToModel(pm prommodel.Value) ([]model.MetricSeries, error) {
	switch v := pm.(type) {
	case prommodel.Matrix:
		return g.transformMatrix(v), nil
	case *prommodel.Scalar:
		return []model.MetricSeries{{
			ID:      "scalar",
			Metrics: []model.Metric{{TS: v.Timestamp.Time(), Value: float64(v.Value)}},
		}}, nil
	default:
		return nil, fmt.Errorf("%s is not a supported query result type", pm.Type())
	}
}

func (g *gatherer) transformMatrix(m prommodel.Matrix) []model.MetricSeries {
	res := make([]model.MetricSeries, 0, len(m))

	for _, ss := range m {
		labels := make(map[string]string, len(ss.Metric))
		for k, v := range ss.Metric {
			labels[string(k)] = string(v)
		}

		ms := make([]model.Metric, 0, len(ss.Values))
		for _, sp := range ss.Values {
			ms = append(ms, model.Metric{
				TS:    sp.Timestamp.Time(),
				Value: float64(sp.Value),
			})
		}

		res = append(res, model.MetricSeries{
			ID:      ss.Metric.String(),
			Labels:  labels,
			Metrics: ms,
		})
	}

	// Prometheus doesn't guarantee the series order.
	sort.SliceStable(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}

// calculateRangeTimeout scales the base timeout with the range size, longer
// ranges need more time.
func (g *gatherer) calculateRangeTimeout(start, end time.Time) time.Duration {
	rangeSize := end.Sub(start)
	baseTimeout := g.timeoutDuration()

	scaleFactor := float64(rangeSize) / float64(1*time.Hour)
	if scaleFactor > 1 {
		timeout := time.Duration(float64(baseTimeout) * scaleFactor)
		if timeout > MaxTimeout {
			return MaxTimeout
		}
		return timeout
	}

	return baseTimeout
}

func (g *gatherer) timeoutDuration() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.timeout
}

func (g *gatherer) recordExecutionTime(duration time.Duration) {
	g.stats.mu.Lock()
	defer g.stats.mu.Unlock()

	// Moving average.
	if g.stats.queriesSuccessful > 0 {
		g.stats.averageExecTime = (g.stats.averageExecTime + duration) / 2
	} else {
		g.stats.averageExecTime = duration
	}
}

func (g *gatherer) markSuccess() {
	g.stats.mu.Lock()
	defer g.stats.mu.Unlock()
	g.stats.queriesTotal++
	g.stats.queriesSuccessful++
}

func (g *gatherer) markFailure() {
	g.stats.mu.Lock()
	defer g.stats.mu.Unlock()
	g.stats.queriesTotal++
	g.stats.queriesFailed++
}

func (g *gatherer) markTimeout() {
	g.stats.mu.Lock()
	defer g.stats.mu.Unlock()
	g.stats.queriesTotal++
	g.stats.queriesTimeout++
}

// GetMetrics returns current gatherer statistics.
func (g *gatherer) GetMetrics() GathererStats {
	timeout := g.timeoutDuration()

	g.stats.mu.Lock()
	defer g.stats.mu.Unlock()

	return GathererStats{
		TotalQueries:      g.stats.queriesTotal,
		SuccessfulQueries: g.stats.queriesSuccessful,
		FailedQueries:     g.stats.queriesFailed,
		TimeoutQueries:    g.stats.queriesTimeout,
		AverageExecTime:   g.stats.averageExecTime,
		CurrentTimeout:    timeout,
	}
}

// GathererStats contains performance statistics for the gatherer.
type GathererStats struct {
	TotalQueries      int64
	SuccessfulQueries int64
	FailedQueries     int64
	TimeoutQueries    int64
	AverageExecTime   time.Duration
	CurrentTimeout    time.Duration
}
