package influxdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	influxdb "github.com/influxdata/influxdb1-client/v2"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric"
)

// Query placeholders replaced before sending the query.
const (
	TimeFilterPlaceholder = "$timeFilter"
	IntervalPlaceholder   = "$__interval"
)

// ConfigGatherer is the configuration of the InfluxDB gatherer.
type ConfigGatherer struct {
	// Client is the influxdb API client.
	Client   influxdb.Client
	Database string
}

type gatherer struct {
	cfg ConfigGatherer
}

// NewGatherer returns a new metric gatherer for InfluxDB backends.
func NewGatherer(cfg ConfigGatherer) metric.Gatherer {
	return &gatherer{cfg: cfg}
}

// NewClient returns an InfluxDB HTTP client.
func NewClient(ds model.InfluxDBDatasource) (influxdb.Client, error) {
	return influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:               ds.Address,
		Username:           ds.Username,
		Password:           ds.Password,
		InsecureSkipVerify: ds.Insecure,
	})
}

// GatherRange satisfies metric.Gatherer.
func (g *gatherer) GatherRange(ctx context.Context, query model.Query, start, end time.Time, step time.Duration) ([]model.MetricSeries, error) {
	q := influxdb.NewQuery(g.renderQuery(query.Expr, start, end, step), g.cfg.Database, "s")

	type result struct {
		resp *influxdb.Response
		err  error
	}

	// The client doesn't support contexts, don't wait for it when cancelled.
	resC := make(chan result, 1)
	go func() {
		resp, err := g.cfg.Client.Query(q)
		resC <- result{resp: resp, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-resC:
	}

	if res.err != nil {
		return nil, fmt.Errorf("error querying influxdb: %w", res.err)
	}
	if err := res.resp.Error(); err != nil {
		return nil, fmt.Errorf("influxdb query error: %w", err)
	}

	return g.transformResponse(res.resp)
}

func (g *gatherer) renderQuery(expr string, start, end time.Time, step time.Duration) string {
	if step <= 0 {
		step = time.Second
	}

	r := strings.NewReplacer(
		TimeFilterPlaceholder, fmt.Sprintf("time >= %ds AND time <= %ds", start.Unix(), end.Unix()),
		IntervalPlaceholder, fmt.Sprintf("%ds", int64(step.Seconds())),
	)
	return r.Replace(expr)
}

func (g *gatherer) transformResponse(resp *influxdb.Response) ([]model.MetricSeries, error) {
	res := []model.MetricSeries{}

	for _, r := range resp.Results {
		for _, row := range r.Series {
			if len(row.Columns) < 2 {
				return nil, fmt.Errorf("series %q requires a time and a value column", row.Name)
			}

			ms := make([]model.Metric, 0, len(row.Values))
			for _, v := range row.Values {
				if len(v) < 2 || v[1] == nil {
					continue
				}
				ts, err := toFloat(v[0])
				if err != nil {
					return nil, fmt.Errorf("invalid time on series %q: %w", row.Name, err)
				}
				val, err := toFloat(v[1])
				if err != nil {
					return nil, fmt.Errorf("invalid value on series %q: %w", row.Name, err)
				}
				ms = append(ms, model.Metric{TS: time.Unix(int64(ts), 0), Value: val})
			}

			labels := map[string]string{"__name__": row.Name}
			for k, v := range row.Tags {
				labels[k] = v
			}

			res = append(res, model.MetricSeries{
				ID:      seriesID(row.Name, row.Tags),
				Labels:  labels,
				Metrics: ms,
			})
		}
	}

	return res, nil
}

func seriesID(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]string, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, fmt.Sprintf("%s=%s", k, tags[k]))
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(kvs, ","))
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
