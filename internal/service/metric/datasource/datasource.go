package datasource

import (
	"fmt"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/log"
	"github.com/whaeuser/plotterm/internal/service/metric"
	"github.com/whaeuser/plotterm/internal/service/metric/fake"
	"github.com/whaeuser/plotterm/internal/service/metric/graphite"
	"github.com/whaeuser/plotterm/internal/service/metric/influxdb"
	"github.com/whaeuser/plotterm/internal/service/metric/prometheus"
)

// ConfigGatherer is the configuration used to create the gatherers.
type ConfigGatherer struct {
	Datasources  map[string]model.Datasource
	QueryTimeout time.Duration
	Logger       log.Logger
}

// NewGatherers returns a gatherer for each datasource, identified by the
// datasource ID.
func NewGatherers(cfg ConfigGatherer) (map[string]metric.IdentifiableGatherer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Dummy
	}

	gs := make(map[string]metric.IdentifiableGatherer, len(cfg.Datasources))
	for id, ds := range cfg.Datasources {
		g, err := newGatherer(cfg, id, ds)
		if err != nil {
			return nil, fmt.Errorf("could not create %q datasource gatherer: %w", id, err)
		}
		gs[id] = metric.WithID(id, g)
	}

	return gs, nil
}

func newGatherer(cfg ConfigGatherer, id string, ds model.Datasource) (metric.Gatherer, error) {
	switch {
	case ds.Prometheus != nil:
		cli, err := prometheus.NewClient(ds.Prometheus.Address)
		if err != nil {
			return nil, err
		}
		return prometheus.NewGatherer(prometheus.ConfigGatherer{
			Client:  cli,
			Timeout: cfg.QueryTimeout,
			Logger:  cfg.Logger.WithValues(map[string]interface{}{"datasource": id}),
		}), nil
	case ds.Graphite != nil:
		cli, err := graphite.NewClient(ds.Graphite.Address)
		if err != nil {
			return nil, err
		}
		return graphite.NewGatherer(graphite.ConfigGatherer{Client: cli}), nil
	case ds.InfluxDB != nil:
		cli, err := influxdb.NewClient(*ds.InfluxDB)
		if err != nil {
			return nil, err
		}
		return influxdb.NewGatherer(influxdb.ConfigGatherer{Client: cli, Database: ds.InfluxDB.Database}), nil
	case ds.Fake != nil:
		return fake.NewGatherer(fake.ConfigGatherer{Empty: ds.Fake.Empty}), nil
	}

	return nil, fmt.Errorf("unknown datasource kind")
}
