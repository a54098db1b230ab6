package datasource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric/datasource"
)

func TestNewGatherers(t *testing.T) {
	tests := map[string]struct {
		datasources map[string]model.Datasource
		expIDs      []string
		expErr      bool
	}{
		"All the datasource kinds should create a gatherer.": {
			datasources: map[string]model.Datasource{
				"prom":   {Prometheus: &model.PrometheusDatasource{Address: "http://127.0.0.1:9090"}},
				"gr":     {Graphite: &model.GraphiteDatasource{Address: "http://127.0.0.1:8080"}},
				"influx": {InfluxDB: &model.InfluxDBDatasource{Address: "http://127.0.0.1:8086", Database: "db"}},
				"demo":   {Fake: &model.FakeDatasource{}},
			},
			expIDs: []string{"prom", "gr", "influx", "demo"},
		},
		"A datasource without kind should fail.": {
			datasources: map[string]model.Datasource{"none": {}},
			expErr:      true,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			gs, err := datasource.NewGatherers(datasource.ConfigGatherer{Datasources: test.datasources})
			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, gs, len(test.expIDs))
			for _, id := range test.expIDs {
				assert.Equal(t, id, gs[id].ID())
			}
		})
	}
}
