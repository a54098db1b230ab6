package configuration_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/configuration"
)

func TestYAMLLoader(t *testing.T) {
	tests := map[string]struct {
		cfg    string
		exp    func(t *testing.T, cfg *model.Config)
		expErr bool
	}{
		"A complete configuration should be loaded.": {
			cfg: `
version: v1
datasources:
  prom:
    prometheus:
      address: http://127.0.0.1:9090
panels:
  - title: Transfer rate
    datasource: prom
    range: 1h
    refresh: 30s
    queries:
      - expr: rate(bytes_total[1m])
        legend: "{{.instance}}"
    options:
      legend:
        display: true
    layout:
      chart_percent: 70
    drawer: bytes per second
`,
			exp: func(t *testing.T, cfg *model.Config) {
				require.Len(t, cfg.Panels, 1)
				p := cfg.Panels[0]
				assert.Equal(t, "panel-0", p.ID)
				assert.Equal(t, "Transfer rate", p.Title)
				assert.Equal(t, time.Hour, p.Range)
				assert.Equal(t, 30*time.Second, p.Refresh)
				assert.Equal(t, "{{.instance}}", p.Queries[0].Legend)
				assert.True(t, p.Options.Legend.Display)
				assert.Nil(t, p.Options.Scales)
				assert.Equal(t, 70, p.Layout.ChartPercent)
				assert.Equal(t, "bytes per second", p.Drawer)
				assert.Equal(t, "http://127.0.0.1:9090", cfg.Datasources["prom"].Prometheus.Address)
			},
		},
		"Unknown fields should fail.": {
			cfg: `
version: v1
datasources:
  demo:
    fake: {}
panels:
  - datasource: demo
    queries: [{expr: x}]
    unknown: true
`,
			expErr: true,
		},
		"Invalid configuration should fail.": {
			cfg:    `version: v1`,
			expErr: true,
		},
		"Malformed YAML should fail.": {
			cfg:    `version: [v1`,
			expErr: true,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			cfg, err := configuration.YAMLLoader{}.Load(strings.NewReader(test.cfg))
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			test.exp(t, cfg)
		})
	}
}
