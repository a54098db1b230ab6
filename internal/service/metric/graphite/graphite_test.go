package graphite_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/service/metric/graphite"
)

func TestGathererGatherRange(t *testing.T) {
	tests := map[string]struct {
		response  string
		status    int
		expSeries []model.MetricSeries
		expErr    bool
	}{
		"Series should be converted skipping null values.": {
			status:   http.StatusOK,
			response: `[{"target":"servers.a.cpu","datapoints":[[1.5,1500000000],[null,1500000060],[2,1500000120]]}]`,
			expSeries: []model.MetricSeries{
				{
					ID:     "servers.a.cpu",
					Labels: map[string]string{"target": "servers.a.cpu"},
					Metrics: []model.Metric{
						{TS: time.Unix(1500000000, 0), Value: 1.5},
						{TS: time.Unix(1500000120, 0), Value: 2},
					},
				},
			},
		},
		"No series should return an empty result.": {
			status:    http.StatusOK,
			response:  `[]`,
			expSeries: []model.MetricSeries{},
		},
		"Invalid datapoints should fail.": {
			status:   http.StatusOK,
			response: `[{"target":"servers.a.cpu","datapoints":[["wrong",1500000000]]}]`,
			expErr:   true,
		},
		"Backend errors should fail.": {
			status:   http.StatusInternalServerError,
			response: `boom`,
			expErr:   true,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/render", r.URL.Path)
				assert.Equal(t, "servers.a.cpu", r.URL.Query().Get("target"))
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.response))
			}))
			defer srv.Close()

			cli, err := graphite.NewClient(srv.URL)
			require.NoError(t, err)
			g := graphite.NewGatherer(graphite.ConfigGatherer{Client: cli})

			got, err := g.GatherRange(context.TODO(), model.Query{Expr: "servers.a.cpu"}, time.Unix(1500000000, 0), time.Unix(1500000120, 0), 0)
			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(test.expSeries))
			for i, exp := range test.expSeries {
				assert.Equal(t, exp.ID, got[i].ID)
				assert.Equal(t, exp.Labels, got[i].Labels)
				require.Len(t, got[i].Metrics, len(exp.Metrics))
				for j, m := range exp.Metrics {
					assert.True(t, m.TS.Equal(got[i].Metrics[j].TS))
					assert.Equal(t, m.Value, got[i].Metrics[j].Value)
				}
			}
		})
	}
}

func TestGathererGatherRangeInvalidInterval(t *testing.T) {
	cli, err := graphite.NewClient("http://127.0.0.1:0")
	require.NoError(t, err)
	g := graphite.NewGatherer(graphite.ConfigGatherer{Client: cli})

	// Start after end.
	_, err = g.GatherRange(context.TODO(), model.Query{Expr: "a"}, time.Unix(1500000120, 0), time.Unix(1500000000, 0), 0)
	assert.Error(t, err)
}

func TestGathererGatherRangeContextDone(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	defer close(release)

	cli, err := graphite.NewClient(srv.URL)
	require.NoError(t, err)
	g := graphite.NewGatherer(graphite.ConfigGatherer{Client: cli})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.GatherRange(ctx, model.Query{Expr: "a"}, time.Unix(1500000000, 0), time.Unix(1500000120, 0), 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
