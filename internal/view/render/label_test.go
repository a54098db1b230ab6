package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/render"
)

func TestSeriesLabels(t *testing.T) {
	tests := map[string]struct {
		ids []string
		exp []string
	}{
		"Without series there should be no labels.": {
			ids: []string{},
			exp: []string{},
		},
		"Unique IDs should be used as they are.": {
			ids: []string{"a", "b"},
			exp: []string{"a", "b"},
		},
		"Empty IDs should be named by their position.": {
			ids: []string{"a", "", ""},
			exp: []string{"a", "series-2", "series-3"},
		},
		"Repeated IDs should get a suffix.": {
			ids: []string{"up", "up", "up", "up (2)"},
			exp: []string{"up", "up (2)", "up (3)", "up (2) (2)"},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			ds := model.Dataset{}
			for _, id := range test.ids {
				ds.Series = append(ds.Series, model.MetricSeries{ID: id})
			}

			assert.Equal(t, test.exp, render.SeriesLabels(ds))
		})
	}
}
