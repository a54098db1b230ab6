package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
)

func TestDatasetFirstSeriesLen(t *testing.T) {
	tests := map[string]struct {
		dataset  model.Dataset
		expLen   int
		expEmpty bool
	}{
		"A dataset without series should be empty.": {
			dataset:  model.Dataset{},
			expLen:   0,
			expEmpty: true,
		},
		"A dataset with an empty first series should be empty.": {
			dataset: model.Dataset{Series: []model.MetricSeries{
				{ID: "a"},
				{ID: "b", Metrics: []model.Metric{{Value: 1}}},
			}},
			expLen:   0,
			expEmpty: true,
		},
		"A dataset with points on the first series should not be empty.": {
			dataset: model.Dataset{Series: []model.MetricSeries{
				{ID: "a", Metrics: []model.Metric{{Value: 1}, {Value: 2}, {Value: 3}}},
			}},
			expLen:   3,
			expEmpty: false,
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expLen, test.dataset.FirstSeriesLen())
			assert.Equal(t, test.expEmpty, test.dataset.Empty())
		})
	}
}
