package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
)

func float64Ptr(f float64) *float64 { return &f }

func TestChartOptionsMerge(t *testing.T) {
	tests := map[string]struct {
		base     model.ChartOptions
		override model.ChartOptions
		exp      model.ChartOptions
	}{
		"Empty override should keep the defaults.": {
			base:     model.DefaultChartOptions(),
			override: model.ChartOptions{},
			exp:      model.DefaultChartOptions(),
		},
		"Non colliding groups should be preserved from both sides.": {
			base: model.DefaultChartOptions(),
			override: model.ChartOptions{
				Legend: &model.LegendOptions{Display: false},
			},
			exp: model.ChartOptions{
				Scales: &model.ScalesOptions{X: model.AxisOptions{Type: "time", Round: "second"}},
				Legend: &model.LegendOptions{Display: false},
			},
		},
		"Colliding groups should be replaced completely by the override.": {
			base: model.DefaultChartOptions(),
			override: model.ChartOptions{
				Scales: &model.ScalesOptions{Y: model.AxisOptions{Min: float64Ptr(0)}},
			},
			exp: model.ChartOptions{
				Scales: &model.ScalesOptions{Y: model.AxisOptions{Min: float64Ptr(0)}},
			},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			got := test.base.Merge(test.override)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestChartOptionsMergeDoesNotMutateBase(t *testing.T) {
	base := model.DefaultChartOptions()
	_ = base.Merge(model.ChartOptions{Scales: &model.ScalesOptions{}})

	assert.Equal(t, model.AxisTypeTime, base.Scales.X.Type)
}

func TestLayoutDefaults(t *testing.T) {
	tests := map[string]struct {
		layout model.Layout
		exp    int
	}{
		"Unset should use the default.":    {layout: model.Layout{}, exp: model.DefaultChartPercent},
		"Out of range should use default.": {layout: model.Layout{ChartPercent: 120}, exp: model.DefaultChartPercent},
		"Valid value should be kept.":      {layout: model.Layout{ChartPercent: 60}, exp: 60},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			test.layout.Defaults()
			assert.Equal(t, test.exp, test.layout.ChartPercent)
		})
	}
}
