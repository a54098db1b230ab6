package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/render"
)

func TestRender(t *testing.T) {
	ds := points(1, 2, 3)
	legend := &model.LegendOptions{Display: false}

	tests := map[string]struct {
		state State
		props Props
		exp   render.View
	}{
		"A loading state should render the placeholder.": {
			state: initialState(),
			exp:   render.View{Placeholder: true, Layout: model.Layout{ChartPercent: model.DefaultChartPercent}},
		},
		"A state without data should render the placeholder.": {
			state: State{Loading: false},
			exp:   render.View{Placeholder: true, Layout: model.Layout{ChartPercent: model.DefaultChartPercent}},
		},
		"A state with data should render the chart with the default options.": {
			state: State{Data: &ds},
			exp: render.View{
				Dataset: ds,
				Options: model.DefaultChartOptions(),
				Layout:  model.Layout{ChartPercent: model.DefaultChartPercent},
			},
		},
		"Caller options, layout and drawer should be used.": {
			state: State{Data: &ds, ErrorMessage: "wanted error"},
			props: Props{
				Options:   model.ChartOptions{Legend: legend},
				Layout:    model.Layout{ChartPercent: 50, NoBorder: true},
				Drawer:    "drawer",
				HasDrawer: true,
			},
			exp: render.View{
				Dataset: ds,
				Options: model.ChartOptions{
					Scales: model.DefaultChartOptions().Scales,
					Legend: legend,
				},
				Layout:    model.Layout{ChartPercent: 50, NoBorder: true},
				Drawer:    "drawer",
				HasDrawer: true,
				ErrorLine: "wanted error",
			},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			got := Render(test.state, test.props)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestRenderIsPure(t *testing.T) {
	ds := points(1)
	s := State{Data: &ds}
	p := Props{Drawer: "d", HasDrawer: true}

	assert.Equal(t, Render(s, p), Render(s, p))
}
