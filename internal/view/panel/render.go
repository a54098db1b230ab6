package panel

import (
	"github.com/whaeuser/plotterm/internal/model"
	"github.com/whaeuser/plotterm/internal/view/render"
)

// Props are the panel properties set by the one that creates the panel.
type Props struct {
	// Options override the default chart options group by group.
	Options model.ChartOptions
	Layout  model.Layout
	// Drawer is shown below the chart when HasDrawer is set.
	Drawer    string
	HasDrawer bool
}

// Render returns the view of the panel for a state.
func Render(s State, p Props) render.View {
	layout := p.Layout
	layout.Defaults()

	if s.Loading || s.Data == nil {
		return render.View{
			Placeholder: true,
			Layout:      layout,
		}
	}

	return render.View{
		Dataset:   *s.Data,
		Options:   model.DefaultChartOptions().Merge(p.Options),
		Layout:    layout,
		Drawer:    p.Drawer,
		HasDrawer: p.HasDrawer,
		ErrorLine: s.ErrorMessage,
	}
}
