package render

import (
	"context"

	"github.com/whaeuser/plotterm/internal/model"
)

// View is what a panel wants to show at a given moment. A placeholder view
// has no chart, drawer or error line.
type View struct {
	Placeholder bool
	Dataset     model.Dataset
	Options     model.ChartOptions
	Layout      model.Layout
	// Drawer is the optional content below the chart.
	Drawer    string
	HasDrawer bool
	// ErrorLine is always shown below the chart and drawer, even when empty.
	ErrorLine string
}

// PanelRenderer knows how to draw the views of a single panel.
type PanelRenderer interface {
	Draw(v View) error
}

// Renderer is the one that will load the panels on the screen and return the
// panel renderers the panels will draw with.
type Renderer interface {
	LoadPage(ctx context.Context, panels []model.Panel) ([]PanelRenderer, error)
}
