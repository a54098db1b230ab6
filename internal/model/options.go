package model

// Axis types.
const (
	AxisTypeTime     = "time"
	AxisTypeLinear   = "linear"
	AxisTypeCategory = "category"
)

// Time rounding units for time axes.
const (
	RoundMillisecond = "millisecond"
	RoundSecond      = "second"
	RoundMinute      = "minute"
	RoundHour        = "hour"
	RoundDay         = "day"
)

// ChartOptions are the options a line chart is drawn with. Every top level
// group is optional so options can be merged group by group.
type ChartOptions struct {
	Scales *ScalesOptions `yaml:"scales,omitempty"`
	Legend *LegendOptions `yaml:"legend,omitempty"`
	Title  *TitleOptions  `yaml:"title,omitempty"`
	Colors *ColorOptions  `yaml:"colors,omitempty"`
	Zoom   *ZoomOptions   `yaml:"zoom,omitempty"`
}

// ScalesOptions configure the chart axes.
type ScalesOptions struct {
	X AxisOptions `yaml:"x,omitempty"`
	Y AxisOptions `yaml:"y,omitempty"`
}

// AxisOptions configure a single axis.
type AxisOptions struct {
	Type string `yaml:"type,omitempty"`
	// Round is the unit time ticks are rounded to, only for time axes.
	Round string   `yaml:"round,omitempty"`
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
}

// LegendOptions configure the series legend.
type LegendOptions struct {
	Display  bool   `yaml:"display"`
	Position string `yaml:"position,omitempty"`
}

// TitleOptions configure the chart title.
type TitleOptions struct {
	Display bool   `yaml:"display"`
	Text    string `yaml:"text,omitempty"`
}

// ColorOptions configure the series colors.
type ColorOptions struct {
	// Series are hex colors (`#rrggbb`) used in order for each series.
	Series []string `yaml:"series,omitempty"`
}

// ZoomOptions configure the mouse zoom of the chart.
type ZoomOptions struct {
	Enabled     bool `yaml:"enabled"`
	StepPercent int  `yaml:"step_percent,omitempty"`
}

// DefaultChartOptions returns the base options every panel chart starts from:
// a time based horizontal axis with ticks rounded to the second.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Scales: &ScalesOptions{
			X: AxisOptions{
				Type:  AxisTypeTime,
				Round: RoundSecond,
			},
		},
	}
}

// Merge returns a copy of the options with the groups set on override
// replacing the receiver ones. The merge is shallow: a set group replaces the
// whole group, unset groups keep the receiver values.
func (c ChartOptions) Merge(override ChartOptions) ChartOptions {
	res := c
	if override.Scales != nil {
		res.Scales = override.Scales
	}
	if override.Legend != nil {
		res.Legend = override.Legend
	}
	if override.Title != nil {
		res.Title = override.Title
	}
	if override.Colors != nil {
		res.Colors = override.Colors
	}
	if override.Zoom != nil {
		res.Zoom = override.Zoom
	}
	return res
}

// Layout are the box attributes applied to the region that contains a panel.
type Layout struct {
	// ChartPercent is the percentage of the panel height used by the chart,
	// the rest is for the drawer and the error line.
	ChartPercent int `yaml:"chart_percent,omitempty"`
	// NoBorder removes the panel border.
	NoBorder bool `yaml:"no_border,omitempty"`
	// BorderColor is a hex color (`#rrggbb`).
	BorderColor string `yaml:"border_color,omitempty"`
}

// DefaultChartPercent is the chart height percentage when unset.
const DefaultChartPercent = 80

// Defaults sets the defaults of the layout.
func (l *Layout) Defaults() {
	if l.ChartPercent <= 0 || l.ChartPercent >= 100 {
		l.ChartPercent = DefaultChartPercent
	}
}
