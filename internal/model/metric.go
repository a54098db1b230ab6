package model

import (
	"time"
)

// Metric represents a measured value in time.
type Metric struct {
	Value float64
	TS    time.Time
}

// MetricSeries is a group of metrics identified by an ID and a context
// information.
type MetricSeries struct {
	ID      string
	Labels  map[string]string
	Metrics []Metric
}

// TimeRange represents a time range for queries.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the size of the range.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Query is the query that will be made to a datasource.
type Query struct {
	Expr string `yaml:"expr"`
	// Legend is a template rendered with the series labels.
	Legend string `yaml:"legend,omitempty"`
	// DatasourceID overrides the panel datasource for this query.
	DatasourceID string `yaml:"datasource,omitempty"`
}
