package model

// Dataset is the payload a chart renderer draws: the series of one panel
// already labeled and ordered.
type Dataset struct {
	Series []MetricSeries
}

// FirstSeriesLen returns the number of points of the first series. A dataset
// without series has zero points.
func (d Dataset) FirstSeriesLen() int {
	if len(d.Series) == 0 {
		return 0
	}
	return len(d.Series[0].Metrics)
}

// Empty returns true when the first series has no points.
func (d Dataset) Empty() bool {
	return d.FirstSeriesLen() == 0
}
