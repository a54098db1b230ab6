package render

import (
	"strconv"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
)

// roundUnit returns the duration of a time round unit, 0 means no rounding.
func roundUnit(unit string) time.Duration {
	switch unit {
	case model.RoundMillisecond:
		return time.Millisecond
	case model.RoundSecond:
		return time.Second
	case model.RoundMinute:
		return time.Minute
	case model.RoundHour:
		return time.Hour
	case model.RoundDay:
		return 24 * time.Hour
	}
	return 0
}

// timeLayout returns the label layout for a rounding unit and the size of the
// range the labels cover.
func timeLayout(unit string, span time.Duration) string {
	layout := "15:04:05"
	switch unit {
	case model.RoundMillisecond:
		layout = "15:04:05.000"
	case model.RoundMinute, model.RoundHour:
		layout = "15:04"
	case model.RoundDay:
		return "01/02"
	}

	if span >= 24*time.Hour {
		layout = "01/02 " + layout
	}
	return layout
}

// XLabels returns the labels of the horizontal axis for the points of the
// dataset indexed by their position. The points of the first series are the
// reference. With a time axis and the time scale available the labels are
// the rounded timestamps, otherwise the point index.
func XLabels(ds model.Dataset, x model.AxisOptions, timeScale bool) map[int]string {
	if len(ds.Series) == 0 {
		return map[int]string{}
	}

	points := ds.Series[0].Metrics
	labels := make(map[int]string, len(points))
	if x.Type != model.AxisTypeTime || !timeScale || len(points) == 0 {
		for i := range points {
			labels[i] = strconv.Itoa(i)
		}
		return labels
	}

	span := points[len(points)-1].TS.Sub(points[0].TS)
	layout := timeLayout(x.Round, span)
	unit := roundUnit(x.Round)
	for i, p := range points {
		ts := p.TS.Local()
		if unit > 0 {
			ts = ts.Round(unit)
		}
		labels[i] = ts.Format(layout)
	}

	return labels
}

// Values returns the values of a series.
func Values(s model.MetricSeries) []float64 {
	vs := make([]float64, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		vs = append(vs, m.Value)
	}
	return vs
}

// LastValue returns the latest value of a series, false if it has no points.
func LastValue(s model.MetricSeries) (float64, bool) {
	if len(s.Metrics) == 0 {
		return 0, false
	}
	return s.Metrics[len(s.Metrics)-1].Value, true
}
