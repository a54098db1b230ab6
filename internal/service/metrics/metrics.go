package metrics

import (
	"time"
)

// Recorder knows how to record the metrics of the application.
type Recorder interface {
	// ObservePanelFetch records a panel data fetch.
	ObservePanelFetch(panelID string, success bool, duration time.Duration)
	// SetPanelEmpty sets if the latest data of a panel was empty.
	SetPanelEmpty(panelID string, empty bool)
	// ObserveDatasourceQuery records a query made to a datasource.
	ObserveDatasourceQuery(datasourceID string, success bool, duration time.Duration)
	// IncDatasourceQueryCacheHit records a query served by the cache.
	IncDatasourceQueryCacheHit(datasourceID string)
}

// Dummy is a dummy recorder.
var Dummy Recorder = dummy(0)

type dummy int

func (dummy) ObservePanelFetch(_ string, _ bool, _ time.Duration)      {}
func (dummy) SetPanelEmpty(_ string, _ bool)                           {}
func (dummy) ObserveDatasourceQuery(_ string, _ bool, _ time.Duration) {}
func (dummy) IncDatasourceQueryCacheHit(_ string)                      {}
