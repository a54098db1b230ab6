package metric

import (
	"context"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
)

// Gatherer knows how to gather metrics from different backends.
type Gatherer interface {
	// GatherRange gathers multiple metrics based on a start and an end using a step duration
	// to know how many metrics needs to gather.
	// The returned metrics on the series should be ordered.
	GatherRange(ctx context.Context, query model.Query, start, end time.Time, step time.Duration) ([]model.MetricSeries, error)
}

// IdentifiableGatherer extends Gatherer with an ID for caching and tracking.
type IdentifiableGatherer interface {
	Gatherer
	// ID returns a unique identifier for this gatherer (typically the datasource ID).
	ID() string
}

type identifiable struct {
	Gatherer
	id string
}

func (i identifiable) ID() string { return i.id }

// WithID wraps a gatherer so it can be identified by id.
func WithID(id string, g Gatherer) IdentifiableGatherer {
	return identifiable{Gatherer: g, id: id}
}
