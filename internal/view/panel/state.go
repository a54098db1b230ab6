package panel

import (
	"fmt"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
)

// localTimeLayout is the wall clock layout of the no data message.
const localTimeLayout = "3:04:05 PM"

// Status is the state machine status of a mounted panel.
type Status int

// Panel statuses.
const (
	StatusInitializing Status = iota
	StatusReadyNoError
	StatusReadyWithError
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusReadyNoError:
		return "ready"
	case StatusReadyWithError:
		return "ready-with-error"
	}
	return "unknown"
}

// State is the state of a mounted panel. Loading is only true until the
// first fetch completes.
type State struct {
	Loading      bool
	Data         *model.Dataset
	ErrorMessage string
}

func initialState() State {
	return State{Loading: true}
}

// Status returns the state machine status of the state.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusInitializing
	case s.ErrorMessage != "":
		return StatusReadyWithError
	default:
		return StatusReadyNoError
	}
}

// withDataset returns the state after a fetch completed with ds at now.
func (s State) withDataset(ds model.Dataset, now time.Time) State {
	s.Data = &ds
	s.Loading = false
	if ds.Empty() {
		s.ErrorMessage = NoDataMessage(now)
	} else {
		s.ErrorMessage = ""
	}
	return s
}

// NoDataMessage is the error message of a fetch without data at t.
func NoDataMessage(t time.Time) string {
	return fmt.Sprintf("No data returned by database as of %s; plot will auto-refresh", t.Local().Format(localTimeLayout))
}
