package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/waypoint"
)

// Outcome labels used for metrics and transport mapping.
const (
	OutcomeOK                 = "ok"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeUnknownRoom        = "unknown_room"
	OutcomeUnknownNode        = "unknown_node"
	OutcomeMissingWeatherData = "missing_weather_data"
	OutcomeNoPathFound        = "no_path_found"
	OutcomeCanceled           = "canceled"
	OutcomeInternal           = "internal"
)

// LegError reports the leg and waypoint at which routing failed.
type LegError struct {
	Leg      int // zero-based leg index
	Waypoint int // zero-based index of the waypoint at fault
	Err      error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("router: leg %d (waypoint %d): %v", e.Leg, e.Waypoint, e.Err)
}

func (e *LegError) Unwrap() error { return e.Err }

// WaypointIndex returns the failing waypoint index carried by err, if any.
func WaypointIndex(err error) (int, bool) {
	var le *LegError
	if errors.As(err, &le) {
		return le.Waypoint, true
	}
	return 0, false
}

// Outcome classifies err into one of the Outcome* labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, pathfind.ErrInvalidInput),
		errors.Is(err, waypoint.ErrInvalidWaypoint),
		errors.Is(err, waypoint.ErrNoSpatialIndex):
		return OutcomeInvalidInput
	case errors.Is(err, waypoint.ErrUnknownRoom):
		return OutcomeUnknownRoom
	case errors.Is(err, waypoint.ErrUnknownNode):
		return OutcomeUnknownNode
	case errors.Is(err, pathfind.ErrMissingWeatherData):
		return OutcomeMissingWeatherData
	case errors.Is(err, pathfind.ErrNoPathFound):
		return OutcomeNoPathFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeInternal
	}
}
