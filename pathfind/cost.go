package pathfind

import (
	"fmt"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/weather"
)

// CostFunc returns the effective cost of traversing e from → to.
type CostFunc func(e graph.Edge, from, to *graph.Node) float64

// NewCostFunc builds the effective edge-cost function for po. outdoor may be
// nil, in which case no edge is outdoor.
func NewCostFunc(po PathingOptions, outdoor OutdoorFunc) (CostFunc, error) {
	if outdoor == nil {
		outdoor = NeverOutdoor
	}

	switch po.Preference {
	case Balanced:
		return func(e graph.Edge, _, _ *graph.Node) float64 { return e.Distance }, nil

	case Weather:
		if po.Weather == nil {
			return nil, ErrMissingWeatherData
		}
		m := weather.Multiplier(*po.Weather)
		return func(e graph.Edge, from, to *graph.Node) float64 {
			if outdoor(e, from, to) {
				return e.Distance * m
			}
			return e.Distance
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown preference %d", ErrInvalidInput, int(po.Preference))
	}
}
