package pathfind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/weather"
)

// Sentinel errors returned by FindPath. Callers match them with errors.Is.
var (
	// ErrInvalidInput indicates malformed search input.
	ErrInvalidInput = errors.New("pathfind: invalid input")

	// ErrMissingWeatherData indicates a Weather preference without a snapshot.
	ErrMissingWeatherData = errors.New("pathfind: weather preference requires weather data")

	// ErrNoPathFound indicates that no end node is reachable from any start node.
	ErrNoPathFound = errors.New("pathfind: no path found")

	// ErrInternal indicates an inconsistency inside the search itself.
	ErrInternal = errors.New("pathfind: internal error")
)

// Preference selects the cost-function variant.
type Preference int

const (
	// Balanced uses raw edge distances.
	Balanced Preference = iota

	// Weather scales outdoor edges by the weather multiplier.
	Weather
)

var preferenceNames = map[Preference]string{
	Balanced: "balanced",
	Weather:  "weather",
}

// String returns the lower-case name of p.
func (p Preference) String() string {
	if s, ok := preferenceNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Preference(%d)", int(p))
}

// ParsePreference maps a case-insensitive name to a Preference. The empty
// string selects Balanced.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return Balanced, nil
	case "weather":
		return Weather, nil
	default:
		return Balanced, fmt.Errorf("%w: unknown preference %q", ErrInvalidInput, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Preference) MarshalText() ([]byte, error) {
	if _, ok := preferenceNames[p]; !ok {
		return nil, fmt.Errorf("%w: unknown preference %d", ErrInvalidInput, int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(b []byte) error {
	v, err := ParsePreference(string(b))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// PathingOptions selects the cost function for one request. Weather must be
// set when Preference is Weather.
type PathingOptions struct {
	Preference Preference
	Weather    *weather.Info
}

// OutdoorFunc classifies the edge from → to as outdoor.
type OutdoorFunc func(e graph.Edge, from, to *graph.Node) bool

// NeverOutdoor classifies every edge as indoor.
func NeverOutdoor(graph.Edge, *graph.Node, *graph.Node) bool { return false }

// OutdoorBuildings returns an OutdoorFunc that treats an edge as outdoor
// when either endpoint lies on a floor whose building code is one of codes.
func OutdoorBuildings(codes ...string) OutdoorFunc {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}

	return func(_ graph.Edge, from, to *graph.Node) bool {
		if _, ok := set[from.Floor.BuildingCode]; ok {
			return true
		}
		_, ok := set[to.Floor.BuildingCode]
		return ok
	}
}

// Options tunes the search beyond the per-request PathingOptions.
//
// Outdoor – classifier consulted under the Weather preference (default NeverOutdoor).
// MaxCost – frontier entries above this cost are pruned (default +Inf).
type Options struct {
	Outdoor OutdoorFunc
	MaxCost float64
}

// Option represents a functional option for FindPath.
type Option func(*Options)

// WithOutdoor sets the outdoor-edge classifier. Panics on nil.
func WithOutdoor(fn OutdoorFunc) Option {
	if fn == nil {
		panic("pathfind: WithOutdoor(nil)")
	}
	return func(o *Options) {
		o.Outdoor = fn
	}
}

// WithMaxCost caps the accumulated cost explored. Panics on negative values.
func WithMaxCost(max float64) Option {
	if max < 0 {
		panic("pathfind: WithMaxCost must be non-negative")
	}
	return func(o *Options) {
		o.MaxCost = max
	}
}

// Route is an ordered node sequence with its accumulated cost.
//
// Cost is the sum of effective edge costs (after weather scaling).
// Distance is the sum of raw edge distances along Path.
type Route struct {
	Path     []string `json:"path"`
	Cost     float64  `json:"cost"`
	Distance float64  `json:"distance"`
}
