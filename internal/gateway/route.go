package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/internal/logging"
	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/router"
	"github.com/katalvlaran/wayfinder/waypoint"
	"github.com/katalvlaran/wayfinder/weather"
)

type waypointDoc struct {
	Type      string   `json:"type"`
	Value     string   `json:"value,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type routeRequest struct {
	Waypoints  []waypointDoc       `json:"waypoints"`
	Preference pathfind.Preference `json:"preference"`
}

type nodeDoc struct {
	ID         string           `json:"id"`
	RoomID     string           `json:"roomId,omitempty"`
	Floor      string           `json:"floor"`
	Coordinate graph.Coordinate `json:"coordinate"`
}

type routeResponse struct {
	Path           []string            `json:"path"`
	Cost           float64             `json:"cost"`
	Distance       float64             `json:"distance"`
	Preference     pathfind.Preference `json:"preference"`
	WeatherApplied bool                `json:"weatherApplied"`
	Nodes          []nodeDoc           `json:"nodes"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Waypoint *int   `json:"waypoint,omitempty"`
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx, s.log)

	var req routeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode body: %v", pathfind.ErrInvalidInput, err))
		return
	}

	wps := make([]waypoint.Waypoint, len(req.Waypoints))
	for i, doc := range req.Waypoints {
		wp, err := doc.waypoint()
		if err != nil {
			writeError(w, &router.LegError{Leg: max(i-1, 0), Waypoint: i, Err: err})
			return
		}
		wps[i] = wp
	}
	if len(wps) < 2 {
		writeError(w, fmt.Errorf("%w: need at least 2 waypoints, got %d", pathfind.ErrInvalidInput, len(wps)))
		return
	}

	po := pathfind.PathingOptions{Preference: req.Preference}
	if po.Preference == pathfind.Weather {
		info, err := s.fetchWeather(r)
		if err != nil {
			log.Warn(ctx, "weather unavailable, falling back to balanced", logging.Err(err))
			if s.fallbacks != nil {
				s.fallbacks.WeatherFallback()
			}
			po.Preference = pathfind.Balanced
		} else {
			po.Weather = info
		}
	}

	rt, err := s.router.Route(ctx, wps, po)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routeResponse{
		Path:           rt.Path,
		Cost:           rt.Cost,
		Distance:       rt.Distance,
		Preference:     po.Preference,
		WeatherApplied: po.Weather != nil,
		Nodes:          s.describe(rt.Path),
	})
}

var errNoWeatherSource = errors.New("gateway: no weather source configured")

func (s *Server) fetchWeather(r *http.Request) (*weather.Info, error) {
	if s.weather == nil {
		return nil, errNoWeatherSource
	}
	return s.weather.Fetch(r.Context())
}

func (s *Server) describe(path []string) []nodeDoc {
	g := s.router.Graph()
	out := make([]nodeDoc, 0, len(path))
	for _, id := range path {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		out = append(out, nodeDoc{
			ID:         n.ID,
			RoomID:     n.RoomID,
			Floor:      n.Floor.String(),
			Coordinate: n.Coordinate,
		})
	}
	return out
}

func (d waypointDoc) waypoint() (waypoint.Waypoint, error) {
	if !strings.EqualFold(d.Type, waypoint.KindPosition.String()) {
		return waypoint.Parse(d.Type, d.Value)
	}
	if d.Latitude == nil || d.Longitude == nil {
		return waypoint.Waypoint{}, fmt.Errorf("%w: position needs latitude and longitude", waypoint.ErrInvalidWaypoint)
	}
	lat, lon := *d.Latitude, *d.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return waypoint.Waypoint{}, fmt.Errorf("%w: position out of range", waypoint.ErrInvalidWaypoint)
	}
	return waypoint.Position(graph.Coordinate{Latitude: lat, Longitude: lon}), nil
}

// StatusFor maps a routing error to its HTTP status.
func StatusFor(err error) int {
	switch router.Outcome(err) {
	case router.OutcomeOK:
		return http.StatusOK
	case router.OutcomeInvalidInput, router.OutcomeMissingWeatherData:
		return http.StatusBadRequest
	case router.OutcomeUnknownRoom, router.OutcomeUnknownNode, router.OutcomeNoPathFound:
		return http.StatusNotFound
	case router.OutcomeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	body := errorResponse{Error: err.Error(), Kind: router.Outcome(err)}
	var le *router.LegError
	if errors.As(err, &le) {
		i := le.Waypoint
		body.Waypoint = &i
	}
	if body.Kind == router.OutcomeInternal {
		body.Error = "internal error"
	}
	writeJSON(w, StatusFor(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
