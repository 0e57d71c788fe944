package waypoint

import (
	"fmt"

	"github.com/katalvlaran/wayfinder/graph"
)

// DefaultNearestK is the number of candidate nodes a position resolves to.
const DefaultNearestK = 3

// Resolver maps waypoints to candidate node sets. All fields are read-only
// and shared across requests.
type Resolver struct {
	Graph     *graph.Graph
	Buildings graph.Buildings
	Index     *graph.SpatialIndex // optional; required for position waypoints
	NearestK  int                 // defaults to DefaultNearestK
}

// Resolve returns the candidate node IDs for w, deduplicated and in index
// order. Room entries naming nodes absent from the graph are dropped.
func (r *Resolver) Resolve(w Waypoint) ([]string, error) {
	switch w.Kind {
	case KindRoom:
		ids, ok := r.Buildings.Lookup(w.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, w.ID)
		}
		// Dangling entrances are skipped; a room with none left is unknown.
		ids = r.present(dedupe(ids))
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: %q has no entrance in the graph", ErrUnknownRoom, w.ID)
		}
		return ids, nil

	case KindNode:
		if r.Graph == nil || !r.Graph.HasNode(w.ID) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, w.ID)
		}
		return []string{w.ID}, nil

	case KindPosition:
		if r.Index == nil {
			return nil, ErrNoSpatialIndex
		}
		k := r.NearestK
		if k <= 0 {
			k = DefaultNearestK
		}
		ids := r.Index.Nearest(w.Position, k)
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: no node near %s", ErrUnknownNode, w)
		}
		return ids, nil

	default:
		return nil, fmt.Errorf("%w: kind %s", ErrInvalidWaypoint, w.Kind)
	}
}

// present filters ids in place down to nodes of the graph.
func (r *Resolver) present(ids []string) []string {
	if r.Graph == nil {
		return nil
	}
	out := ids[:0]
	for _, id := range ids {
		if r.Graph.HasNode(id) {
			out = append(out, id)
		}
	}

	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
