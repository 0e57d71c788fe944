package waypoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/wayfinder/graph"
)

// Sentinel errors returned by Resolve and Parse.
var (
	// ErrUnknownRoom indicates a room ID absent from the Buildings index.
	ErrUnknownRoom = errors.New("waypoint: unknown room")

	// ErrUnknownNode indicates a node ID absent from the graph.
	ErrUnknownNode = errors.New("waypoint: unknown node")

	// ErrNoSpatialIndex indicates a position waypoint with no index to resolve it.
	ErrNoSpatialIndex = errors.New("waypoint: position waypoints need a spatial index")

	// ErrInvalidWaypoint indicates a malformed waypoint.
	ErrInvalidWaypoint = errors.New("waypoint: invalid waypoint")
)

// Kind tags the variant held by a Waypoint.
type Kind int

const (
	KindRoom Kind = iota + 1
	KindNode
	KindPosition
)

// String returns the wire name of k.
func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindNode:
		return "node"
	case KindPosition:
		return "position"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Waypoint is a caller-specified stop: a room, a node, or a raw position.
type Waypoint struct {
	Kind     Kind
	ID       string           // room or node ID
	Position graph.Coordinate // for KindPosition
}

// Room returns a waypoint for a room ID.
func Room(id string) Waypoint { return Waypoint{Kind: KindRoom, ID: id} }

// Node returns a waypoint for a node ID.
func Node(id string) Waypoint { return Waypoint{Kind: KindNode, ID: id} }

// Position returns a waypoint for a raw coordinate.
func Position(c graph.Coordinate) Waypoint { return Waypoint{Kind: KindPosition, Position: c} }

// String renders w for logs, e.g. "room:GHC-4401".
func (w Waypoint) String() string {
	if w.Kind == KindPosition {
		return fmt.Sprintf("position:%.6f,%.6f", w.Position.Latitude, w.Position.Longitude)
	}

	return w.Kind.String() + ":" + w.ID
}

// Parse builds a room or node waypoint from its wire form {type, value}.
func Parse(kind, value string) (Waypoint, error) {
	if value == "" {
		return Waypoint{}, fmt.Errorf("%w: empty value", ErrInvalidWaypoint)
	}
	switch strings.ToLower(kind) {
	case "room":
		return Room(value), nil
	case "node":
		return Node(value), nil
	default:
		return Waypoint{}, fmt.Errorf("%w: unknown type %q", ErrInvalidWaypoint, kind)
	}
}
