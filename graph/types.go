package graph

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Sentinel errors for graph construction and loading.
var (
	// ErrEmptyNodeID indicates that a node or neighbor ID is the empty string.
	ErrEmptyNodeID = errors.New("graph: node ID is empty")

	// ErrDuplicateNode indicates that the same node ID was added twice.
	ErrDuplicateNode = errors.New("graph: duplicate node ID")

	// ErrNodeNotFound indicates that an edge or room referenced an unknown node.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrNegativeDistance indicates an edge distance that is negative, NaN or infinite.
	ErrNegativeDistance = errors.New("graph: edge distance must be finite and non-negative")

	// ErrInvalidDocument indicates a malformed graph document.
	ErrInvalidDocument = errors.New("graph: invalid graph document")

	// ErrUnsupportedFormat indicates that LoadFile could not infer a decoder.
	ErrUnsupportedFormat = errors.New("graph: unsupported graph file format")
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Point converts the coordinate to an orb.Point (X = longitude, Y = latitude).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// DistanceTo returns the haversine distance in metres between c and o.
func (c Coordinate) DistanceTo(o Coordinate) float64 {
	return geo.DistanceHaversine(c.Point(), o.Point())
}

// Floor identifies the horizontal plane a node lies on. Both parts are
// opaque; no ordering between levels is assumed.
type Floor struct {
	BuildingCode string `json:"buildingCode" yaml:"buildingCode"`
	Level        string `json:"level" yaml:"level"`
}

// String renders the floor as "CODE-LEVEL".
func (f Floor) String() string {
	return fmt.Sprintf("%s-%s", f.BuildingCode, f.Level)
}

// FloorTransition marks an edge that leaves the current floor.
type FloorTransition struct {
	ToFloor string `json:"toFloor" yaml:"toFloor"`
	Type    string `json:"type" yaml:"type"` // e.g. "stairs", "elevator"
}

// Edge is a directed traversal link. The floor transition carries no extra
// cost by itself; cost functions may weight it.
type Edge struct {
	Distance float64
	ToFloor  *FloorTransition
}

// CrossesFloor reports whether traversing e changes floors.
func (e Edge) CrossesFloor() bool { return e.ToFloor != nil }

func validDistance(d float64) bool {
	return d >= 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Node is an addressable point in the graph: a corridor junction or a room
// entrance. Nodes are immutable once their Graph is built.
type Node struct {
	ID         string
	RoomID     string
	Floor      Floor
	Coordinate Coordinate

	neighbors map[string]Edge // neighbor ID → Edge
	order     []string        // neighbor IDs, sorted ascending
}

// Neighbors yields outgoing (neighbor ID, Edge) pairs in ascending ID order.
func (n *Node) Neighbors() iter.Seq2[string, Edge] {
	return func(yield func(string, Edge) bool) {
		for _, id := range n.order {
			if !yield(id, n.neighbors[id]) {
				return
			}
		}
	}
}

// Edge returns the edge n → to, if present.
func (n *Node) Edge(to string) (Edge, bool) {
	e, ok := n.neighbors[to]
	return e, ok
}

// Degree returns the number of outgoing edges.
func (n *Node) Degree() int { return len(n.order) }

// DanglingEdge describes an edge whose target is not a node of the graph.
type DanglingEdge struct {
	From string
	To   string
}

// DanglingEntrance describes a room access entry naming a node absent from
// the graph.
type DanglingEntrance struct {
	Room string
	Node string
}

// Graph is an immutable mapping from node ID to Node. It may be
// disconnected, and symmetry between u→v and v→u is not enforced.
type Graph struct {
	nodes    map[string]*Node
	ids      []string // sorted node IDs
	edges    int
	dangling []DanglingEdge

	danglingEntrances []DanglingEntrance
}

// Buildings maps a room ID to the ordered list of node IDs giving access to it.
type Buildings struct {
	rooms map[string][]string
}

// NewBuildings copies rooms into an immutable Buildings index.
func NewBuildings(rooms map[string][]string) Buildings {
	b := Buildings{rooms: make(map[string][]string, len(rooms))}
	for room, ids := range rooms {
		b.rooms[room] = append([]string(nil), ids...)
	}

	return b
}

// Lookup returns a copy of the access nodes of room.
func (b Buildings) Lookup(room string) ([]string, bool) {
	ids, ok := b.rooms[room]
	if !ok {
		return nil, false
	}

	return append([]string(nil), ids...), true
}

// Len returns the number of indexed rooms.
func (b Buildings) Len() int { return len(b.rooms) }
