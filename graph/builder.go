package graph

import (
	"fmt"
	"slices"
)

// Builder accumulates nodes, edges and rooms and produces an immutable Graph.
//
// Methods are chainable. The first error is latched and returned by Build;
// subsequent calls after an error are no-ops.
type Builder struct {
	nodes map[string]*Node
	rooms map[string][]string
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[string]*Node),
		rooms: make(map[string][]string),
	}
}

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error { return b.err }

// AddNode registers a node. The ID must be non-empty and unique.
func (b *Builder) AddNode(id, roomID string, floor Floor, coord Coordinate) *Builder {
	if b.err != nil {
		return b
	}
	if id == "" {
		b.err = ErrEmptyNodeID
		return b
	}
	if _, dup := b.nodes[id]; dup {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		return b
	}
	b.nodes[id] = &Node{
		ID:         id,
		RoomID:     roomID,
		Floor:      floor,
		Coordinate: coord,
		neighbors:  make(map[string]Edge),
	}

	return b
}

// AddEdge inserts the directed edge from → to, replacing any previous one.
// The source node must already exist; the target may not (it becomes a
// dangling edge, reported by Graph.Dangling).
func (b *Builder) AddEdge(from, to string, e Edge) *Builder {
	if b.err != nil {
		return b
	}
	if from == "" || to == "" {
		b.err = ErrEmptyNodeID
		return b
	}
	n, ok := b.nodes[from]
	if !ok {
		b.err = fmt.Errorf("%w: edge source %q", ErrNodeNotFound, from)
		return b
	}
	if !validDistance(e.Distance) {
		b.err = fmt.Errorf("%w: edge %s→%s dist=%v", ErrNegativeDistance, from, to, e.Distance)
		return b
	}
	if e.ToFloor != nil {
		tf := *e.ToFloor
		e.ToFloor = &tf
	}
	n.neighbors[to] = e

	return b
}

// Connect inserts a same-floor edge of the given distance in both directions.
func (b *Builder) Connect(u, v string, dist float64) *Builder {
	return b.AddEdge(u, v, Edge{Distance: dist}).AddEdge(v, u, Edge{Distance: dist})
}

// AddRoom appends access nodes to room. Rooms never registered through
// AddRoom are derived from the RoomID of their nodes at Build time.
// Entries naming unknown nodes are kept and reported by
// Graph.DanglingEntrances.
func (b *Builder) AddRoom(room string, nodeIDs ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, id := range nodeIDs {
		if id == "" {
			b.err = ErrEmptyNodeID
			return b
		}
	}
	b.rooms[room] = append(b.rooms[room], nodeIDs...)

	return b
}

// Build freezes the accumulated state into a Graph and its Buildings index.
// The builder may keep being used; later changes do not affect the result.
//
// Complexity: O(V log V + E log E) for the neighbor sort.
func (b *Builder) Build() (*Graph, Buildings, error) {
	if b.err != nil {
		return nil, Buildings{}, b.err
	}

	g := &Graph{
		nodes: make(map[string]*Node, len(b.nodes)),
		ids:   make([]string, 0, len(b.nodes)),
	}

	// 1) Copy nodes and sort each adjacency once.
	for id, src := range b.nodes {
		n := &Node{
			ID:         src.ID,
			RoomID:     src.RoomID,
			Floor:      src.Floor,
			Coordinate: src.Coordinate,
			neighbors:  make(map[string]Edge, len(src.neighbors)),
			order:      make([]string, 0, len(src.neighbors)),
		}
		for to, e := range src.neighbors {
			n.neighbors[to] = e
			n.order = append(n.order, to)
		}
		slices.Sort(n.order)
		g.nodes[id] = n
		g.ids = append(g.ids, id)
		g.edges += len(n.order)
	}
	slices.Sort(g.ids)

	// 2) Record dangling edges in deterministic order.
	for _, id := range g.ids {
		for _, to := range g.nodes[id].order {
			if _, ok := g.nodes[to]; !ok {
				g.dangling = append(g.dangling, DanglingEdge{From: id, To: to})
			}
		}
	}

	// 3) Explicit rooms win; remaining rooms are derived from node RoomIDs.
	rooms := make(map[string][]string, len(b.rooms))
	for room, ids := range b.rooms {
		rooms[room] = slices.Clone(ids)
	}
	for _, id := range g.ids {
		room := g.nodes[id].RoomID
		if room == "" {
			continue
		}
		if _, explicit := b.rooms[room]; explicit {
			continue
		}
		rooms[room] = append(rooms[room], id)
	}

	// 4) Record room entries that point outside the graph.
	roomIDs := make([]string, 0, len(rooms))
	for room := range rooms {
		roomIDs = append(roomIDs, room)
	}
	slices.Sort(roomIDs)
	for _, room := range roomIDs {
		var missing []string
		for _, id := range rooms[room] {
			if _, ok := g.nodes[id]; !ok {
				missing = append(missing, id)
			}
		}
		slices.Sort(missing)
		for _, id := range slices.Compact(missing) {
			g.danglingEntrances = append(g.danglingEntrances, DanglingEntrance{Room: room, Node: id})
		}
	}

	return g, Buildings{rooms: rooms}, nil
}
