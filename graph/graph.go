package graph

import (
	"iter"
	"slices"
)

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of directed edges, dangling ones included.
func (g *Graph) EdgeCount() int { return g.edges }

// NodeIDs returns a sorted copy of all node IDs.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.ids) }

// Nodes yields every node in ascending ID order.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, id := range g.ids {
			if !yield(g.nodes[id]) {
				return
			}
		}
	}
}

// Dangling returns the edges whose target node does not exist, sorted by
// (From, To). Search skips them.
func (g *Graph) Dangling() []DanglingEdge { return slices.Clone(g.dangling) }

// DanglingEntrances returns the room access entries that name unknown nodes,
// sorted by (Room, Node). Room resolution skips them.
func (g *Graph) DanglingEntrances() []DanglingEntrance { return slices.Clone(g.danglingEntrances) }

// Reachable returns the set of nodes reachable from any of the given sources
// by following directed edges. Unknown sources are ignored.
//
// Complexity: O(V + E).
func (g *Graph) Reachable(sources ...string) map[string]bool {
	seen := make(map[string]bool, len(g.ids))
	queue := make([]string, 0, len(sources))
	for _, s := range sources {
		if g.HasNode(s) && !seen[s] {
			seen[s] = true
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.nodes[u].Neighbors() {
			if seen[v] || !g.HasNode(v) {
				continue
			}
			seen[v] = true
			queue = append(queue, v)
		}
	}

	return seen
}

// Components partitions the nodes into weakly connected components, i.e.
// edge direction is ignored. Each component is sorted, and components are
// ordered by their smallest node ID.
//
// Complexity: O(V + E).
func (g *Graph) Components() [][]string {
	// 1) Build an undirected view of the adjacency once.
	undirected := make(map[string][]string, len(g.ids))
	for _, u := range g.ids {
		for v := range g.nodes[u].Neighbors() {
			if !g.HasNode(v) {
				continue
			}
			undirected[u] = append(undirected[u], v)
			undirected[v] = append(undirected[v], u)
		}
	}

	// 2) Flood-fill from every unvisited node in ascending ID order.
	visited := make(map[string]bool, len(g.ids))
	var out [][]string
	for _, root := range g.ids {
		if visited[root] {
			continue
		}
		visited[root] = true
		comp := []string{root}
		queue := []string{root}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range undirected[u] {
				if visited[v] {
					continue
				}
				visited[v] = true
				comp = append(comp, v)
				queue = append(queue, v)
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}

	return out
}
