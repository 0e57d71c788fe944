package graph

import (
	"cmp"
	"slices"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance is the half-size of the degenerate rectangle stored per node.
const pointTolerance = 1e-9

// nodeEntry wraps a node for R-tree storage.
type nodeEntry struct {
	node *Node
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *nodeEntry) Bounds() rtreego.Rect { return e.bbox }

// SpatialIndex answers nearest-node queries over a Graph. It is read-only
// after construction and safe for concurrent use.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex indexes every node of g by coordinate.
func NewSpatialIndex(g *Graph) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	for n := range g.Nodes() {
		tree.Insert(&nodeEntry{
			node: n,
			bbox: toRTreePoint(n.Coordinate).ToRect(pointTolerance),
		})
	}

	return &SpatialIndex{tree: tree, size: g.Len()}
}

// Len returns the number of indexed nodes.
func (si *SpatialIndex) Len() int { return si.size }

// Nearest returns up to k node IDs closest to c, ordered by haversine
// distance and then by ID.
func (si *SpatialIndex) Nearest(c Coordinate, k int) []string {
	if si == nil || k <= 0 || si.size == 0 {
		return nil
	}
	k = min(k, si.size)

	type hit struct {
		id   string
		dist float64
	}
	found := si.tree.NearestNeighbors(k, toRTreePoint(c))
	hits := make([]hit, 0, len(found))
	for _, s := range found {
		e, ok := s.(*nodeEntry)
		if !ok || e == nil {
			continue
		}
		hits = append(hits, hit{id: e.node.ID, dist: c.DistanceTo(e.node.Coordinate)})
	}

	// The R-tree ranks in planar degrees; re-rank on the sphere.
	slices.SortFunc(hits, func(a, b hit) int {
		if d := cmp.Compare(a.dist, b.dist); d != 0 {
			return d
		}
		return cmp.Compare(a.id, b.id)
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}

	return out
}

func toRTreePoint(c Coordinate) rtreego.Point {
	return rtreego.Point{c.Longitude, c.Latitude}
}
