package pathfind

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/wayfinder/graph"
)

// FindPath returns the cheapest route from any node in start to any node in
// end under the cost function selected by po.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrInvalidInput).
//  2. start and end must be non-empty (ErrInvalidInput).
//  3. every start and end ID must exist in g (ErrInvalidInput).
//  4. po must select a known preference, with weather data for Weather
//     (ErrInvalidInput / ErrMissingWeatherData).
//
// If a start node is also an end node the result is that single node at
// cost 0. ErrNoPathFound is returned when the frontier drains first.
func FindPath(g *graph.Graph, start, end []string, po PathingOptions, opts ...Option) (Route, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if g == nil {
		return Route{}, fmt.Errorf("%w: graph is nil", ErrInvalidInput)
	}
	if len(start) == 0 {
		return Route{}, fmt.Errorf("%w: empty start set", ErrInvalidInput)
	}
	if len(end) == 0 {
		return Route{}, fmt.Errorf("%w: empty end set", ErrInvalidInput)
	}
	targets := make(map[string]bool, len(end))
	for _, id := range end {
		if !g.HasNode(id) {
			return Route{}, fmt.Errorf("%w: unknown end node %q", ErrInvalidInput, id)
		}
		targets[id] = true
	}
	for _, id := range start {
		if !g.HasNode(id) {
			return Route{}, fmt.Errorf("%w: unknown start node %q", ErrInvalidInput, id)
		}
	}

	// 3) Resolve the cost function.
	cost, err := NewCostFunc(po, cfg.Outdoor)
	if err != nil {
		return Route{}, err
	}

	// 4) Run the search.
	r := &runner{
		g:       g,
		cost:    cost,
		maxCost: cfg.MaxCost,
		targets: targets,
		dist:    make(map[string]float64),
		prev:    make(map[string]string),
		done:    make(map[string]bool),
	}
	r.seed(start)
	reached, ok := r.process()
	if !ok {
		return Route{}, ErrNoPathFound
	}

	return r.route(reached)
}

// DefaultOptions returns the options FindPath starts from.
//
// Defaults:
//   - Outdoor: NeverOutdoor.
//   - MaxCost: +Inf (no cap).
func DefaultOptions() Options {
	return Options{
		Outdoor: NeverOutdoor,
		MaxCost: math.Inf(1),
	}
}

// runner holds the mutable state of one search. Nothing in it is shared
// between calls.
type runner struct {
	g       *graph.Graph
	cost    CostFunc
	maxCost float64
	targets map[string]bool

	dist map[string]float64 // best known cost from the nearest start
	prev map[string]string  // predecessor on that best path; absent for starts
	done map[string]bool    // settled nodes
	pq   frontier
}

// seed pushes every distinct start node at cost 0.
func (r *runner) seed(start []string) {
	heap.Init(&r.pq)
	for _, id := range start {
		if _, seen := r.dist[id]; seen {
			continue
		}
		r.dist[id] = 0
		heap.Push(&r.pq, &entry{id: id, cost: 0})
	}
}

// process pops nodes in (cost, id) order until an end node is settled.
// It returns that node, or false when the frontier is exhausted.
func (r *runner) process() (string, bool) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*entry)
		u := item.id

		// Skip stale entries left behind by lazy decrease-key.
		if r.done[u] {
			continue
		}
		r.done[u] = true

		// First settled end node is optimal: all weights are non-negative.
		if r.targets[u] {
			return u, true
		}

		r.relax(u)
	}

	return "", false
}

// relax improves neighbors of the settled node u. Neighbors are visited in
// ascending ID order and only a strictly better cost replaces a predecessor,
// so the first discoverer of a tied cost keeps it.
func (r *runner) relax(u string) {
	from, _ := r.g.Node(u)
	du := r.dist[u]
	for v, e := range from.Neighbors() {
		to, ok := r.g.Node(v)
		if !ok || r.done[v] {
			// Dangling edge, or already final.
			continue
		}

		// 1) Effective cost through u, pruned above MaxCost.
		nd := du + r.cost(e, from, to)
		if nd > r.maxCost {
			continue
		}
		// 2) Ties keep the earlier predecessor.
		if old, seen := r.dist[v]; seen && nd >= old {
			continue
		}

		// 3) Record and enqueue; the older entry goes stale.
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &entry{id: v, cost: nd})
	}
}

// route walks predecessors back from the reached end node.
func (r *runner) route(end string) (Route, error) {
	path := []string{end}
	for cur := end; ; {
		p, ok := r.prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
		if len(path) > len(r.dist) {
			return Route{}, fmt.Errorf("%w: predecessor cycle at %q", ErrInternal, cur)
		}
	}

	// Reverse into start → end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if r.dist[path[0]] != 0 {
		return Route{}, fmt.Errorf("%w: path does not begin at a start node", ErrInternal)
	}

	var distance float64
	for i := 0; i+1 < len(path); i++ {
		n, _ := r.g.Node(path[i])
		e, ok := n.Edge(path[i+1])
		if !ok {
			return Route{}, fmt.Errorf("%w: missing edge %s→%s", ErrInternal, path[i], path[i+1])
		}
		distance += e.Distance
	}

	return Route{Path: path, Cost: r.dist[end], Distance: distance}, nil
}

// entry is a frontier element.
type entry struct {
	id   string
	cost float64
}

// frontier is a min-heap of *entry ordered by (cost, id).
type frontier []*entry

// Len returns the number of queued entries.
func (pq frontier) Len() int { return len(pq) }

// Less orders by cost, then by node ID so equal-cost pops are deterministic.
func (pq frontier) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].id < pq[j].id
}

// Swap exchanges two entries.
func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends an *entry; heap.Push restores the invariant.
func (pq *frontier) Push(x any) { *pq = append(*pq, x.(*entry)) }

// Pop removes the last entry; heap.Pop has already moved the minimum there.
func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
