package graph_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfinder/graph"
)

var lvl1 = graph.Floor{BuildingCode: "GHC", Level: "1"}

func TestBuilder_ConnectInsertsBothDirections(t *testing.T) {
	g, _, err := graph.NewBuilder().
		AddNode("A", "", lvl1, graph.Coordinate{}).
		AddNode("B", "", lvl1, graph.Coordinate{}).
		Connect("A", "B", 7).
		Build()
	require.NoError(t, err)

	a, ok := g.Node("A")
	require.True(t, ok)
	e, ok := a.Edge("B")
	require.True(t, ok)
	assert.Equal(t, 7.0, e.Distance)

	b, _ := g.Node("B")
	e, ok = b.Edge("A")
	require.True(t, ok)
	assert.Equal(t, 7.0, e.Distance)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuilder_AddEdgeIsDirected(t *testing.T) {
	g, _, err := graph.NewBuilder().
		AddNode("A", "", lvl1, graph.Coordinate{}).
		AddNode("B", "", lvl1, graph.Coordinate{}).
		AddEdge("A", "B", graph.Edge{Distance: 1}).
		Build()
	require.NoError(t, err)

	b, _ := g.Node("B")
	_, ok := b.Edge("A")
	assert.False(t, ok, "reverse edge must not be implied")
}

func TestBuilder_Errors(t *testing.T) {
	cases := []struct {
		name string
		b    *graph.Builder
		want error
	}{
		{"empty id", graph.NewBuilder().AddNode("", "", lvl1, graph.Coordinate{}), graph.ErrEmptyNodeID},
		{"duplicate", graph.NewBuilder().
			AddNode("A", "", lvl1, graph.Coordinate{}).
			AddNode("A", "", lvl1, graph.Coordinate{}), graph.ErrDuplicateNode},
		{"unknown source", graph.NewBuilder().AddEdge("X", "Y", graph.Edge{}), graph.ErrNodeNotFound},
		{"negative", graph.NewBuilder().
			AddNode("A", "", lvl1, graph.Coordinate{}).
			AddEdge("A", "B", graph.Edge{Distance: -1}), graph.ErrNegativeDistance},
		{"nan", graph.NewBuilder().
			AddNode("A", "", lvl1, graph.Coordinate{}).
			AddEdge("A", "B", graph.Edge{Distance: math.NaN()}), graph.ErrNegativeDistance},
		{"empty room member", graph.NewBuilder().AddRoom("r", ""), graph.ErrEmptyNodeID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.b.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestBuilder_FirstErrorIsLatched(t *testing.T) {
	b := graph.NewBuilder().
		AddEdge("X", "Y", graph.Edge{}).
		AddNode("", "", lvl1, graph.Coordinate{})
	require.ErrorIs(t, b.Err(), graph.ErrNodeNotFound)
}

func TestGraph_NeighborsSortedAndDangling(t *testing.T) {
	g, _, err := graph.NewBuilder().
		AddNode("hub", "", lvl1, graph.Coordinate{}).
		AddNode("b", "", lvl1, graph.Coordinate{}).
		AddNode("a", "", lvl1, graph.Coordinate{}).
		AddEdge("hub", "b", graph.Edge{Distance: 1}).
		AddEdge("hub", "ghost", graph.Edge{Distance: 1}).
		AddEdge("hub", "a", graph.Edge{Distance: 1}).
		Build()
	require.NoError(t, err)

	hub, _ := g.Node("hub")
	var order []string
	for id := range hub.Neighbors() {
		order = append(order, id)
	}
	assert.Equal(t, []string{"a", "b", "ghost"}, order)
	assert.Equal(t, 3, hub.Degree())
	assert.Equal(t, []graph.DanglingEdge{{From: "hub", To: "ghost"}}, g.Dangling())
	assert.Equal(t, []string{"a", "b", "hub"}, g.NodeIDs())
}

func TestBuild_IsIsolatedFromLaterBuilderChanges(t *testing.T) {
	b := graph.NewBuilder().
		AddNode("A", "", lvl1, graph.Coordinate{}).
		AddNode("B", "", lvl1, graph.Coordinate{})
	g, _, err := b.Build()
	require.NoError(t, err)

	b.Connect("A", "B", 1)
	a, _ := g.Node("A")
	assert.Equal(t, 0, a.Degree())
}

func TestBuild_RoomsExplicitAndDerived(t *testing.T) {
	_, rooms, err := graph.NewBuilder().
		AddNode("A", "lobby", lvl1, graph.Coordinate{}).
		AddNode("B", "lobby", lvl1, graph.Coordinate{}).
		AddNode("C", "office", lvl1, graph.Coordinate{}).
		AddNode("D", "office", lvl1, graph.Coordinate{}).
		AddRoom("office", "D").
		Build()
	require.NoError(t, err)

	lobby, ok := rooms.Lookup("lobby")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, lobby)

	office, ok := rooms.Lookup("office")
	require.True(t, ok)
	assert.Equal(t, []string{"D"}, office, "explicit room entries win over derived ones")
	assert.Equal(t, 2, rooms.Len())

	_, ok = rooms.Lookup("nowhere")
	assert.False(t, ok)
}

func TestBuild_DanglingEntrances(t *testing.T) {
	g, rooms, err := graph.NewBuilder().
		AddNode("A", "", lvl1, graph.Coordinate{}).
		AddNode("C", "", lvl1, graph.Coordinate{}).
		Connect("A", "C", 10).
		AddRoom("r1", "A", "GONE").
		AddRoom("r0", "LOST", "LOST").
		AddRoom("r2", "C").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []graph.DanglingEntrance{
		{Room: "r0", Node: "LOST"},
		{Room: "r1", Node: "GONE"},
	}, g.DanglingEntrances())

	ids, ok := rooms.Lookup("r1")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "GONE"}, ids, "the index keeps entries as written")
}

func TestBuildings_LookupReturnsCopy(t *testing.T) {
	rooms := graph.NewBuildings(map[string][]string{"r": {"A", "B"}})
	ids, _ := rooms.Lookup("r")
	ids[0] = "Z"
	again, _ := rooms.Lookup("r")
	assert.Equal(t, []string{"A", "B"}, again)
}

func TestGraph_ReachableAndComponents(t *testing.T) {
	g, _, err := graph.NewBuilder().
		AddNode("A", "", lvl1, graph.Coordinate{}).
		AddNode("B", "", lvl1, graph.Coordinate{}).
		AddNode("C", "", lvl1, graph.Coordinate{}).
		AddNode("X", "", lvl1, graph.Coordinate{}).
		AddNode("Y", "", lvl1, graph.Coordinate{}).
		AddEdge("A", "B", graph.Edge{Distance: 1}).
		AddEdge("C", "B", graph.Edge{Distance: 1}).
		Connect("X", "Y", 1).
		Build()
	require.NoError(t, err)

	reach := g.Reachable("A")
	assert.True(t, reach["A"])
	assert.True(t, reach["B"])
	assert.False(t, reach["C"], "C→B does not make C reachable from A")

	assert.Equal(t, [][]string{{"A", "B", "C"}, {"X", "Y"}}, g.Components())
}

func TestFloorAndEdgeHelpers(t *testing.T) {
	assert.Equal(t, "GHC-1", lvl1.String())
	assert.False(t, graph.Edge{Distance: 1}.CrossesFloor())
	assert.True(t, graph.Edge{ToFloor: &graph.FloorTransition{ToFloor: "GHC-2", Type: "elevator"}}.CrossesFloor())
}
