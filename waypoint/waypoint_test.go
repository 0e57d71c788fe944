package waypoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/waypoint"
)

func campus(t *testing.T) (*graph.Graph, graph.Buildings) {
	t.Helper()
	ghc1 := graph.Floor{BuildingCode: "GHC", Level: "1"}
	g, b, err := graph.NewBuilder().
		AddNode("A", "room1", ghc1, graph.Coordinate{Latitude: 40.4433, Longitude: -79.9446}).
		AddNode("A2", "room1", ghc1, graph.Coordinate{Latitude: 40.4433, Longitude: -79.94465}).
		AddNode("B", "outside1", graph.Floor{BuildingCode: "outside", Level: "ground"}, graph.Coordinate{Latitude: 40.4434, Longitude: -79.9446}).
		AddNode("C", "room2", ghc1, graph.Coordinate{Latitude: 40.4435, Longitude: -79.9446}).
		Connect("A", "B", 11).
		Connect("A2", "B", 12).
		Connect("B", "C", 11).
		AddRoom("room1", "A", "A2", "A").
		AddRoom("empty").
		Build()
	require.NoError(t, err)

	return g, b
}

func TestParse(t *testing.T) {
	w, err := waypoint.Parse("room", "GHC-4401")
	require.NoError(t, err)
	assert.Equal(t, waypoint.Room("GHC-4401"), w)
	assert.Equal(t, "room:GHC-4401", w.String())

	w, err = waypoint.Parse("NODE", "n1")
	require.NoError(t, err)
	assert.Equal(t, waypoint.KindNode, w.Kind)

	_, err = waypoint.Parse("elevator", "x")
	require.ErrorIs(t, err, waypoint.ErrInvalidWaypoint)

	_, err = waypoint.Parse("room", "")
	require.ErrorIs(t, err, waypoint.ErrInvalidWaypoint)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "room", waypoint.KindRoom.String())
	assert.Equal(t, "node", waypoint.KindNode.String())
	assert.Equal(t, "position", waypoint.KindPosition.String())
	assert.Equal(t, "Kind(0)", waypoint.Kind(0).String())
}

func TestResolve_Room(t *testing.T) {
	g, b := campus(t)
	r := &waypoint.Resolver{Graph: g, Buildings: b}

	ids, err := r.Resolve(waypoint.Room("room1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A2"}, ids, "duplicates dropped, order kept")

	ids, err = r.Resolve(waypoint.Room("room2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, ids)

	_, err = r.Resolve(waypoint.Room("nowhere"))
	require.ErrorIs(t, err, waypoint.ErrUnknownRoom)

	_, err = r.Resolve(waypoint.Room("empty"))
	require.ErrorIs(t, err, waypoint.ErrUnknownRoom)
}

func TestResolve_Node(t *testing.T) {
	g, b := campus(t)
	r := &waypoint.Resolver{Graph: g, Buildings: b}

	ids, err := r.Resolve(waypoint.Node("B"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ids)

	_, err = r.Resolve(waypoint.Node("Z"))
	require.ErrorIs(t, err, waypoint.ErrUnknownNode)

	_, err = (&waypoint.Resolver{}).Resolve(waypoint.Node("B"))
	require.ErrorIs(t, err, waypoint.ErrUnknownNode)
}

func TestResolve_Position(t *testing.T) {
	g, b := campus(t)
	at := graph.Coordinate{Latitude: 40.4433, Longitude: -79.9446}

	_, err := (&waypoint.Resolver{Graph: g, Buildings: b}).Resolve(waypoint.Position(at))
	require.ErrorIs(t, err, waypoint.ErrNoSpatialIndex)

	r := &waypoint.Resolver{Graph: g, Buildings: b, Index: graph.NewSpatialIndex(g), NearestK: 2}
	ids, err := r.Resolve(waypoint.Position(at))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A2"}, ids)

	r.NearestK = 0
	ids, err = r.Resolve(waypoint.Position(at))
	require.NoError(t, err)
	assert.Len(t, ids, waypoint.DefaultNearestK)
	assert.Equal(t, "A", ids[0])
}

func TestResolve_InvalidKind(t *testing.T) {
	g, b := campus(t)
	_, err := (&waypoint.Resolver{Graph: g, Buildings: b}).Resolve(waypoint.Waypoint{ID: "A"})
	require.ErrorIs(t, err, waypoint.ErrInvalidWaypoint)
}

func TestResolve_DoesNotAliasBuildings(t *testing.T) {
	g, b := campus(t)
	r := &waypoint.Resolver{Graph: g, Buildings: b}

	first, err := r.Resolve(waypoint.Room("room1"))
	require.NoError(t, err)
	first[0] = "mutated"

	again, err := r.Resolve(waypoint.Room("room1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A2"}, again)
}

func TestResolve_SkipsDanglingEntrances(t *testing.T) {
	f := graph.Floor{BuildingCode: "GHC", Level: "1"}
	g, b, err := graph.NewBuilder().
		AddNode("A", "", f, graph.Coordinate{}).
		AddNode("C", "", f, graph.Coordinate{}).
		Connect("A", "C", 10).
		AddRoom("r1", "GONE", "A", "GONE").
		AddRoom("ghost", "LOST").
		Build()
	require.NoError(t, err)
	r := &waypoint.Resolver{Graph: g, Buildings: b}

	ids, err := r.Resolve(waypoint.Room("r1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids)

	_, err = r.Resolve(waypoint.Room("ghost"))
	require.ErrorIs(t, err, waypoint.ErrUnknownRoom)

	_, err = (&waypoint.Resolver{Buildings: b}).Resolve(waypoint.Room("r1"))
	require.ErrorIs(t, err, waypoint.ErrUnknownRoom)
}
