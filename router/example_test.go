package router_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/router"
	"github.com/katalvlaran/wayfinder/waypoint"
)

// ExampleRouter_Route visits a lab and a lounge on the way to an office.
func ExampleRouter_Route() {
	f := graph.Floor{BuildingCode: "GHC", Level: "4"}
	g, b, err := graph.NewBuilder().
		AddNode("n1", "lab", f, graph.Coordinate{}).
		AddNode("n2", "lounge", f, graph.Coordinate{}).
		AddNode("n3", "office", f, graph.Coordinate{}).
		Connect("n1", "n2", 15).
		Connect("n2", "n3", 25).
		Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	r := router.New(g, b)
	ctx := context.Background()
	po := pathfind.PathingOptions{Preference: pathfind.Balanced}

	route, _ := r.Route(ctx, []waypoint.Waypoint{waypoint.Room("lab"), waypoint.Room("lounge"), waypoint.Room("office")}, po)
	fmt.Println(route.Path, route.Cost)

	_, err = r.Route(ctx, []waypoint.Waypoint{waypoint.Room("lab"), waypoint.Room("attic")}, po)
	var le *router.LegError
	if errors.As(err, &le) {
		fmt.Println(le.Waypoint, router.Outcome(err))
	}
	// Output:
	// [n1 n2 n3] 40
	// 1 unknown_room
}
