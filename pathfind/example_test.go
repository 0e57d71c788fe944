package pathfind_test

import (
	"fmt"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/weather"
)

// ExampleFindPath routes across a courtyard, first by distance and then
// with a snowy observation that makes the outdoor crossing expensive.
func ExampleFindPath() {
	in := graph.Floor{BuildingCode: "GHC", Level: "1"}
	out := graph.Floor{BuildingCode: "outside", Level: "ground"}
	g, _, err := graph.NewBuilder().
		AddNode("A", "", in, graph.Coordinate{}).
		AddNode("yard", "", out, graph.Coordinate{}).
		AddNode("tunnel", "", in, graph.Coordinate{}).
		AddNode("B", "", in, graph.Coordinate{}).
		Connect("A", "yard", 40).Connect("yard", "B", 40).
		Connect("A", "tunnel", 90).Connect("tunnel", "B", 90).
		Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	classify := pathfind.WithOutdoor(pathfind.OutdoorBuildings("outside"))

	r, _ := pathfind.FindPath(g, []string{"A"}, []string{"B"}, pathfind.PathingOptions{Preference: pathfind.Balanced}, classify)
	fmt.Println(r.Path, r.Cost)

	snow := &weather.Info{Temperature: 268, FeelsLike: 262, Condition: "Snow"}
	r, _ = pathfind.FindPath(g, []string{"A"}, []string{"B"}, pathfind.PathingOptions{Preference: pathfind.Weather, Weather: snow}, classify)
	fmt.Println(r.Path, r.Cost)
	// Output:
	// [A yard B] 80
	// [A tunnel B] 180
}
