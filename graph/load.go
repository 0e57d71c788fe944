package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a campus graph.
type document struct {
	Nodes     map[string]nodeDoc  `json:"nodes" yaml:"nodes"`
	Buildings map[string][]string `json:"buildings,omitempty" yaml:"buildings,omitempty"`
}

type nodeDoc struct {
	ID         string             `json:"id,omitempty" yaml:"id,omitempty"`
	RoomID     string             `json:"roomId" yaml:"roomId"`
	Floor      Floor              `json:"floor" yaml:"floor"`
	Coordinate Coordinate         `json:"coordinate" yaml:"coordinate"`
	Neighbors  map[string]edgeDoc `json:"neighbors" yaml:"neighbors"`
}

type edgeDoc struct {
	Dist        *float64         `json:"dist,omitempty" yaml:"dist,omitempty"`
	ToFloorInfo *FloorTransition `json:"toFloorInfo,omitempty" yaml:"toFloorInfo,omitempty"`
}

// LoadJSON decodes a JSON graph document.
func LoadJSON(r io.Reader) (*Graph, Buildings, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, Buildings{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return doc.build()
}

// LoadYAML decodes a YAML graph document with the same shape as LoadJSON.
func LoadYAML(r io.Reader) (*Graph, Buildings, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Buildings{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return doc.build()
}

// LoadFile opens path and decodes it as JSON (.json) or YAML (.yaml, .yml).
func LoadFile(path string) (*Graph, Buildings, error) {
	var load func(io.Reader) (*Graph, Buildings, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, Buildings{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Buildings{}, fmt.Errorf("graph: open %s: %w", path, err)
	}
	defer f.Close()

	return load(f)
}

// build feeds the document through a Builder. Map keys are visited in
// sorted order so the first reported error is stable.
func (d document) build() (*Graph, Buildings, error) {
	if len(d.Nodes) == 0 {
		return nil, Buildings{}, fmt.Errorf("%w: no nodes", ErrInvalidDocument)
	}

	ids := make([]string, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	b := NewBuilder()
	for _, id := range ids {
		n := d.Nodes[id]
		if n.ID != "" && n.ID != id {
			return nil, Buildings{}, fmt.Errorf("%w: node key %q carries id %q", ErrInvalidDocument, id, n.ID)
		}
		b.AddNode(id, n.RoomID, n.Floor, n.Coordinate)
	}

	for _, id := range ids {
		from := d.Nodes[id]
		targets := make([]string, 0, len(from.Neighbors))
		for to := range from.Neighbors {
			targets = append(targets, to)
		}
		slices.Sort(targets)

		for _, to := range targets {
			ed := from.Neighbors[to]
			e := Edge{ToFloor: ed.ToFloorInfo}
			switch {
			case ed.Dist != nil:
				e.Distance = *ed.Dist
			default:
				// Missing distance: derive it from the endpoint coordinates.
				target, ok := d.Nodes[to]
				if !ok {
					return nil, Buildings{}, fmt.Errorf("%w: edge %s→%s has no dist and no target coordinate", ErrNodeNotFound, id, to)
				}
				e.Distance = from.Coordinate.DistanceTo(target.Coordinate)
			}
			b.AddEdge(id, to, e)
		}
	}

	rooms := make([]string, 0, len(d.Buildings))
	for room := range d.Buildings {
		rooms = append(rooms, room)
	}
	slices.Sort(rooms)
	for _, room := range rooms {
		b.AddRoom(room, d.Buildings[room]...)
	}

	return b.Build()
}
