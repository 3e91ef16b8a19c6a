package areagraph

import (
	"testing"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

// Three cells: two labeled 5 joined by an internal passage, the
// second also joined to a cell labeled 7.
func contractionFixture() (*AreaGraph, *Passage, *Passage) {
	r1 := makeRoom(5)
	r1.SubPolygons = [][]vector.Vector2{{v(0, 0), v(1, 0), v(1, 1)}}
	r2 := makeRoom(5)
	r2.SubPolygons = [][]vector.Vector2{{v(0, 0), v(1, 1), v(0, 1)}}
	r3 := makeRoom(7)
	r3.SubPolygons = [][]vector.Vector2{{v(1, 0), v(2, 0), v(2, 1), v(1, 1)}}

	r1.Neighbours[r2] = struct{}{}
	r2.Neighbours[r1] = struct{}{}
	r2.Neighbours[r3] = struct{}{}
	r3.Neighbours[r2] = struct{}{}

	internal := &Passage{Position: v(0.5, 0.5), ConnectedAreas: []*Room{r1, r2}}
	r1.Passages = []*Passage{internal}
	r2.Passages = []*Passage{internal}

	boundary := &Passage{Position: v(1, 0.5), ConnectedAreas: []*Room{r2, r3}}
	r2.Passages = append(r2.Passages, boundary)
	r3.Passages = []*Passage{boundary}

	graph := &AreaGraph{
		Rooms:    []*Room{r1, r2, r3},
		Passages: []*Passage{internal, boundary},
	}
	return graph, internal, boundary
}

func checkContraction(t *testing.T, graph *AreaGraph, boundary *Passage) {
	t.Helper()

	if len(graph.Rooms) != 2 {
		t.Fatalf("expected 2 rooms after contraction, got %d", len(graph.Rooms))
	}
	if len(graph.Passages) != 1 {
		t.Fatalf("expected 1 passage after contraction, got %d", len(graph.Passages))
	}
	if graph.Passages[0] != boundary {
		t.Fatal("the boundary passage must survive the contraction")
	}

	var merged, other *Room
	for _, room := range graph.Rooms {
		switch room.ID {
		case 5:
			merged = room
		case 7:
			other = room
		}
	}
	if merged == nil || other == nil {
		t.Fatal("contracted rooms must keep their labels")
	}

	if len(merged.SubPolygons) != 2 {
		t.Fatalf("merged room must aggregate 2 sub-polygons, got %d", len(merged.SubPolygons))
	}

	if len(boundary.ConnectedAreas) != 2 {
		t.Fatalf("boundary passage must connect 2 areas, got %d", len(boundary.ConnectedAreas))
	}
	if boundary.OtherRoom(merged) != other {
		t.Fatal("boundary passage must join the two contracted rooms")
	}
	if !merged.HasPassage(boundary) || !other.HasPassage(boundary) {
		t.Fatal("both rooms must hold the boundary passage")
	}
}

func TestMergeRoomsDirect(t *testing.T) {
	graph, _, boundary := contractionFixture()

	graph.MergeRooms(MergeDirect)

	checkContraction(t, graph, boundary)
}

func TestMergeRoomsSoftThenPrune(t *testing.T) {
	graph, _, boundary := contractionFixture()

	graph.MergeRooms(MergeSoft)
	graph.Prune()

	checkContraction(t, graph, boundary)

	for _, room := range graph.Rooms {
		for neighbour := range room.Neighbours {
			if neighbour.ID == RoomRemoved {
				t.Fatal("pruned graph still references a removed room")
			}
		}
	}
}

func TestMergeSoftMarksSources(t *testing.T) {
	graph, _, _ := contractionFixture()
	sources := append([]*Room(nil), graph.Rooms...)

	graph.MergeRooms(MergeSoft)

	for _, src := range sources {
		if src.ID != RoomRemoved {
			t.Fatalf("source room still labeled %d after soft merge", src.ID)
		}
		if src.Parent == nil {
			t.Fatal("source room has no parent after soft merge")
		}
	}
}

func TestArrangeRoomIDs(t *testing.T) {
	graph := &AreaGraph{Rooms: []*Room{makeRoom(42), makeRoom(7), makeRoom(13)}}

	graph.ArrangeRoomIDs()

	for i, room := range graph.Rooms {
		if room.ID != i {
			t.Fatalf("room at index %d has id %d", i, room.ID)
		}
	}
}
