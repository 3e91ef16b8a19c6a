package skeleton

import (
	"encoding/json"
	"testing"
)

var containerJSON = []byte(`{
	"meta": {"source": "floorplan.png", "resolution": 0.044},
	"data": {
		"vertices": [
			{"position": [10, 5], "edges": [0, 1, 2, 3]}
		],
		"edges": [
			{"id": 0, "twin": 1, "source": [10, 5], "target": [0, 5], "roomid": 1,
			 "pathface": [[0, 0], [10, 0], [10, 5], [0, 5]],
			 "line": [[10, 5], [5, 5], [0, 5]]},
			{"id": 1, "twin": 0, "source": [0, 5], "target": [10, 5], "roomid": 1},
			{"id": 2, "twin": -1, "source": [10, 5], "target": [20, 5], "roomid": 2, "ray": true}
		]
	}
}`)

func TestContainerUnmarshal(t *testing.T) {
	var container SkeletonContainer
	if err := json.Unmarshal(containerJSON, &container); err != nil {
		t.Fatal(err)
	}

	if container.Meta.Resolution != 0.044 {
		t.Fatalf("meta resolution: %f", container.Meta.Resolution)
	}

	sk := container.Skeleton()

	if len(sk.Vertices) != 1 || sk.Vertices[0].Degree() != 4 {
		t.Fatal("vertex degree must come from the edge list")
	}
	if x, y := sk.Vertices[0].Position.Get(); x != 10 || y != 5 {
		t.Fatalf("vertex position: %f, %f", x, y)
	}

	edge := sk.Edge(0)
	if edge == nil || len(edge.PathFace) != 4 {
		t.Fatal("edge 0 must carry its path face")
	}
	if len(edge.Polyline) != 3 {
		t.Fatal("edge 0 must carry its centerline polyline")
	}
	if x, y := edge.Polyline[1].Get(); x != 5 || y != 5 {
		t.Fatalf("polyline midpoint: %f, %f", x, y)
	}
	if twin := sk.Twin(edge); twin == nil || twin.ID != 1 {
		t.Fatal("twin resolution failed")
	}
	if twin := sk.Twin(sk.Edge(2)); twin != nil {
		t.Fatal("a -1 twin must resolve to nil")
	}
	if !sk.Edge(2).Ray {
		t.Fatal("ray flag lost")
	}
	if sk.Edge(99) != nil {
		t.Fatal("out-of-range ids must resolve to nil")
	}
}
