package skeleton

import (
	"encoding/json"
	"os"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

// Vertex is a junction of the topological skeleton; Edges holds the
// ids of the half-edges meeting there (twins counted separately, so
// the connectivity degree is len(Edges)).
type Vertex struct {
	Position vector.Vector2 `json:"position"`
	Edges    []int          `json:"edges"`
}

func (v Vertex) Degree() int {
	return len(v.Edges)
}

// HalfEdge is one directed side of a skeleton edge. Twin is the id of
// the opposite half-edge, or -1. PathFace is the face polygon swept on
// this side, absent for unbounded edges. Polyline is the sampled
// centerline from source to target, absent when the edge is straight.
// RoomID carries the label assigned upstream (-1 when unlabeled).
type HalfEdge struct {
	ID       int              `json:"id"`
	Twin     int              `json:"twin"`
	Source   vector.Vector2   `json:"source"`
	Target   vector.Vector2   `json:"target"`
	RoomID   int              `json:"roomid"`
	Ray      bool             `json:"ray,omitempty"`
	PathFace []vector.Vector2 `json:"pathface,omitempty"`
	Polyline []vector.Vector2 `json:"line,omitempty"`
}

type Skeleton struct {
	Vertices []Vertex
	Edges    []HalfEdge
}

// Edge resolves a half-edge id; nil when the id is out of range.
func (s Skeleton) Edge(id int) *HalfEdge {
	if id < 0 || id >= len(s.Edges) {
		return nil
	}
	return &s.Edges[id]
}

func (s Skeleton) Twin(e *HalfEdge) *HalfEdge {
	if e == nil {
		return nil
	}
	return s.Edge(e.Twin)
}

type SkeletonContainer struct {
	Meta struct {
		Source     string  `json:"source"`
		Date       string  `json:"date"`
		Resolution float64 `json:"resolution"`
	} `json:"meta"`

	Data struct {
		Vertices []Vertex   `json:"vertices"`
		Edges    []HalfEdge `json:"edges"`
	} `json:"data"`
}

func (c *SkeletonContainer) Skeleton() Skeleton {
	return Skeleton{
		Vertices: c.Data.Vertices,
		Edges:    c.Data.Edges,
	}
}

func LoadFile(filename string) (*SkeletonContainer, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var container SkeletonContainer
	if err := json.Unmarshal(bytes, &container); err != nil {
		return nil, err
	}

	return &container, nil
}
