package areagraph

import (
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const (
	// RoomUnassigned marks a room cell without a label.
	RoomUnassigned = -1
	// RoomRemoved marks a room soft-deleted by a contraction pass.
	RoomRemoved = -2
)

// Room is an area of the graph. Before contraction it is a single
// room cell (one skeleton edge, two sub-polygons); after contraction
// it aggregates every cell sharing a label. Polygon is the reconciled
// outer boundary, closed (first == last) once reconciliation ran.
type Room struct {
	ID            int
	Center        vector.Vector2
	BoundaryStart vector.Vector2
	BoundaryEnd   vector.Vector2
	SubPolygons   [][]vector.Vector2
	Polygon       []vector.Vector2
	Neighbours    map[*Room]struct{}
	Passages      []*Passage
	Parent        *Room
}

func makeRoom(id int) *Room {
	return &Room{
		ID:         id,
		Neighbours: make(map[*Room]struct{}),
	}
}

func (r *Room) Area() float64 {
	return trigo.PolygonArea(r.Polygon)
}

func (r *Room) HasPassage(p *Passage) bool {
	for _, candidate := range r.Passages {
		if candidate == p {
			return true
		}
	}
	return false
}

func (r *Room) attachPassage(p *Passage) {
	if !r.HasPassage(p) {
		r.Passages = append(r.Passages, p)
	}
}

// PassageLine is the skeleton polyline crossing a passage, kept in
// both traversal directions.
type PassageLine struct {
	CW  []vector.Vector2
	CCW []vector.Vector2
}

// Length sums the clockwise polyline's segment lengths.
func (l PassageLine) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(l.CW); i++ {
		total += l.CW[i].DistanceTo(l.CW[i+1])
	}
	return total
}

// Passage is a doorway-like transition located at a skeleton vertex.
// Junction passages sit where more than two areas meet. EndpointA/B
// are the wall-opening endpoints chosen by the boundary optimizer.
type Passage struct {
	Position       vector.Vector2
	Junction       bool
	ConnectedAreas []*Room
	Line           PassageLine

	EndpointA    vector.Vector2
	EndpointB    vector.Vector2
	HasEndpoints bool
}

func (p *Passage) connectsRoom(r *Room) bool {
	for _, area := range p.ConnectedAreas {
		if area == r {
			return true
		}
	}
	return false
}

func (p *Passage) attachRoom(r *Room) {
	if !p.connectsRoom(r) {
		p.ConnectedAreas = append(p.ConnectedAreas, r)
	}
}

// OtherRoom returns the room on the far side of p relative to r, nil
// when p does not connect exactly two areas or r is not one of them.
func (p *Passage) OtherRoom(r *Room) *Room {
	if len(p.ConnectedAreas) != 2 {
		return nil
	}
	if p.ConnectedAreas[0] == r {
		return p.ConnectedAreas[1]
	}
	if p.ConnectedAreas[1] == r {
		return p.ConnectedAreas[0]
	}
	return nil
}

type AreaGraph struct {
	Rooms    []*Room
	Passages []*Passage
}

func (g *AreaGraph) removeRoom(room *Room) {
	for i, r := range g.Rooms {
		if r == room {
			g.Rooms = append(g.Rooms[:i], g.Rooms[i+1:]...)
			break
		}
	}
}

// removePassage drops p from the graph and from every room still
// referencing it, so no dangling reference survives.
func (g *AreaGraph) removePassage(p *Passage) {
	for i, candidate := range g.Passages {
		if candidate == p {
			g.Passages = append(g.Passages[:i], g.Passages[i+1:]...)
			break
		}
	}

	for _, room := range p.ConnectedAreas {
		for i, candidate := range room.Passages {
			if candidate == p {
				room.Passages = append(room.Passages[:i], room.Passages[i+1:]...)
				break
			}
		}
	}
}

// transferPassages hands every passage of source over to target:
// target adopts the passage unless it already holds it, and the
// passage's area list swaps source for target, deduplicating. The
// source list is cleared so the room can be dropped safely.
func transferPassages(source *Room, target *Room) {
	for _, p := range source.Passages {
		target.attachPassage(p)

		replaced := false
		areas := p.ConnectedAreas[:0]
		for _, area := range p.ConnectedAreas {
			if area == source || area == target {
				if !replaced {
					areas = append(areas, target)
					replaced = true
				}
				continue
			}
			areas = append(areas, area)
		}
		p.ConnectedAreas = areas
	}

	source.Passages = nil
}
