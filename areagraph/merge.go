package areagraph

import (
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
)

type MergeStrategy int

const (
	// MergeDirect contracts label groups in one streaming pass,
	// reclassifying passages as it goes.
	MergeDirect MergeStrategy = iota
	// MergeSoft marks sources removed and defers cleanup to Prune.
	MergeSoft
)

// MergeRooms contracts every set of rooms sharing a label into one
// room. Rooms labeled RoomUnassigned are left alone. After MergeSoft
// the caller must run Prune before touching the graph further.
func (g *AreaGraph) MergeRooms(strategy MergeStrategy) {
	switch strategy {
	case MergeSoft:
		g.mergeSoft()
	default:
		g.mergeDirect()
	}
}

func (g *AreaGraph) mergeDirect() {
	dests := make(map[int]*Room)
	var merged []*Room
	var kept []*Room

	for _, src := range g.Rooms {
		id := src.ID
		if id == RoomUnassigned || id == RoomRemoved {
			kept = append(kept, src)
			continue
		}

		dest, ok := dests[id]
		if !ok {
			dest = makeRoom(id)
			dest.Center = src.Center
			dest.BoundaryStart = src.BoundaryStart
			dest.BoundaryEnd = src.BoundaryEnd
			dests[id] = dest
			merged = append(merged, dest)
		}

		dest.SubPolygons = append(dest.SubPolygons, src.SubPolygons...)

		// removePassage edits src.Passages in place; walk a snapshot.
		passages := append([]*Passage(nil), src.Passages...)
		for _, p := range passages {
			if g.passageInternalTo(p, id) {
				g.removePassage(p)
				continue
			}

			rewriteConnectedAreas(p, id, dest)
			dest.attachPassage(p)
		}
		src.Passages = nil
		src.SubPolygons = nil
	}

	g.Rooms = append(kept, merged...)
}

// passageInternalTo reports whether every area of p carries the given
// label; such a passage lies inside the contracted room and leaves
// the graph.
func (g *AreaGraph) passageInternalTo(p *Passage, id int) bool {
	for _, area := range p.ConnectedAreas {
		if area.ID != id {
			return false
		}
	}
	return true
}

// rewriteConnectedAreas swaps every area labeled id for dest, keeping
// a single occurrence.
func rewriteConnectedAreas(p *Passage, id int, dest *Room) {
	replaced := false
	areas := p.ConnectedAreas[:0]
	for _, area := range p.ConnectedAreas {
		if area.ID == id {
			if !replaced {
				areas = append(areas, dest)
				replaced = true
			}
			continue
		}
		areas = append(areas, area)
	}
	p.ConnectedAreas = areas
}

func (g *AreaGraph) mergeSoft() {
	dests := make(map[int]*Room)
	var created []*Room

	for _, src := range g.Rooms {
		id := src.ID
		if id == RoomUnassigned || id == RoomRemoved {
			continue
		}

		dest, ok := dests[id]
		if !ok {
			dest = makeRoom(id)
			dest.Center = src.Center
			dest.BoundaryStart = src.BoundaryStart
			dest.BoundaryEnd = src.BoundaryEnd
			dests[id] = dest
			created = append(created, dest)
		}

		dest.SubPolygons = append(dest.SubPolygons, src.SubPolygons...)
		for neighbour := range src.Neighbours {
			if neighbour != dest {
				dest.Neighbours[neighbour] = struct{}{}
			}
		}

		src.Parent = dest
		src.ID = RoomRemoved
	}

	g.Rooms = append(g.Rooms, created...)
}

// Prune finishes a soft merge: every neighbour reference to a removed
// room is rewritten to that room's parent, passages are handed over,
// then the removed rooms leave the graph.
func (g *AreaGraph) Prune() {
	for _, room := range g.Rooms {
		if room.ID == RoomRemoved {
			continue
		}

		var stale []*Room
		for neighbour := range room.Neighbours {
			if neighbour.ID == RoomRemoved {
				stale = append(stale, neighbour)
			}
		}
		for _, neighbour := range stale {
			delete(room.Neighbours, neighbour)
			if neighbour.Parent != nil && neighbour.Parent != room {
				room.Neighbours[neighbour.Parent] = struct{}{}
			}
		}
	}

	kept := g.Rooms[:0]
	removed := 0
	for _, room := range g.Rooms {
		if room.ID != RoomRemoved {
			kept = append(kept, room)
			continue
		}

		removed++
		if room.Parent != nil {
			transferPassages(room, room.Parent)
		}
		room.Passages = nil
	}
	g.Rooms = kept

	// Passages fully swallowed by a contraction connect one room only
	// and no longer separate anything.
	var internal []*Passage
	for _, p := range g.Passages {
		if len(dedupAreas(p.ConnectedAreas)) < 2 && len(p.ConnectedAreas) > 0 {
			internal = append(internal, p)
		}
	}
	for _, p := range internal {
		g.removePassage(p)
	}

	if removed > 0 {
		utils.Debug(serviceName, "pruned "+strconv.Itoa(removed)+" contracted rooms")
	}
}

func dedupAreas(areas []*Room) []*Room {
	seen := make(map[*Room]bool, len(areas))
	out := make([]*Room, 0, len(areas))
	for _, area := range areas {
		if !seen[area] {
			seen[area] = true
			out = append(out, area)
		}
	}
	return out
}

// ArrangeRoomIDs renumbers rooms densely from zero, in slice order.
func (g *AreaGraph) ArrangeRoomIDs() {
	for i, room := range g.Rooms {
		room.ID = i
	}
}
