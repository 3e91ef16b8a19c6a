package export

import (
	"github.com/dhconnelly/rtreego"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const nodeEpsilon = 0.000001

type indexedNode struct {
	id    int
	point vector.Vector2
	rect  *rtreego.Rect
}

func (n *indexedNode) Bounds() *rtreego.Rect {
	return n.rect
}

// nodeIndex assigns negative, monotonically decreasing ids to points,
// content-addressed: two points within nodeEpsilon of each other
// resolve to the same node. Lookups go through an R-tree instead of a
// linear scan over every known point.
type nodeIndex struct {
	tree *rtreego.Rtree
	next int
}

func makeNodeIndex(firstID int) *nodeIndex {
	return &nodeIndex{
		tree: rtreego.NewTree(2, 25, 50),
		next: firstID,
	}
}

func pointRect(p vector.Vector2) *rtreego.Rect {
	rect, err := rtreego.NewRect(
		[]float64{p.GetX() - nodeEpsilon, p.GetY() - nodeEpsilon},
		[]float64{2 * nodeEpsilon, 2 * nodeEpsilon},
	)
	utils.Check(err, "Failed to build node bounding rect")
	return rect
}

// intern returns the node id for p, minting one when no node lies
// within nodeEpsilon. The second return is true for a fresh node.
func (ix *nodeIndex) intern(p vector.Vector2) (int, bool) {
	rect := pointRect(p)

	for _, spatial := range ix.tree.SearchIntersect(rect) {
		node := spatial.(*indexedNode)
		if node.point.Equals(p) {
			return node.id, false
		}
	}

	node := &indexedNode{
		id:    ix.next,
		point: p,
		rect:  rect,
	}
	ix.next--

	ix.tree.Insert(node)

	return node.id, true
}

// nextID hands out one id from the same sequence, for ways.
func (ix *nodeIndex) nextID() int {
	id := ix.next
	ix.next--
	return id
}
