package cdbw

import (
	"math"
	"sort"
)

// KDTree is a static 2-D KD-tree supporting fixed-radius range queries.
// Points are referenced through an index permutation array so the backing
// slice is never reordered.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as a min/max corner per node
type KDTree struct {
	points    []Point
	leafSize  int
	idxArray  []int // permutation: tree-order position -> original index
	nodes     []nodeData
	boundsMin []Point // axis-aligned bounding box per node
	boundsMax []Point
}

// nodeData describes a single tree node: the idxArray range it covers and
// whether it is a leaf.
type nodeData struct {
	idxStart, idxEnd int
	isLeaf           bool
}

// NewKDTree builds a KD-tree over points. leafSize controls the maximum
// number of points per leaf node; values < 1 are clamped to 1. The tree
// holds a reference to points, which must not change afterwards.
func NewKDTree(points []Point, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}

	n := len(points)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree{
		points:    points,
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]nodeData, maxNodes),
		boundsMin: make([]Point, maxNodes),
		boundsMax: make([]Point, maxNodes),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
	}

	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	// Grow arrays if needed (shouldn't happen with a good upper bound).
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, nodeData{})
		t.boundsMin = append(t.boundsMin, Point{})
		t.boundsMax = append(t.boundsMax, Point{})
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = nodeData{idxStart: start, idxEnd: end, isLeaf: true}
		return
	}

	// Split on the dimension with the greater spread.
	splitX := t.boundsMax[nodeID].X-t.boundsMin[nodeID].X >= t.boundsMax[nodeID].Y-t.boundsMin[nodeID].Y

	t.sortByDimension(start, end, splitX)
	mid := start + count/2

	t.nodes[nodeID] = nodeData{idxStart: start, idxEnd: end, isLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes the bounding box of points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	lo := Point{math.Inf(1), math.Inf(1)}
	hi := Point{math.Inf(-1), math.Inf(-1)}
	for i := start; i < end; i++ {
		p := t.points[t.idxArray[i]]
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	t.boundsMin[nodeID] = lo
	t.boundsMax[nodeID] = hi
}

// sortByDimension sorts idxArray[start:end] by X or Y coordinate.
func (t *KDTree) sortByDimension(start, end int, byX bool) {
	sub := t.idxArray[start:end]
	points := t.points
	if byX {
		sort.Slice(sub, func(i, j int) bool { return points[sub[i]].X < points[sub[j]].X })
	} else {
		sort.Slice(sub, func(i, j int) bool { return points[sub[i]].Y < points[sub[j]].Y })
	}
}

func (t *KDTree) NumPoints() int { return len(t.points) }

// RangeQuery returns the IDs of every point within radius of center,
// inclusive. Comparisons are done in squared-distance space; the square
// root is never taken.
func (t *KDTree) RangeQuery(center Point, radius float64) []int {
	if len(t.points) == 0 || radius < 0 {
		return nil
	}
	var ids []int
	t.rangeSearch(0, center, radius*radius, &ids)
	return ids
}

// rangeSearch traverses the tree, pruning nodes whose box lower bound
// exceeds r2 and bulk-accepting nodes whose box upper bound is within r2.
func (t *KDTree) rangeSearch(nodeID int, center Point, r2 float64, out *[]int) {
	node := t.nodes[nodeID]

	if t.minSquaredDist(nodeID, center) > r2 {
		return
	}
	if t.maxSquaredDist(nodeID, center) <= r2 {
		// Whole node inside the query ball.
		for i := node.idxStart; i < node.idxEnd; i++ {
			*out = append(*out, t.idxArray[i])
		}
		return
	}

	if node.isLeaf {
		for i := node.idxStart; i < node.idxEnd; i++ {
			id := t.idxArray[i]
			if center.SquaredDistance(t.points[id]) <= r2 {
				*out = append(*out, id)
			}
		}
		return
	}

	t.rangeSearch(2*nodeID+1, center, r2, out)
	t.rangeSearch(2*nodeID+2, center, r2, out)
}

// minSquaredDist returns the squared distance from p to the nearest point
// of the node's bounding box (0 when p is inside).
func (t *KDTree) minSquaredDist(nodeID int, p Point) float64 {
	lo, hi := t.boundsMin[nodeID], t.boundsMax[nodeID]
	var dx, dy float64
	if p.X < lo.X {
		dx = lo.X - p.X
	} else if p.X > hi.X {
		dx = p.X - hi.X
	}
	if p.Y < lo.Y {
		dy = lo.Y - p.Y
	} else if p.Y > hi.Y {
		dy = p.Y - hi.Y
	}
	return dx*dx + dy*dy
}

// maxSquaredDist returns the squared distance from p to the farthest
// corner of the node's bounding box.
func (t *KDTree) maxSquaredDist(nodeID int, p Point) float64 {
	lo, hi := t.boundsMin[nodeID], t.boundsMax[nodeID]
	dx := math.Max(math.Abs(p.X-lo.X), math.Abs(hi.X-p.X))
	dy := math.Max(math.Abs(p.Y-lo.Y), math.Abs(hi.Y-p.Y))
	return dx*dx + dy*dy
}
