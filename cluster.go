package cdbw

import "math"

// cluster aggregates the per-cluster state CDbw needs: the member point
// IDs, their centroid, the standard deviation of member distances to the
// centroid, and the representative subset chosen for the current
// evaluation.
type cluster struct {
	points          []Point // shared backing array, read-only
	members         []int
	centroid        Point
	stdev           float64
	representatives []int
}

func (c *cluster) size() int { return len(c.members) }

func (c *cluster) addMember(id int) {
	c.members = append(c.members, id)
}

// computeData computes the centroid and the standard deviation of member
// distances to it. A cluster with no members is left untouched; a
// singleton cluster gets stdev 0, since the n-1 divisor is undefined.
func (c *cluster) computeData() {
	n := len(c.members)
	if n == 0 {
		return
	}

	sum := Point{}
	for _, id := range c.members {
		sum = sum.Add(c.points[id])
	}
	c.centroid = sum.Div(float64(n))

	if n < 2 {
		c.stdev = 0
		return
	}
	var sumSquares float64
	for _, id := range c.members {
		sumSquares += c.centroid.SquaredDistance(c.points[id])
	}
	c.stdev = math.Sqrt(sumSquares / float64(n-1))
}

// chooseRepresentatives selects up to r members by farthest-first
// traversal: each round picks the unchosen member farthest from the most
// recently chosen representative, starting from the centroid. Ties go to
// the earlier member. When r >= the member count the selection degenerates
// to the full membership.
func (c *cluster) chooseRepresentatives(r int) {
	if r >= len(c.members) {
		c.representatives = append([]int(nil), c.members...)
		return
	}

	used := make([]bool, len(c.members))
	c.representatives = make([]int, r)

	last := c.centroid
	for i := 0; i < r; i++ {
		maxDistance := math.Inf(-1)
		bestID, bestPos := 0, 0
		for j, id := range c.members {
			if used[j] {
				continue
			}
			if d := last.Distance(c.points[id]); d > maxDistance {
				maxDistance = d
				bestID, bestPos = id, j
			}
		}
		c.representatives[i] = bestID
		used[bestPos] = true
		last = c.points[bestID]
	}
}

// closestRepresentative returns the representative nearest to p. Ties go
// to the earlier representative. Must not be called on a cluster with no
// representatives.
func (c *cluster) closestRepresentative(p Point) int {
	best := c.representatives[0]
	minDistance := p.Distance(c.points[best])
	for _, id := range c.representatives[1:] {
		if d := p.Distance(c.points[id]); d < minDistance {
			minDistance = d
			best = id
		}
	}
	return best
}

// shrunkenRepresentatives returns the representative points pulled toward
// the centroid by factor s.
func (c *cluster) shrunkenRepresentatives(s float64) []Point {
	out := make([]Point, len(c.representatives))
	for i, id := range c.representatives {
		out[i] = c.points[id].Lerp(c.centroid, s)
	}
	return out
}
