package cdbw

// rcrPair is a mutually-nearest representative pair between two clusters:
// u is a representative of the first cluster of the ordered pair, w of
// the second.
type rcrPair struct {
	u, w int
}

// rcrTable holds the representative closest-pairs for every ordered pair
// of distinct clusters, as a dense k x k matrix of pair lists. Diagonal
// cells are unused. Both (i,j) and (j,i) are filled independently.
type rcrTable struct {
	k     int
	cells [][]rcrPair
}

func newRCRTable(k int) *rcrTable {
	return &rcrTable{k: k, cells: make([][]rcrPair, k*k)}
}

func (t *rcrTable) at(i, j int) []rcrPair {
	return t.cells[i*t.k+j]
}

func (t *rcrTable) set(i, j int, pairs []rcrPair) {
	t.cells[i*t.k+j] = pairs
}

// computeRCR finds the representative closest-pairs between clusters ci
// and cj. The directional closest-representative relation is computed both
// ways and a pair (u, w) is kept only when the directions agree: u's
// closest representative in cj is w and w's closest in ci is u.
func computeRCR(points []Point, ci, cj *cluster) []rcrPair {
	repsI := ci.representatives
	repsJ := cj.representatives
	if len(repsI) == 0 || len(repsJ) == 0 {
		return nil
	}

	closestInJ := make([]int, len(repsI))
	for v, id := range repsI {
		closestInJ[v] = cj.closestRepresentative(points[id])
	}
	closestInI := make([]int, len(repsJ))
	for v, id := range repsJ {
		closestInI[v] = ci.closestRepresentative(points[id])
	}

	var pairs []rcrPair
	for vi, u := range repsI {
		for vj, w := range repsJ {
			if closestInJ[vi] == w && closestInI[vj] == u {
				pairs = append(pairs, rcrPair{u: u, w: w})
			}
		}
	}
	return pairs
}
