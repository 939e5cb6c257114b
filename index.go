package cdbw

// SpatialIndex answers fixed-radius neighborhood queries over a static
// point set. Implementations are read-only after construction and safe
// for concurrent queries.
type SpatialIndex interface {
	// RangeQuery returns the IDs of every point within radius of center,
	// inclusive. The order of the returned IDs is unspecified but
	// deterministic for a given index.
	RangeQuery(center Point, radius float64) []int

	// NumPoints returns the number of indexed points.
	NumPoints() int
}

// bruteIndex is the O(n)-per-query fallback implementation of
// SpatialIndex. It beats the KD-tree for small point sets and serves as
// the oracle in tests.
type bruteIndex struct {
	points []Point
}

// NewBruteIndex builds a SpatialIndex that answers every query with a
// linear scan.
func NewBruteIndex(points []Point) SpatialIndex {
	return &bruteIndex{points: points}
}

func (b *bruteIndex) NumPoints() int { return len(b.points) }

func (b *bruteIndex) RangeQuery(center Point, radius float64) []int {
	r2 := radius * radius
	var ids []int
	for i, p := range b.points {
		if center.SquaredDistance(p) <= r2 {
			ids = append(ids, i)
		}
	}
	return ids
}
