package cdbw

// DistanceFunc returns the dissimilarity between two objects identified
// by index. It adapts precomputed matrices and on-demand metrics to a
// common shape for consumers like [BIC].
type DistanceFunc func(i, j int) float64

// DissimilarityMatrix is a packed symmetric matrix of pairwise
// dissimilarities. Only the lower triangle (including the diagonal) is
// stored.
type DissimilarityMatrix struct {
	n    int
	data []float64 // row-major lower triangle: row i holds i+1 entries
}

// NewDissimilarityMatrix returns a zeroed n x n symmetric matrix.
func NewDissimilarityMatrix(n int) *DissimilarityMatrix {
	return &DissimilarityMatrix{n: n, data: make([]float64, n*(n+1)/2)}
}

// Size returns the number of objects (rows) in the matrix.
func (m *DissimilarityMatrix) Size() int { return m.n }

// At returns the dissimilarity between objects i and j.
func (m *DissimilarityMatrix) At(i, j int) float64 {
	if j > i {
		i, j = j, i
	}
	return m.data[i*(i+1)/2+j]
}

// Set stores the dissimilarity between objects i and j (and j and i).
func (m *DissimilarityMatrix) Set(i, j int, v float64) {
	if j > i {
		i, j = j, i
	}
	m.data[i*(i+1)/2+j] = v
}

// DistanceFunc adapts the matrix into a DistanceFunc without copying it.
func (m *DissimilarityMatrix) DistanceFunc() DistanceFunc {
	return func(i, j int) float64 { return m.At(i, j) }
}

// BuildDissimilarityMatrix computes the pairwise Euclidean dissimilarity
// matrix over points.
func BuildDissimilarityMatrix(points []Point) *DissimilarityMatrix {
	m := NewDissimilarityMatrix(len(points))
	for i := range points {
		for j := 0; j < i; j++ {
			m.Set(i, j, points[i].Distance(points[j]))
		}
	}
	return m
}

// BuildSubsetDissimilarityMatrix computes the pairwise dissimilarity
// matrix over points[subset[0]], points[subset[1]], and so on. The matrix
// is indexed by position in subset, not by original point ID.
func BuildSubsetDissimilarityMatrix(points []Point, subset []int) *DissimilarityMatrix {
	m := NewDissimilarityMatrix(len(subset))
	for i := range subset {
		for j := 0; j < i; j++ {
			m.Set(i, j, points[subset[i]].Distance(points[subset[j]]))
		}
	}
	return m
}

// LazyDistance returns a DistanceFunc that computes Euclidean distances on
// demand, for callers that cannot afford the O(n²) matrix.
func LazyDistance(points []Point) DistanceFunc {
	return func(i, j int) float64 { return points[i].Distance(points[j]) }
}
