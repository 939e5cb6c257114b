package cdbw

import (
	"math"
	"testing"
)

// twoClusterBICData is a pair of well-separated 5-point clusters with the
// medoid of each at its center.
func twoClusterBICData() ([]Point, []int, []int) {
	points := []Point{
		{0, 0}, {1, 0}, {0.5, 0.5}, {0, 1}, {1, 1}, // cluster 0, medoid 2
		{100, 0}, {101, 0}, {100.5, 0.5}, {100, 1}, {101, 1}, // cluster 1, medoid 7
	}
	labels := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	medoids := []int{2, 7}
	return points, labels, medoids
}

func TestBIC_AgreesWithPrecomputedSums(t *testing.T) {
	points, labels, medoids := twoClusterBICData()
	p, err := NewLabelPartition(labels, medoids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	distance := LazyDistance(points)

	direct := BIC(p, distance, 2)

	// Aggregate the same quantities by hand.
	k := p.NumClusters()
	sizes := make([]int, k)
	sum2 := make([]float64, k)
	for i := range points {
		c := labels[i]
		d := distance(i, medoids[c])
		sizes[c]++
		sum2[c] += d * d
	}
	fromSums := BICFromSums(sizes, sum2, 2)

	if math.Abs(direct-fromSums) > 1e-9 {
		t.Errorf("BIC = %v but BICFromSums = %v, want agreement", direct, fromSums)
	}
}

func TestBIC_PrefersTrueClustering(t *testing.T) {
	points, labels, medoids := twoClusterBICData()

	good, err := NewLabelPartition(labels, medoids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Swap two points across the gap: same k, same sizes, much worse fit.
	badLabels := append([]int(nil), labels...)
	badLabels[0], badLabels[5] = 1, 0
	bad, err := NewLabelPartition(badLabels, medoids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	distance := LazyDistance(points)
	if BIC(good, distance, 2) <= BIC(bad, distance, 2) {
		t.Errorf("BIC(good) = %v should exceed BIC(bad) = %v",
			BIC(good, distance, 2), BIC(bad, distance, 2))
	}
}

func TestBICFromSums_MoreClustersCostMore(t *testing.T) {
	// Identical fit quality; the larger k pays a bigger parameter penalty.
	coarse := BICFromSums([]int{50, 50}, []float64{25, 25}, 2)
	fine := BICFromSums([]int{25, 25, 25, 25}, []float64{12.5, 12.5, 12.5, 12.5}, 2)

	// Both describe 100 points with the same total squared dissimilarity,
	// so the extra clusters buy no fit and only pay parameter and prior
	// costs.
	if coarse <= fine {
		t.Errorf("BICFromSums(k=2) = %v should exceed BICFromSums(k=4) = %v", coarse, fine)
	}
}
