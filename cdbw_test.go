package cdbw

import (
	"math"
	"testing"
)

func mustEvaluator(t *testing.T, points []Point, labels []int, cfg Config) *CDbw {
	t.Helper()
	part, err := NewLabelPartition(labels, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eval, err := New(points, part, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return eval
}

// threeCollinearClusters places three equally spaced clusters of 5 points
// each along the x axis, with identical spread, centered at 0, gap and
// 2*gap.
func threeCollinearClusters(gap float64) ([]Point, []int) {
	offsets := []float64{-0.2, -0.1, 0, 0.1, 0.2}
	var points []Point
	var labels []int
	for c, center := range []float64{0, gap, 2 * gap} {
		for _, off := range offsets {
			points = append(points, Point{center + off, 0})
			labels = append(labels, c)
		}
	}
	return points, labels
}

func TestCompute_SingleClusterUndefined(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0, 1}}
	eval := mustEvaluator(t, points, []int{0, 0, 0}, DefaultConfig())

	score, err := eval.Compute(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(score) {
		t.Errorf("Compute with one cluster = %v, want NaN", score)
	}
	// Sub-scores stay at their zero defaults.
	s := eval.Scores()
	if s.Separation != 0 || s.Compactness != 0 || s.Cohesion != 0 || s.IntraDensityChange != 0 {
		t.Errorf("sub-scores after undefined compute = %+v, want zeros", s)
	}
}

func TestCompute_InvalidRepresentativeCount(t *testing.T) {
	points := []Point{{0, 0}, {5, 5}}
	eval := mustEvaluator(t, points, []int{0, 1}, DefaultConfig())

	for _, r := range []int{0, -1} {
		if _, err := eval.Compute(r); err == nil {
			t.Errorf("Compute(%d) succeeded, want error", r)
		}
	}
}

func TestCompute_TwoTightClusters(t *testing.T) {
	// Two well-separated 2-point clusters. With r=2 the representatives
	// are the full memberships and every representative forms a mutual
	// pair with its horizontal counterpart, 10 units away.
	points := []Point{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
	eval := mustEvaluator(t, points, []int{0, 0, 1, 1}, DefaultConfig())

	score, err := eval.Compute(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for c, cl := range eval.clusters {
		if got := sortedIDs(cl.representatives); !idsEqual(got, sortedIDs(cl.members)) {
			t.Errorf("cluster %d representatives = %v, want all members %v", c, got, cl.members)
		}
	}

	// Nothing lives between the clusters, so the inter-cluster density is
	// zero and separation is exactly the mean RCR distance.
	if eval.Separation() != 10 {
		t.Errorf("Separation() = %v, want 10", eval.Separation())
	}
	if eval.Separation() <= eval.Compactness() {
		t.Errorf("expected separation (%v) to dominate compactness (%v) for tight distant clusters",
			eval.Separation(), eval.Compactness())
	}
	if score <= 0 || math.IsInf(score, 0) || math.IsNaN(score) {
		t.Errorf("composite score = %v, want finite positive", score)
	}
}

func TestCompute_CompositeIsProductOfSubScores(t *testing.T) {
	points, labels := threeCollinearClusters(5)
	eval := mustEvaluator(t, points, labels, DefaultConfig())

	score, err := eval.Compute(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := eval.Cohesion() * eval.Separation() * eval.Compactness()
	if score != want {
		t.Errorf("Compute = %v, want cohesion*separation*compactness = %v", score, want)
	}
	if score != eval.CDbw() {
		t.Errorf("Compute = %v but CDbw() = %v", score, eval.CDbw())
	}
}

func TestCompute_ThreeCollinearClusters(t *testing.T) {
	points, labels := threeCollinearClusters(5)
	eval := mustEvaluator(t, points, labels, DefaultConfig())

	if _, err := eval.Compute(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d01 := eval.distanceBetween(0, 1)
	d02 := eval.distanceBetween(0, 2)
	d12 := eval.distanceBetween(1, 2)

	// The outer clusters are twice as far from each other as from the
	// middle one.
	if d02 <= d01 || d02 <= d12 {
		t.Errorf("outer-pair distance %v should exceed adjacent distances %v, %v", d02, d01, d12)
	}

	// Separation reflects the per-cluster minimum distance, not the mean:
	// every cluster's nearest neighbor is an adjacent cluster.
	wantMin := (d01 + math.Min(d01, d12) + d12) / 3
	gotMin := eval.Separation() * (1 + eval.interClusterDensity())
	if !almostEqual(gotMin, wantMin, 1e-6) {
		t.Errorf("separation numerator = %v, want mean of per-cluster minima %v", gotMin, wantMin)
	}
}

func TestCompute_Determinism(t *testing.T) {
	points := randomPoints(120, 10, 99)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = i % 4
	}
	eval := mustEvaluator(t, points, labels, DefaultConfig())

	first, err := eval.Compute(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstScores := eval.Scores()

	for trial := 0; trial < 3; trial++ {
		got, err := eval.Compute(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != first {
			t.Fatalf("trial %d: Compute = %v, want bit-identical %v", trial, got, first)
		}
		if eval.Scores() != firstScores {
			t.Fatalf("trial %d: Scores = %+v, want %+v", trial, eval.Scores(), firstScores)
		}
	}
}

func TestCompute_IndexChoiceDoesNotChangeScores(t *testing.T) {
	points := randomPoints(150, 10, 13)
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = i % 3
	}

	var ref Scores
	for n, kind := range []IndexKind{IndexBrute, IndexKDTree, IndexAuto} {
		cfg := DefaultConfig()
		cfg.Index = kind
		eval := mustEvaluator(t, points, labels, cfg)
		if _, err := eval.Compute(4); err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if n == 0 {
			ref = eval.Scores()
			continue
		}
		if eval.Scores() != ref {
			t.Errorf("%s: Scores = %+v, want %+v", kind, eval.Scores(), ref)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	points := []Point{{0, 0}, {1, 1}}
	part, err := NewLabelPartition([]int{0, 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := New(points[:1], part, DefaultConfig()); err == nil {
		t.Error("New with mismatched point count succeeded, want error")
	}

	cfg := DefaultConfig()
	cfg.Index = "quadtree"
	if _, err := New(points, part, cfg); err == nil {
		t.Error("New with invalid Index succeeded, want error")
	}

	cfg = DefaultConfig()
	cfg.Workers = -2
	if _, err := New(points, part, cfg); err == nil {
		t.Error("New with negative Workers succeeded, want error")
	}
}
