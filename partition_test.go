package cdbw

import "testing"

func TestLabelPartition_Basic(t *testing.T) {
	labels := []int{0, 0, 1, Unclassified, 1, 2}
	p, err := NewLabelPartition(labels, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Size() != 6 {
		t.Errorf("Size() = %d, want 6", p.Size())
	}
	if p.NumClusters() != 3 {
		t.Errorf("NumClusters() = %d, want 3", p.NumClusters())
	}
	wantSizes := []int{2, 2, 1}
	for c, want := range wantSizes {
		if got := p.ClusterSize(c); got != want {
			t.Errorf("ClusterSize(%d) = %d, want %d", c, got, want)
		}
	}
	if p.ClusterID(3) != Unclassified {
		t.Errorf("ClusterID(3) = %d, want Unclassified", p.ClusterID(3))
	}
	// No medoid information was given.
	if p.Medoid(0) != Unclassified {
		t.Errorf("Medoid(0) = %d, want Unclassified", p.Medoid(0))
	}
}

func TestLabelPartition_Medoids(t *testing.T) {
	labels := []int{0, 0, 1, 1}
	p, err := NewLabelPartition(labels, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Medoid(0) != 1 || p.Medoid(1) != 2 {
		t.Errorf("Medoids = %d, %d, want 1, 2", p.Medoid(0), p.Medoid(1))
	}
}

func TestLabelPartition_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		labels  []int
		medoids []int
	}{
		{"label below sentinel", []int{0, -2}, nil},
		{"no clusters", []int{Unclassified, Unclassified}, nil},
		{"empty input", nil, nil},
		{"empty cluster", []int{0, 2}, nil},
		{"medoid count mismatch", []int{0, 1}, []int{0}},
		{"medoid out of range", []int{0, 1}, []int{0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLabelPartition(tt.labels, tt.medoids); err == nil {
				t.Errorf("NewLabelPartition(%v, %v) succeeded, want error", tt.labels, tt.medoids)
			}
		})
	}
}
