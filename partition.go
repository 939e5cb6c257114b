package cdbw

import "fmt"

// Unclassified is the reserved cluster ID marking a noise point that
// belongs to no cluster. It matches the -1 noise label used by
// density-based clustering libraries.
const Unclassified = -1

// Partition describes an assignment of n objects to k clusters with IDs
// 0..k-1. Objects labeled Unclassified belong to no cluster. Partitions
// are consumed read-only.
type Partition interface {
	// Size returns the number of objects.
	Size() int

	// NumClusters returns the number of clusters k. The noise "cluster"
	// is not counted.
	NumClusters() int

	// ClusterID returns the cluster of object i, or Unclassified.
	ClusterID(i int) int

	// Medoid returns the medoid object ID of cluster c, or Unclassified
	// if the partition carries no medoid information.
	Medoid(c int) int

	// ClusterSize returns the number of objects assigned to cluster c.
	ClusterSize(c int) int
}

// LabelPartition is a Partition backed by a label slice, one cluster ID
// per object. It is directly constructible from the Labels output of
// clustering libraries that mark noise with -1.
type LabelPartition struct {
	labels  []int
	medoids []int
	sizes   []int
}

// NewLabelPartition builds a partition from per-object labels. Every label
// must be Unclassified or in 0..k-1, where k-1 is the largest label, and
// every cluster in that range must be non-empty. medoids, if non-nil, must
// hold one object ID per cluster; pass nil when no medoid information is
// available (the CDbw index never uses medoids, BIC does).
func NewLabelPartition(labels []int, medoids []int) (*LabelPartition, error) {
	k := 0
	for i, l := range labels {
		if l < Unclassified {
			return nil, fmt.Errorf("cdbw: object %d has invalid label %d", i, l)
		}
		if l+1 > k {
			k = l + 1
		}
	}
	if k == 0 {
		return nil, fmt.Errorf("cdbw: partition must contain at least one cluster")
	}

	sizes := make([]int, k)
	for _, l := range labels {
		if l != Unclassified {
			sizes[l]++
		}
	}
	for c, n := range sizes {
		if n == 0 {
			return nil, fmt.Errorf("cdbw: cluster %d is empty", c)
		}
	}

	if medoids != nil {
		if len(medoids) != k {
			return nil, fmt.Errorf("cdbw: got %d medoids for %d clusters", len(medoids), k)
		}
		for c, m := range medoids {
			if m < 0 || m >= len(labels) {
				return nil, fmt.Errorf("cdbw: medoid %d of cluster %d is out of range", m, c)
			}
		}
	}

	return &LabelPartition{labels: labels, medoids: medoids, sizes: sizes}, nil
}

func (p *LabelPartition) Size() int             { return len(p.labels) }
func (p *LabelPartition) NumClusters() int      { return len(p.sizes) }
func (p *LabelPartition) ClusterID(i int) int   { return p.labels[i] }
func (p *LabelPartition) ClusterSize(c int) int { return p.sizes[c] }

func (p *LabelPartition) Medoid(c int) int {
	if p.medoids == nil {
		return Unclassified
	}
	return p.medoids[c]
}
