package cdbw

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BIC computes the Bayesian Information Criterion for a partition,
// treating each cluster as a spherical Gaussian centered on its medoid
// (the X-means formulation of Pelleg and Moore). distance must return the
// dissimilarity between two object indices; dims is the dimensionality of
// the underlying data (2 for this package's points). Higher values
// indicate a better fit.
//
// The partition must carry medoid information and have no unclassified
// objects.
func BIC(p Partition, distance DistanceFunc, dims int) float64 {
	n := p.Size()
	k := p.NumClusters()
	R := float64(n)

	// Pooled variance of objects around their medoids.
	dists := make([]float64, n)
	var sum2 float64
	for i := 0; i < n; i++ {
		d := distance(i, p.Medoid(p.ClusterID(i)))
		dists[i] = d
		sum2 += d * d
	}
	s2 := sum2 / (R - float64(k))
	sM := math.Pow(math.Sqrt(s2), float64(dims))
	root2pi := math.Sqrt(2 * math.Pi)

	// Log-likelihood from per-point probabilities.
	var lD float64
	for i := 0; i < n; i++ {
		Ri := float64(p.ClusterSize(p.ClusterID(i)))
		lD += math.Log(1/(root2pi*sM)) -
			dists[i]*dists[i]/(2*s2) +
			math.Log(Ri/R)
	}

	pj := float64(k-1) + float64(dims*k) + 1 // free parameter count
	return lD - pj/2*math.Log(R)
}

// BICFromSums computes the BIC from precomputed per-cluster aggregates:
// the cluster sizes and the per-cluster sums of squared dissimilarities
// between each member and its medoid. This is the form to use when those
// reductions are produced elsewhere (for example as a parallel reduction)
// and aggregating a full partition is wasteful. Given matching aggregates
// it agrees with [BIC].
func BICFromSums(clusterSizes []int, sum2Dissim []float64, dims int) float64 {
	k := len(clusterSizes)
	sizes := make([]float64, k)
	for i, n := range clusterSizes {
		sizes[i] = float64(n)
	}

	R := floats.Sum(sizes)
	M := float64(dims)
	logR := math.Log(R)
	log2pi := math.Log(2 * math.Pi)
	pj := float64(k-1) + M*float64(k) + 1 // free parameter count
	s2 := floats.Sum(sum2Dissim) / (R - float64(k))

	// Closed-form maximized log-likelihood per cluster.
	var criterion float64
	for _, Rn := range sizes {
		criterion += -(Rn*log2pi)/2 -
			(Rn*M*math.Log(s2))/2 -
			(Rn-1)/2 +
			Rn*math.Log(Rn) -
			Rn*logR
	}
	return criterion - pj/2*logR
}
