// Package cdbw implements the CDbw composite cluster validity index
// (density between and within clusters).
//
// CDbw scores an existing partition of 2-D points -- produced by any
// clustering algorithm -- by combining three quantities measured on a
// small set of representative points per cluster:
//
//   - separation: how far apart clusters are, discounted by the density
//     of the regions between them
//   - compactness: how dense clusters are internally, probed at multiple
//     scales by shrinking the representatives toward their centroid
//   - cohesion: compactness penalized by how unevenly the intra-cluster
//     density changes across those scales
//
// The composite index is cohesion * separation * compactness; higher is
// better. The index is undefined for a single-cluster partition, in which
// case Compute returns NaN.
//
// Basic usage:
//
//	part, err := cdbw.NewLabelPartition(labels, nil) // labels[i] = cluster of point i, -1 = noise
//	eval, err := cdbw.New(points, part, cdbw.DefaultConfig())
//	score, err := eval.Compute(5) // 5 representatives per cluster
//	// eval.Separation(), eval.Compactness(), eval.Cohesion() for the sub-scores
//
// Evaluation is deterministic: repeated Compute calls on the same inputs
// produce bit-identical scores, including when Config.Workers enables
// parallel evaluation.
//
// The package also provides the Bayesian Information Criterion (BIC) for
// model selection over partitions, and packed dissimilarity matrices for
// callers that need pairwise distances.
package cdbw
