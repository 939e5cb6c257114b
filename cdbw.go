package cdbw

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/stat"
)

// shrinkFactors are the interpolation fractions at which the intra-cluster
// density is sampled; representatives are pulled toward their centroid by
// each factor in turn.
var shrinkFactors = [...]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

// IndexKind selects the spatial index implementation used for range
// queries.
type IndexKind string

const (
	// IndexAuto picks brute force for small point sets and a KD-tree
	// otherwise.
	IndexAuto IndexKind = "auto"
	// IndexKDTree forces the KD-tree.
	IndexKDTree IndexKind = "kdtree"
	// IndexBrute forces the linear-scan index.
	IndexBrute IndexKind = "brute"
)

// bruteIndexCutoff is the point count below which IndexAuto prefers the
// linear scan over building a tree.
const bruteIndexCutoff = 64

// Config controls CDbw evaluation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Index selects the spatial index implementation. Default: IndexAuto.
	Index IndexKind

	// LeafSize controls the maximum number of points in a KD-tree leaf
	// node. Only used when the KD-tree is selected. Default: 40.
	LeafSize int

	// Workers controls the number of goroutines used for the
	// parallelizable stages (RCR construction per cluster pair, the
	// intra-cluster density sweep per shrink factor). 1 forces sequential
	// evaluation; 0 means use runtime.NumCPU(). Results are bitwise
	// identical either way. Default: 0 (auto).
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{Index: IndexAuto, LeafSize: 40}
}

func applyDefaults(cfg *Config) {
	if cfg.Index == "" {
		cfg.Index = IndexAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Index {
	case IndexAuto, IndexKDTree, IndexBrute:
		// valid
	default:
		return fmt.Errorf("cdbw: invalid Index %q", cfg.Index)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("cdbw: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("cdbw: Workers must be >= 0 (0 means auto), got %d", cfg.Workers)
	}
	return nil
}

// CDbw evaluates the composite density-between-and-within validity index
// for a partition of 2-D points. The cluster models and the spatial index
// are built once by [New]; each Compute call recomputes representatives,
// the RCR table and all scores from scratch.
type CDbw struct {
	points   []Point
	part     Partition
	clusters []*cluster
	index    SpatialIndex
	workers  int

	r    int
	rcrs *rcrTable

	cdbw               float64
	separation         float64
	compactness        float64
	cohesion           float64
	intraDensityChange float64
}

// Scores is a snapshot of every score produced by the most recent Compute
// call.
type Scores struct {
	// CDbw is the composite index: Cohesion * Separation * Compactness.
	CDbw float64
	// Separation measures how far apart clusters are, discounted by the
	// density between them.
	Separation float64
	// Compactness is the mean intra-cluster density over the shrink sweep.
	Compactness float64
	// Cohesion is compactness penalized by the intra-density change.
	Cohesion float64
	// IntraDensityChange is the mean absolute difference between
	// consecutive samples of the shrink sweep, a roughness diagnostic.
	IntraDensityChange float64
}

// New builds a CDbw evaluator for the given points and partition.
// points[i] is the coordinate of object i of the partition; the evaluator
// keeps a reference and neither may change while it is in use.
func New(points []Point, p Partition, cfg Config) (*CDbw, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if p.Size() != len(points) {
		return nil, fmt.Errorf("cdbw: partition size %d does not match %d points", p.Size(), len(points))
	}
	k := p.NumClusters()
	if k < 1 {
		return nil, fmt.Errorf("cdbw: partition must have at least 1 cluster, got %d", k)
	}

	clusters := make([]*cluster, k)
	for i := range clusters {
		clusters[i] = &cluster{points: points}
	}
	for i := range points {
		id := p.ClusterID(i)
		if id == Unclassified {
			continue
		}
		if id < 0 || id >= k {
			return nil, fmt.Errorf("cdbw: object %d has cluster ID %d, want Unclassified or 0..%d", i, id, k-1)
		}
		clusters[id].addMember(i)
	}
	for _, c := range clusters {
		c.computeData()
	}

	var index SpatialIndex
	switch cfg.Index {
	case IndexBrute:
		index = NewBruteIndex(points)
	case IndexKDTree:
		index = NewKDTree(points, cfg.LeafSize)
	default:
		if len(points) <= bruteIndexCutoff {
			index = NewBruteIndex(points)
		} else {
			index = NewKDTree(points, cfg.LeafSize)
		}
	}

	return &CDbw{
		points:   points,
		part:     p,
		clusters: clusters,
		index:    index,
		workers:  cfg.Workers,
	}, nil
}

// Compute evaluates the index with r representatives per cluster and
// returns the composite score. The index is undefined for a
// single-cluster partition: Compute then returns NaN and leaves the
// sub-scores at zero. Compute is idempotent; calling it again with the
// same r produces bit-identical scores.
func (c *CDbw) Compute(r int) (float64, error) {
	if r < 1 {
		return 0, fmt.Errorf("cdbw: representative count must be >= 1, got %d", r)
	}

	if len(c.clusters) == 1 {
		return math.NaN(), nil
	}

	c.r = r
	for _, cl := range c.clusters {
		cl.chooseRepresentatives(r)
	}
	c.rcrs = c.computeRCRs()

	c.separation = c.computeSeparation()
	c.compactness = c.compactnessAndIntraDensityChange()
	c.cohesion = c.compactness / (1 + c.intraDensityChange)
	c.cdbw = c.cohesion * c.separation * c.compactness

	return c.cdbw, nil
}

// CDbw returns the composite score of the most recent Compute call.
func (c *CDbw) CDbw() float64 { return c.cdbw }

// Separation returns the separation score of the most recent Compute call.
func (c *CDbw) Separation() float64 { return c.separation }

// Compactness returns the compactness score of the most recent Compute call.
func (c *CDbw) Compactness() float64 { return c.compactness }

// Cohesion returns the cohesion score of the most recent Compute call.
func (c *CDbw) Cohesion() float64 { return c.cohesion }

// IntraDensityChange returns the intra-cluster density-change diagnostic
// of the most recent Compute call.
func (c *CDbw) IntraDensityChange() float64 { return c.intraDensityChange }

// Scores returns a snapshot of all scores from the most recent Compute call.
func (c *CDbw) Scores() Scores {
	return Scores{
		CDbw:               c.cdbw,
		Separation:         c.separation,
		Compactness:        c.compactness,
		Cohesion:           c.cohesion,
		IntraDensityChange: c.intraDensityChange,
	}
}

// computeRCRsSequential fills the RCR table for every ordered pair of
// distinct clusters.
func (c *CDbw) computeRCRsSequential() *rcrTable {
	k := len(c.clusters)
	t := newRCRTable(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if i != j {
				t.set(i, j, computeRCR(c.points, c.clusters[i], c.clusters[j]))
			}
		}
	}
	return t
}

// distanceBetween returns the mean distance over the RCR pairs of
// clusters (i, j), or 0 when the pair has no RCR pairs.
func (c *CDbw) distanceBetween(i, j int) float64 {
	pairs := c.rcrs.at(i, j)
	if len(pairs) == 0 {
		return 0
	}
	dists := make([]float64, len(pairs))
	for p, pr := range pairs {
		dists[p] = c.points[pr.u].Distance(c.points[pr.w])
	}
	return stat.Mean(dists, nil)
}

// densityBetween returns the density between clusters (i, j): for each RCR
// pair, the fraction of the two clusters' combined membership within the
// pooled stdev of the pair midpoint, weighted by the pair distance in
// stdev units, averaged over the pairs. A pair with no RCR pairs, or
// between two degenerate (zero-stdev) clusters, has density 0.
func (c *CDbw) densityBetween(i, j int) float64 {
	pairs := c.rcrs.at(i, j)
	if len(pairs) == 0 {
		return 0
	}

	si := c.clusters[i].stdev
	sj := c.clusters[j].stdev
	avgStdev := math.Sqrt((si*si + sj*sj) / 2)
	if avgStdev == 0 {
		return 0
	}

	var sum float64
	for _, pr := range pairs {
		u := c.points[pr.u]
		w := c.points[pr.w]
		card := c.pairCardinality(u.Midpoint(w), avgStdev, i, j)
		sum += (u.Distance(w) / (2 * avgStdev)) * card
	}
	return sum / float64(len(pairs))
}

// pairCardinality is the fraction of the combined membership of clusters
// i and j that lies within radius of center.
func (c *CDbw) pairCardinality(center Point, radius float64, i, j int) float64 {
	total := c.clusters[i].size() + c.clusters[j].size()
	if total == 0 {
		return 0
	}
	count := 0
	for _, id := range c.index.RangeQuery(center, radius) {
		if cid := c.part.ClusterID(id); cid == i || cid == j {
			count++
		}
	}
	return float64(count) / float64(total)
}

// clusterCardinality is the fraction of cluster i's members that lies
// within radius of center.
func (c *CDbw) clusterCardinality(center Point, radius float64, i int) float64 {
	if c.clusters[i].size() == 0 {
		return 0
	}
	count := 0
	for _, id := range c.index.RangeQuery(center, radius) {
		if c.part.ClusterID(id) == i {
			count++
		}
	}
	return float64(count) / float64(c.clusters[i].size())
}

// computeSeparation averages, over all clusters, the minimum RCR distance
// to any other cluster, then discounts by the inter-cluster density.
// Cluster pairs with no RCR pairs are skipped in the minimum; a cluster
// with no non-empty RCR set to any peer contributes 0.
func (c *CDbw) computeSeparation() float64 {
	k := len(c.clusters)
	interDensity := c.interClusterDensity()

	var sumMin float64
	for i := 0; i < k; i++ {
		minDistance := math.Inf(1)
		for j := 0; j < k; j++ {
			if i == j || len(c.rcrs.at(i, j)) == 0 {
				continue
			}
			if d := c.distanceBetween(i, j); d < minDistance {
				minDistance = d
			}
		}
		if !math.IsInf(minDistance, 1) {
			sumMin += minDistance
		}
	}

	return (sumMin / float64(k)) / (1 + interDensity)
}

// interClusterDensity averages, over all clusters, the maximum pairwise
// density to any other cluster.
func (c *CDbw) interClusterDensity() float64 {
	k := len(c.clusters)
	var sumMax float64
	for i := 0; i < k; i++ {
		var maxDensity float64
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			if d := c.densityBetween(i, j); d > maxDensity {
				maxDensity = d
			}
		}
		sumMax += maxDensity
	}
	return sumMax / float64(k)
}

// compactnessAndIntraDensityChange runs the shrink sweep once, computing
// both the compactness (mean intra-cluster density over the sampled
// shrink factors) and the density-change diagnostic (mean absolute
// difference between consecutive samples).
func (c *CDbw) compactnessAndIntraDensityChange() float64 {
	intra := c.intraDensitySweep()

	var change float64
	for i := 1; i < len(intra); i++ {
		change += math.Abs(intra[i] - intra[i-1])
	}
	c.intraDensityChange = change / float64(len(intra)-1)

	return stat.Mean(intra, nil)
}

// intraDensity is the intra-cluster density at shrink factor s, normalized
// by the cluster count and the root-mean-square stdev over all clusters.
// When every cluster is degenerate (zero stdev) the density is 0.
func (c *CDbw) intraDensity(s float64) float64 {
	k := len(c.clusters)
	var sumSquares float64
	for _, cl := range c.clusters {
		sumSquares += cl.stdev * cl.stdev
	}
	avgStdev := math.Sqrt(sumSquares / float64(k))
	if avgStdev == 0 {
		return 0
	}
	return c.density(s) / (float64(k) * avgStdev)
}

// density sums, over all clusters and their representatives shrunk by s,
// the fraction of the cluster within one stdev of the shrunken point,
// normalized by the representative count.
func (c *CDbw) density(s float64) float64 {
	var sum float64
	for i, cl := range c.clusters {
		for _, sp := range cl.shrunkenRepresentatives(s) {
			sum += c.clusterCardinality(sp, cl.stdev, i)
		}
	}
	return sum / float64(c.r)
}
