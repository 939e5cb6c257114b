package cdbw

import "sync"

// computeRCRs fills the RCR table, fanning the independent (i, j) cells
// out across workers. Each cell is written by exactly one goroutine and
// all shared state (points, representatives) is read-only during the
// fan-out, so the result is bitwise identical to the sequential path.
// Falls back to computeRCRsSequential when workers <= 1 or the pair count
// is too small to be worth the goroutines.
func (c *CDbw) computeRCRs() *rcrTable {
	k := len(c.clusters)
	numPairs := k * (k - 1)
	if c.workers <= 1 || numPairs < 4 {
		return c.computeRCRsSequential()
	}

	type clusterPair struct{ i, j int }
	pairs := make([]clusterPair, 0, numPairs)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if i != j {
				pairs = append(pairs, clusterPair{i, j})
			}
		}
	}

	t := newRCRTable(k)

	var wg sync.WaitGroup
	perWorker := (len(pairs) + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(pairs))
		if start >= len(pairs) {
			break
		}

		wg.Add(1)
		go func(chunk []clusterPair) {
			defer wg.Done()
			for _, p := range chunk {
				t.set(p.i, p.j, computeRCR(c.points, c.clusters[p.i], c.clusters[p.j]))
			}
		}(pairs[start:end])
	}

	wg.Wait()
	return t
}

// intraDensitySweep evaluates the intra-cluster density at every shrink
// factor. The samples are independent and only read shared cluster state,
// so with workers > 1 they are split into contiguous chunks across
// goroutines; each slot of the result is written by exactly one goroutine
// and the output is bitwise identical to the sequential path.
func (c *CDbw) intraDensitySweep() []float64 {
	out := make([]float64, len(shrinkFactors))

	if c.workers <= 1 {
		for i, s := range shrinkFactors {
			out[i] = c.intraDensity(s)
		}
		return out
	}

	var wg sync.WaitGroup
	perWorker := (len(shrinkFactors) + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(shrinkFactors))
		if start >= len(shrinkFactors) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = c.intraDensity(shrinkFactors[i])
			}
		}(start, end)
	}

	wg.Wait()
	return out
}
