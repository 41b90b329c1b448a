package analysis

import "math"

// SelectionPolicy picks how the single best candidate is chosen.
type SelectionPolicy string

const (
	// SelectionIdealPoint ranks Pareto-optimal candidates by Euclidean
	// distance to the best achievable (score, price) corner.
	SelectionIdealPoint SelectionPolicy = "ideal_point"
	// SelectionMaxScore picks the highest preference score outright.
	SelectionMaxScore SelectionPolicy = "max_score"
)

// idealDistances computes, for each Pareto-optimal candidate, the distance
// to the ideal point at (max score, min price). Score and log-price are
// min-max normalized independently over the full candidate set; an axis with
// zero range contributes nothing. Non-Pareto entries stay nil.
func idealDistances(scores, prices []float64, pareto []bool) []*float64 {
	n := len(scores)
	logPrices := make([]float64, n)
	for i, p := range prices {
		logPrices[i] = math.Log(p)
	}

	sLo, sHi := sliceRange(scores)
	pLo, pHi := sliceRange(logPrices)

	dists := make([]*float64, n)
	for i := 0; i < n; i++ {
		if !pareto[i] {
			continue
		}
		ds := axisGap(scores[i], sLo, sHi, sHi)
		dp := axisGap(logPrices[i], pLo, pHi, pLo)
		d := math.Sqrt(ds*ds + dp*dp)
		dists[i] = &d
	}
	return dists
}

// axisGap is the normalized distance between v and the ideal value on one
// axis, zero when the whole axis has zero range.
func axisGap(v, lo, hi, ideal float64) float64 {
	if hi-lo <= rangeEpsilon {
		return 0
	}
	return math.Abs(v-ideal) / (hi - lo)
}

func sliceRange(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// selectBest returns the winning row index within scope. Ties break to the
// earliest catalog position: scope is ascending and only strict improvements
// move the pick.
func selectBest(policy SelectionPolicy, scores []float64, dists []*float64, scope []int) int {
	if policy == SelectionIdealPoint {
		best := -1
		for _, i := range scope {
			if dists[i] == nil {
				continue
			}
			if best < 0 || *dists[i] < *dists[best] {
				best = i
			}
		}
		if best >= 0 {
			return best
		}
		// no Pareto member in scope; fall back to score ranking
	}
	best := scope[0]
	for _, i := range scope[1:] {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
