package analysis

import "math"

// ScoringPolicy selects how preference weights and reduced coordinates
// combine into a scalar preference score.
type ScoringPolicy string

const (
	// ScoringDirectional scores each candidate by the dot product of the
	// preference vector and its reduced coordinates: candidates sitting in
	// the requested direction score highest. Unbounded in sign and size.
	ScoringDirectional ScoringPolicy = "directional"
	// ScoringBlend fixes half the score to reward raw axis-1 position and
	// steers the other half with the axis-2 weight, after min-max
	// rescaling both axes to [-1, 1] over the affordable subset.
	ScoringBlend ScoringPolicy = "normalized_blend"
)

// rangeEpsilon is the smallest coordinate spread treated as a real range.
const rangeEpsilon = 1e-9

// Preference is the user-tunable input to the ranking stage.
type Preference struct {
	Axis1  float64 `json:"axis1"`  // [-1, 1]
	Axis2  float64 `json:"axis2"`  // [-1, 1]
	Budget float64 `json:"budget"` // <= 0 means unlimited
}

// Unlimited reports whether no budget constraint is in effect.
func (p Preference) Unlimited() bool { return p.Budget <= 0 }

// Affordable reports whether a price fits the budget.
func (p Preference) Affordable(price float64) bool {
	return p.Unlimited() || price <= p.Budget
}

// scoreAll computes the preference score for every row. scope lists the row
// indices whose coordinate spread anchors the blend normalization; the
// directional policy ignores it.
func scoreAll(policy ScoringPolicy, coords [][maxAxes]float64, pref Preference, scope []int) []float64 {
	scores := make([]float64, len(coords))
	switch policy {
	case ScoringBlend:
		lo1, hi1 := coordRange(coords, scope, 0)
		lo2, hi2 := coordRange(coords, scope, 1)
		for i, c := range coords {
			c1 := rescale(c[0], lo1, hi1)
			c2 := rescale(c[1], lo2, hi2)
			scores[i] = 0.5*c1 + 0.5*pref.Axis2*c2
		}
	default:
		for i, c := range coords {
			scores[i] = pref.Axis1*c[0] + pref.Axis2*c[1]
		}
	}
	return scores
}

func coordRange(coords [][maxAxes]float64, scope []int, k int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, i := range scope {
		v := coords[i][k]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// rescale maps v from [lo, hi] to [-1, 1]. A zero range reads as the
// midpoint rather than a division by zero.
func rescale(v, lo, hi float64) float64 {
	norm := 0.5
	if hi-lo > rangeEpsilon {
		norm = (v - lo) / (hi - lo)
	}
	return (norm - 0.5) * 2
}
