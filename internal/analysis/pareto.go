package analysis

// paretoPoint positions one candidate on the benefit/cost plane: higher
// score is better, lower price is better.
type paretoPoint struct {
	Score float64
	Price float64
}

// paretoFlags marks the candidates not dominated by any other candidate.
// O(n²) pairwise check; catalogs are tens of rows.
func paretoFlags(points []paretoPoint) []bool {
	flags := make([]bool, len(points))
	for i := range points {
		dominated := false
		for j := range points {
			if i == j {
				continue
			}
			if dominatesPoint(points[j], points[i]) {
				dominated = true
				break
			}
		}
		flags[i] = !dominated
	}
	return flags
}

// dominatesPoint reports whether a dominates b: at least as good on both
// axes and strictly better on one. Equality on both axes never dominates.
func dominatesPoint(a, b paretoPoint) bool {
	if a.Score < b.Score || a.Price > b.Price {
		return false
	}
	return a.Score > b.Score || a.Price < b.Price
}
