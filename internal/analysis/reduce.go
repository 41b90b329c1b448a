package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/rigfit/rigfit/internal/catalog"
)

// ReductionPolicy selects how the feature matrix is prepared before the
// principal axes are extracted.
type ReductionPolicy string

const (
	// ReductionRowCentered subtracts each row's own mean from its
	// standardized features before the decomposition. Axis 1 then
	// describes configuration skew (CPU-heavy vs GPU-heavy and so on)
	// rather than overall performance level.
	ReductionRowCentered ReductionPolicy = "row_centered"
	// ReductionPlain decomposes the standardized features directly, so
	// axis 1 usually captures overall performance level.
	ReductionPlain ReductionPolicy = "plain"
)

// maxAxes is the number of retained principal axes.
const maxAxes = 2

// axisLabelThreshold is the minimum loading magnitude an attribute needs to
// appear in an axis label.
const axisLabelThreshold = 0.25

// svTolerance separates real singular values from numerical noise; axes at
// or below it are unusable and their coordinates are pinned to zero.
const svTolerance = 1e-10

// Axis is one retained principal direction in standardized-feature space.
type Axis struct {
	Loadings      []float64 `json:"loadings"`
	VarianceRatio float64   `json:"variance_ratio"`
	Label         string    `json:"label"`
}

// Reduction is the output of one reduction run over a catalog snapshot:
// the retained axes plus every candidate's projected coordinates. It is
// recomputed in full on every analysis; any catalog edit invalidates it.
type Reduction struct {
	Policy       ReductionPolicy    `json:"policy"`
	Axes         []Axis             `json:"axes"`
	Retained     int                `json:"retained"`
	Coords       [][maxAxes]float64 `json:"coords"`
	OverallLevel []float64          `json:"overall_level"`
}

// Reduce standardizes the four spec dimensions across the catalog and
// projects every candidate onto the dominant variance directions.
func Reduce(rows []catalog.Candidate, policy ReductionPolicy) (*Reduction, error) {
	if len(rows) < catalog.MinCandidates {
		return nil, fmt.Errorf("reduce: %w: got %d", catalog.ErrTooFewCandidates, len(rows))
	}

	n := len(rows)
	d := catalog.FeatureCount

	std, overall := standardize(rows)

	data := make([]float64, n*d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := std[i][j]
			if policy == ReductionRowCentered {
				v -= overall[i]
			}
			data[i*d+j] = v
		}
	}
	m := mat.NewDense(n, d, data)
	centerColumns(m)

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, fmt.Errorf("reduce: svd factorization failed")
	}
	sv := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	var totalVar float64
	for _, s := range sv {
		totalVar += s * s
	}

	retainable := maxAxes
	if n < retainable {
		retainable = n
	}

	red := &Reduction{
		Policy:       policy,
		Axes:         make([]Axis, maxAxes),
		Coords:       make([][maxAxes]float64, n),
		OverallLevel: overall,
	}

	tol := svTolerance * math.Max(sv[0], 1)
	for k := 0; k < maxAxes; k++ {
		axis := Axis{Loadings: make([]float64, d), Label: "none"}
		if k < retainable && k < len(sv) && sv[k] > tol {
			for j := 0; j < d; j++ {
				axis.Loadings[j] = v.At(j, k)
			}
			stabilizeSign(axis.Loadings)
			if totalVar > 0 {
				axis.VarianceRatio = sv[k] * sv[k] / totalVar
			}
			axis.Label = axisLabel(axis.Loadings)
			for i := 0; i < n; i++ {
				var c float64
				for j := 0; j < d; j++ {
					c += m.At(i, j) * axis.Loadings[j]
				}
				red.Coords[i][k] = c
			}
			red.Retained++
		}
		red.Axes[k] = axis
	}
	return red, nil
}

// standardize transforms each feature column to zero mean and unit variance
// (population standard deviation) and returns the matrix together with each
// row's mean across the standardized features — the overall performance
// level. A zero-variance column standardizes to all zeros.
func standardize(rows []catalog.Candidate) ([][]float64, []float64) {
	n := len(rows)
	d := catalog.FeatureCount

	cols := make([][]float64, d)
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	for i, r := range rows {
		f := r.Features()
		for j := 0; j < d; j++ {
			cols[j][i] = f[j]
		}
	}

	std := make([][]float64, n)
	for i := range std {
		std[i] = make([]float64, d)
	}
	for j := 0; j < d; j++ {
		mean := stat.Mean(cols[j], nil)
		var ss float64
		for _, v := range cols[j] {
			dv := v - mean
			ss += dv * dv
		}
		sd := math.Sqrt(ss / float64(n))
		if sd > 0 {
			for i := 0; i < n; i++ {
				std[i][j] = (cols[j][i] - mean) / sd
			}
		}
	}

	overall := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < d; j++ {
			sum += std[i][j]
		}
		overall[i] = sum / float64(d)
	}
	return std, overall
}

func centerColumns(m *mat.Dense) {
	r, c := m.Dims()
	for j := 0; j < c; j++ {
		mean := stat.Mean(mat.Col(nil, j, m), nil)
		for i := 0; i < r; i++ {
			m.Set(i, j, m.At(i, j)-mean)
		}
	}
}

// stabilizeSign flips an axis so its largest-magnitude loading is positive.
// The decomposition leaves each axis sign arbitrary; this pins it so a fixed
// input always yields the same axes.
func stabilizeSign(loadings []float64) {
	maxIdx := 0
	for j, v := range loadings {
		if math.Abs(v) > math.Abs(loadings[maxIdx]) {
			maxIdx = j
		}
	}
	if loadings[maxIdx] < 0 {
		for j := range loadings {
			loadings[j] = -loadings[j]
		}
	}
}

// axisLabel phrases an axis by its dominant loadings, low side to high side,
// e.g. "GPU ↔ CPU" for an axis trading GPU weight against CPU weight. An
// axis whose significant loadings all share one sign measures overall
// magnitude rather than a trade-off.
func axisLabel(loadings []float64) string {
	posIdx, negIdx := -1, -1
	for j, v := range loadings {
		if v >= axisLabelThreshold && (posIdx < 0 || v > loadings[posIdx]) {
			posIdx = j
		}
		if v <= -axisLabelThreshold && (negIdx < 0 || v < loadings[negIdx]) {
			negIdx = j
		}
	}
	if posIdx >= 0 && negIdx >= 0 {
		return catalog.FeatureDisplayNames[negIdx] + " ↔ " + catalog.FeatureDisplayNames[posIdx]
	}
	return "overall level"
}
