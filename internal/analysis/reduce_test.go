package analysis

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rigfit/rigfit/internal/catalog"
)

func sampleRows() []catalog.Candidate {
	return []catalog.Candidate{
		{Model: "worklite", CPUScore: 100, GPUScore: 50, RAMGB: 8, StorageGB: 256, Price: 100000},
		{Model: "gamerpro", CPUScore: 50, GPUScore: 100, RAMGB: 16, StorageGB: 512, Price: 150000},
		{Model: "balance", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 90000},
	}
}

func TestReduceTooFewCandidates(t *testing.T) {
	_, err := Reduce([]catalog.Candidate{{Model: "only"}}, ReductionPlain)
	if !errors.Is(err, catalog.ErrTooFewCandidates) {
		t.Errorf("expected ErrTooFewCandidates, got %v", err)
	}
	_, err = Reduce(nil, ReductionRowCentered)
	if !errors.Is(err, catalog.ErrTooFewCandidates) {
		t.Errorf("expected ErrTooFewCandidates for nil rows, got %v", err)
	}
}

func TestReduceDeterministic(t *testing.T) {
	for _, policy := range []ReductionPolicy{ReductionPlain, ReductionRowCentered} {
		a, err := Reduce(sampleRows(), policy)
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		b, err := Reduce(sampleRows(), policy)
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: repeated reduction differs", policy)
		}
	}
}

func TestReduceVarianceRatios(t *testing.T) {
	red, err := Reduce(sampleRows(), ReductionPlain)
	if err != nil {
		t.Fatal(err)
	}
	if red.Retained != 2 {
		t.Fatalf("expected 2 retained axes, got %d", red.Retained)
	}
	var sum float64
	for k, ax := range red.Axes {
		if ax.VarianceRatio < 0 || ax.VarianceRatio > 1 {
			t.Errorf("axis %d ratio %f outside [0,1]", k, ax.VarianceRatio)
		}
		sum += ax.VarianceRatio
	}
	if sum > 1+1e-9 {
		t.Errorf("variance ratios sum to %f, expected <= 1", sum)
	}
	if red.Axes[0].VarianceRatio < red.Axes[1].VarianceRatio {
		t.Error("axis 1 should explain at least as much variance as axis 2")
	}
}

func TestReduceSignConvention(t *testing.T) {
	red, err := Reduce(sampleRows(), ReductionRowCentered)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < red.Retained; k++ {
		maxIdx := 0
		for j, v := range red.Axes[k].Loadings {
			if math.Abs(v) > math.Abs(red.Axes[k].Loadings[maxIdx]) {
				maxIdx = j
			}
		}
		if red.Axes[k].Loadings[maxIdx] < 0 {
			t.Errorf("axis %d: largest loading is negative", k)
		}
	}
}

func TestReduceTwoCandidates(t *testing.T) {
	rows := sampleRows()[:2]
	red, err := Reduce(rows, ReductionPlain)
	if err != nil {
		t.Fatal(err)
	}
	if red.Retained != 1 {
		t.Fatalf("two centered points span one direction, got %d axes", red.Retained)
	}
	for i := range rows {
		if red.Coords[i][1] != 0 {
			t.Errorf("row %d: second coordinate %g, expected exactly 0", i, red.Coords[i][1])
		}
	}
	if red.Axes[1].Label != "none" {
		t.Errorf("unused axis labeled %q, expected none", red.Axes[1].Label)
	}
	// centered projections of two points are mirror images
	if math.Abs(red.Coords[0][0]+red.Coords[1][0]) > 1e-9 {
		t.Errorf("coords %f and %f should be symmetric about zero", red.Coords[0][0], red.Coords[1][0])
	}
}

func TestReduceIdenticalRows(t *testing.T) {
	rows := []catalog.Candidate{
		{Model: "a", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 100000},
		{Model: "b", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 100000},
		{Model: "c", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 100000},
	}
	red, err := Reduce(rows, ReductionRowCentered)
	if err != nil {
		t.Fatal(err)
	}
	if red.Retained != 0 {
		t.Errorf("no variance means no usable axes, got %d", red.Retained)
	}
	for i := range rows {
		if red.Coords[i][0] != 0 || red.Coords[i][1] != 0 {
			t.Errorf("row %d: coords %v, expected origin", i, red.Coords[i])
		}
		if red.OverallLevel[i] != 0 {
			t.Errorf("row %d: overall level %g, expected 0", i, red.OverallLevel[i])
		}
	}
}

func TestReduceSingleVaryingColumn(t *testing.T) {
	rows := []catalog.Candidate{
		{Model: "a", CPUScore: 50, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 90000},
		{Model: "b", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 110000},
		{Model: "c", CPUScore: 110, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 130000},
	}
	red, err := Reduce(rows, ReductionPlain)
	if err != nil {
		t.Fatal(err)
	}
	if red.Retained != 1 {
		t.Fatalf("one varying column spans one direction, got %d axes", red.Retained)
	}
	if math.Abs(red.Axes[0].Loadings[0]-1) > 1e-9 {
		t.Errorf("cpu loading %f, expected 1", red.Axes[0].Loadings[0])
	}
	for j := 1; j < catalog.FeatureCount; j++ {
		if math.Abs(red.Axes[0].Loadings[j]) > 1e-9 {
			t.Errorf("loading %d is %f, expected 0", j, red.Axes[0].Loadings[j])
		}
	}
	if red.Axes[0].Label != "overall level" {
		t.Errorf("label %q, expected overall level", red.Axes[0].Label)
	}
}

func TestReduceOverallLevelOrdering(t *testing.T) {
	rows := []catalog.Candidate{
		{Model: "budget", CPUScore: 40, GPUScore: 40, RAMGB: 8, StorageGB: 256, Price: 60000},
		{Model: "flagship", CPUScore: 120, GPUScore: 120, RAMGB: 32, StorageGB: 1024, Price: 250000},
		{Model: "middle", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 120000},
	}
	red, err := Reduce(rows, ReductionRowCentered)
	if err != nil {
		t.Fatal(err)
	}
	if !(red.OverallLevel[1] > red.OverallLevel[2] && red.OverallLevel[2] > red.OverallLevel[0]) {
		t.Errorf("overall levels %v should order flagship > middle > budget", red.OverallLevel)
	}
}

func TestStandardize(t *testing.T) {
	std, overall := standardize(sampleRows())
	n := len(std)
	for j := 0; j < catalog.FeatureCount; j++ {
		var mean, ss float64
		for i := 0; i < n; i++ {
			mean += std[i][j]
		}
		mean /= float64(n)
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %d mean %g, expected 0", j, mean)
		}
		for i := 0; i < n; i++ {
			dv := std[i][j] - mean
			ss += dv * dv
		}
		if sd := math.Sqrt(ss / float64(n)); math.Abs(sd-1) > 1e-9 {
			t.Errorf("column %d sd %g, expected 1", j, sd)
		}
	}
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < catalog.FeatureCount; j++ {
			sum += std[i][j]
		}
		if math.Abs(overall[i]-sum/catalog.FeatureCount) > 1e-12 {
			t.Errorf("row %d overall %g does not match row mean", i, overall[i])
		}
	}
}

func TestStabilizeSign(t *testing.T) {
	loadings := []float64{-0.8, 0.3, 0, 0.1}
	stabilizeSign(loadings)
	want := []float64{0.8, -0.3, 0, -0.1}
	if !reflect.DeepEqual(loadings, want) {
		t.Errorf("got %v, want %v", loadings, want)
	}

	unchanged := []float64{0.1, 0.9, -0.2, 0}
	stabilizeSign(unchanged)
	if unchanged[1] != 0.9 {
		t.Error("positive dominant loading should not flip")
	}
}

func TestAxisLabel(t *testing.T) {
	tests := []struct {
		name     string
		loadings []float64
		want     string
	}{
		{"cpu vs gpu", []float64{0.7, -0.7, 0.1, 0}, "GPU ↔ CPU"},
		{"strongest negative wins", []float64{0.3, -0.3, -0.6, 0}, "RAM ↔ CPU"},
		{"all positive", []float64{0.5, 0.5, 0.5, 0.5}, "overall level"},
		{"below threshold", []float64{0.2, -0.2, 0.1, 0}, "overall level"},
		{"ssd vs ram", []float64{0, 0.1, -0.5, 0.8}, "RAM ↔ SSD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := axisLabel(tt.loadings); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
