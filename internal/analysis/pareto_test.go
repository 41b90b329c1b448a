package analysis

import "testing"

func TestDominatesPoint(t *testing.T) {
	tests := []struct {
		name string
		a, b paretoPoint
		want bool
	}{
		{"better score same price", paretoPoint{2, 100}, paretoPoint{1, 100}, true},
		{"same score lower price", paretoPoint{1, 50}, paretoPoint{1, 100}, true},
		{"better on both", paretoPoint{2, 50}, paretoPoint{1, 100}, true},
		{"equal never dominates", paretoPoint{1, 100}, paretoPoint{1, 100}, false},
		{"worse score", paretoPoint{0, 50}, paretoPoint{1, 100}, false},
		{"trade-off", paretoPoint{2, 200}, paretoPoint{1, 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dominatesPoint(tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParetoFlagsEqualScores(t *testing.T) {
	// equal scores reduce the frontier to the cheapest candidate
	points := []paretoPoint{
		{Score: 0, Price: 100000},
		{Score: 0, Price: 150000},
		{Score: 0, Price: 90000},
	}
	flags := paretoFlags(points)
	want := []bool{false, false, true}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flags[%d] = %v, want %v", i, flags[i], want[i])
		}
	}
}

func TestParetoFlagsFrontier(t *testing.T) {
	points := []paretoPoint{
		{Score: 3, Price: 100},
		{Score: 2, Price: 50},
		{Score: 1, Price: 200}, // beaten on both axes by the second point
	}
	flags := paretoFlags(points)
	want := []bool{true, true, false}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flags[%d] = %v, want %v", i, flags[i], want[i])
		}
	}
}

func TestParetoFlagsIdenticalPoints(t *testing.T) {
	points := []paretoPoint{{Score: 1, Price: 100}, {Score: 1, Price: 100}}
	flags := paretoFlags(points)
	if !flags[0] || !flags[1] {
		t.Errorf("identical points must both stay optimal, got %v", flags)
	}
}

func TestParetoFlagsSinglePoint(t *testing.T) {
	flags := paretoFlags([]paretoPoint{{Score: 0, Price: 1}})
	if !flags[0] {
		t.Error("a lone candidate is always optimal")
	}
}
