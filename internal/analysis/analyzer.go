package analysis

import (
	"fmt"
	"log/slog"

	"github.com/rigfit/rigfit/internal/catalog"
)

// Policy bundles the pipeline variants into one explicit configuration
// instead of parallel code paths.
type Policy struct {
	Reduction ReductionPolicy `json:"reduction" yaml:"reduction"`
	Scoring   ScoringPolicy   `json:"scoring" yaml:"scoring"`
	Selection SelectionPolicy `json:"selection" yaml:"selection"`
}

// DefaultPolicy is the row-centered / directional / ideal-point pipeline.
// The plain / normalized-blend / max-score combination is the supported
// alternative.
func DefaultPolicy() Policy {
	return Policy{
		Reduction: ReductionRowCentered,
		Scoring:   ScoringDirectional,
		Selection: SelectionIdealPoint,
	}
}

// Validate rejects unknown policy values.
func (p Policy) Validate() error {
	switch p.Reduction {
	case ReductionRowCentered, ReductionPlain:
	default:
		return fmt.Errorf("unknown reduction policy %q", p.Reduction)
	}
	switch p.Scoring {
	case ScoringDirectional, ScoringBlend:
	default:
		return fmt.Errorf("unknown scoring policy %q", p.Scoring)
	}
	switch p.Selection {
	case SelectionIdealPoint, SelectionMaxScore:
	default:
		return fmt.Errorf("unknown selection policy %q", p.Selection)
	}
	return nil
}

// CandidateResult is one catalog row augmented with every derived column.
type CandidateResult struct {
	Model           string   `json:"model"`
	Price           float64  `json:"price"`
	Component1      float64  `json:"component_1"`
	Component2      float64  `json:"component_2"`
	OverallLevel    float64  `json:"overall_level"`
	PreferenceScore float64  `json:"preference_score"`
	Affordable      bool     `json:"is_affordable"`
	ParetoOptimal   bool     `json:"is_pareto_optimal"`
	DistanceToIdeal *float64 `json:"distance_to_ideal,omitempty"`
}

// Result is the immutable output of one analysis run.
type Result struct {
	Policy     Policy            `json:"policy"`
	Preference Preference        `json:"preference"`
	Reduction  *Reduction        `json:"reduction"`
	Candidates []CandidateResult `json:"candidates"`
	BestIndex  int               `json:"best_index"`
	BestModel  string            `json:"best_model"`
}

// Analyzer runs the two-stage pipeline. It holds no per-run state; every
// call recomputes all derived columns from the catalog snapshot it is given.
type Analyzer struct {
	policy Policy
	logger *slog.Logger
}

// New creates an Analyzer with the given policy.
func New(policy Policy, logger *slog.Logger) *Analyzer {
	return &Analyzer{policy: policy, logger: logger}
}

// Policy returns the analyzer's configured policy.
func (a *Analyzer) Policy() Policy { return a.policy }

// Analyze runs the Reducer and then the Ranker over the catalog snapshot.
func (a *Analyzer) Analyze(rows []catalog.Candidate, pref Preference) (*Result, error) {
	red, err := Reduce(rows, a.policy.Reduction)
	if err != nil {
		return nil, err
	}
	return a.Rank(rows, red, pref)
}

// Rank recomputes scores, the Pareto frontier and the selection against an
// existing reduction. This is the fast path when only the preference or
// budget changed; a reduction must not be reused across catalog edits.
func (a *Analyzer) Rank(rows []catalog.Candidate, red *Reduction, pref Preference) (*Result, error) {
	if len(rows) < catalog.MinCandidates {
		return nil, fmt.Errorf("rank: %w: got %d", catalog.ErrTooFewCandidates, len(rows))
	}
	if red == nil || len(red.Coords) != len(rows) {
		return nil, fmt.Errorf("rank: reduction does not match catalog of %d rows", len(rows))
	}

	n := len(rows)
	affordable := make([]bool, n)
	scope := make([]int, 0, n)
	for i, r := range rows {
		affordable[i] = pref.Affordable(r.Price)
		if affordable[i] {
			scope = append(scope, i)
		}
	}
	withinBudget := len(scope)
	if withinBudget == 0 {
		// nothing fits the budget: score and select over the full catalog
		for i := 0; i < n; i++ {
			scope = append(scope, i)
		}
	}

	scores := scoreAll(a.policy.Scoring, red.Coords, pref, scope)

	points := make([]paretoPoint, n)
	prices := make([]float64, n)
	for i, r := range rows {
		points[i] = paretoPoint{Score: scores[i], Price: r.Price}
		prices[i] = r.Price
	}
	pareto := paretoFlags(points)
	dists := idealDistances(scores, prices, pareto)

	best := selectBest(a.policy.Selection, scores, dists, scope)

	out := make([]CandidateResult, n)
	for i, r := range rows {
		out[i] = CandidateResult{
			Model:           r.Model,
			Price:           r.Price,
			Component1:      red.Coords[i][0],
			Component2:      red.Coords[i][1],
			OverallLevel:    red.OverallLevel[i],
			PreferenceScore: scores[i],
			Affordable:      affordable[i],
			ParetoOptimal:   pareto[i],
			DistanceToIdeal: dists[i],
		}
	}

	if a.logger != nil {
		a.logger.Debug("ranking complete",
			"candidates", n,
			"within_budget", withinBudget,
			"best", rows[best].Model,
		)
	}

	return &Result{
		Policy:     a.policy,
		Preference: pref,
		Reduction:  red,
		Candidates: out,
		BestIndex:  best,
		BestModel:  rows[best].Model,
	}, nil
}
