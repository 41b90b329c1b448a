package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/analysis"
	"github.com/rigfit/rigfit/internal/catalog"
)

func TestStoredAnalysisStale(t *testing.T) {
	version := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sa := &StoredAnalysis{
		CatalogID:      uuid.New(),
		CatalogVersion: version,
		Result:         &analysis.Result{},
	}

	fresh := &catalog.Catalog{UpdatedAt: version}
	if sa.Stale(fresh) {
		t.Error("matching versions should not be stale")
	}

	edited := &catalog.Catalog{UpdatedAt: version.Add(time.Second)}
	if !sa.Stale(edited) {
		t.Error("catalog edited after the analysis should be stale")
	}

	// same instant in another zone still matches
	shifted := &catalog.Catalog{UpdatedAt: version.In(time.FixedZone("JST", 9*3600))}
	if sa.Stale(shifted) {
		t.Error("timezone change alone should not be stale")
	}
}

func TestCatalogSummaryDefaults(t *testing.T) {
	var cs CatalogSummary
	if cs.CandidateCount != 0 {
		t.Errorf("expected 0 default count, got %d", cs.CandidateCount)
	}
	if cs.PriceMin != 0 || cs.PriceMax != 0 {
		t.Error("expected zero default price bounds")
	}
}
