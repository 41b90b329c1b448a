//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/analysis"
	"github.com/rigfit/rigfit/internal/catalog"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE rigfit_analyses CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE rigfit_candidates CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE rigfit_catalogs CASCADE")
		s.Close()
	})

	return s
}

func testRows() []catalog.Candidate {
	return []catalog.Candidate{
		{Model: "worklite", CPUScore: 100, GPUScore: 50, RAMGB: 8, StorageGB: 256, Price: 100000},
		{Model: "gamerpro", CPUScore: 50, GPUScore: 100, RAMGB: 16, StorageGB: 512, Price: 150000},
		{Model: "balance", CPUScore: 80, GPUScore: 80, RAMGB: 16, StorageGB: 512, Price: 90000},
	}
}

func TestCreateAndGetCatalog(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	c := &catalog.Catalog{Name: "integration-lineup", Candidates: testRows()}
	if err := s.CreateCatalog(ctx, c); err != nil {
		t.Fatalf("CreateCatalog failed: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Fatal("expected non-nil catalog ID after create")
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetCatalog(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected catalog, got nil")
	}
	if got.Name != c.Name {
		t.Errorf("name %q, want %q", got.Name, c.Name)
	}
	if len(got.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got.Candidates))
	}
	// row order must survive the round trip
	for i, want := range testRows() {
		if got.Candidates[i].Model != want.Model {
			t.Errorf("row %d: model %q, want %q", i, got.Candidates[i].Model, want.Model)
		}
	}
}

func TestGetCatalogMissing(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetCatalog(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing catalog")
	}
}

func TestReplaceCandidatesBumpsVersion(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	c := &catalog.Catalog{Name: "versioned", Candidates: testRows()}
	if err := s.CreateCatalog(ctx, c); err != nil {
		t.Fatalf("CreateCatalog failed: %v", err)
	}

	if err := s.ReplaceCandidates(ctx, c.ID, testRows()[:2]); err != nil {
		t.Fatalf("ReplaceCandidates failed: %v", err)
	}

	got, err := s.GetCatalog(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if len(got.Candidates) != 2 {
		t.Errorf("expected 2 candidates after replace, got %d", len(got.Candidates))
	}
	if !got.UpdatedAt.After(c.UpdatedAt) {
		t.Error("expected updated_at to advance on replace")
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	c := &catalog.Catalog{Name: "analyzed", Candidates: testRows()}
	if err := s.CreateCatalog(ctx, c); err != nil {
		t.Fatalf("CreateCatalog failed: %v", err)
	}

	an := analysis.New(analysis.DefaultPolicy(), nil)
	res, err := an.Analyze(c.Candidates, analysis.Preference{Axis1: 0.8, Axis2: 0.4})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	sa := &StoredAnalysis{CatalogID: c.ID, CatalogVersion: c.UpdatedAt, Result: res}
	if err := s.SaveAnalysis(ctx, sa); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	if sa.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetAnalysis(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored analysis, got nil")
	}
	if got.Result.BestModel != res.BestModel {
		t.Errorf("best model %q, want %q", got.Result.BestModel, res.BestModel)
	}
	if got.Stale(c) {
		t.Error("snapshot of the current catalog should not be stale")
	}

	// upsert replaces the previous snapshot
	res2, err := an.Analyze(c.Candidates, analysis.Preference{Axis1: -0.9})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	sa2 := &StoredAnalysis{CatalogID: c.ID, CatalogVersion: c.UpdatedAt, Result: res2}
	if err := s.SaveAnalysis(ctx, sa2); err != nil {
		t.Fatalf("SaveAnalysis upsert failed: %v", err)
	}
	got, err = s.GetAnalysis(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got.Result.Preference.Axis1 != -0.9 {
		t.Errorf("expected the newer snapshot, got axis1 %g", got.Result.Preference.Axis1)
	}
}

func TestGetAnalysisMissing(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetAnalysis(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing analysis")
	}
}

func TestDeleteCatalogCascades(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	c := &catalog.Catalog{Name: "doomed", Candidates: testRows()}
	if err := s.CreateCatalog(ctx, c); err != nil {
		t.Fatalf("CreateCatalog failed: %v", err)
	}
	if err := s.DeleteCatalog(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCatalog failed: %v", err)
	}

	got, err := s.GetCatalog(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if got != nil {
		t.Error("expected catalog gone after delete")
	}

	if err := s.DeleteCatalog(ctx, c.ID); err == nil {
		t.Error("expected error deleting a missing catalog")
	}
}
