package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/analysis"
	"github.com/rigfit/rigfit/internal/catalog"
)

// CatalogSummary is the list-view projection of a catalog.
type CatalogSummary struct {
	ID             uuid.UUID `json:"catalog_id"`
	Name           string    `json:"name"`
	CandidateCount int       `json:"candidate_count"`
	PriceMin       float64   `json:"price_min"`
	PriceMax       float64   `json:"price_max"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StoredAnalysis is the persisted snapshot of the most recent analysis run
// for one catalog. CatalogVersion records the catalog's UpdatedAt at analysis
// time; a mismatch means the reduction is stale and must not be reused.
type StoredAnalysis struct {
	CatalogID      uuid.UUID        `json:"catalog_id"`
	CatalogVersion time.Time        `json:"catalog_version"`
	Result         *analysis.Result `json:"result"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Stale reports whether the snapshot predates the given catalog state.
func (sa *StoredAnalysis) Stale(cat *catalog.Catalog) bool {
	return !sa.CatalogVersion.Equal(cat.UpdatedAt)
}

type Store interface {
	CreateCatalog(ctx context.Context, c *catalog.Catalog) error
	GetCatalog(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error)
	ListCatalogs(ctx context.Context) ([]CatalogSummary, error)
	ReplaceCandidates(ctx context.Context, id uuid.UUID, rows []catalog.Candidate) error
	DeleteCatalog(ctx context.Context, id uuid.UUID) error

	SaveAnalysis(ctx context.Context, sa *StoredAnalysis) error
	GetAnalysis(ctx context.Context, catalogID uuid.UUID) (*StoredAnalysis, error)

	Close() error
}
