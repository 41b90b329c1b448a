package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FeatureCount is the number of spec dimensions fed into the reduction.
const FeatureCount = 4

// MinCandidates is the smallest catalog for which a reduction is meaningful.
const MinCandidates = 2

// FeatureColumns lists the reduced spec dimensions in their fixed order.
var FeatureColumns = [FeatureCount]string{"cpu_score", "gpu_score", "ram_gb", "storage_gb"}

// FeatureDisplayNames are the short names used when labeling principal axes.
var FeatureDisplayNames = [FeatureCount]string{"CPU", "GPU", "RAM", "SSD"}

var (
	ErrTooFewCandidates = errors.New("catalog needs at least 2 candidates")
	ErrEmptyModel       = errors.New("model name is empty")
	ErrDuplicateModel   = errors.New("duplicate model name")
	ErrNegativeSpec     = errors.New("spec values must be non-negative")
	ErrNonPositivePrice = errors.New("price must be positive")
)

// Candidate is one row of the catalog: a purchasable configuration with its
// four benchmark dimensions and a price.
type Candidate struct {
	Model     string  `json:"model"`
	CPUScore  float64 `json:"cpu_score"`
	GPUScore  float64 `json:"gpu_score"`
	RAMGB     float64 `json:"ram_gb"`
	StorageGB float64 `json:"storage_gb"`
	Price     float64 `json:"price"`
}

// Features returns the four spec dimensions in FeatureColumns order.
func (c Candidate) Features() [FeatureCount]float64 {
	return [FeatureCount]float64{c.CPUScore, c.GPUScore, c.RAMGB, c.StorageGB}
}

// Catalog is an ordered set of candidates. Row order is preserved because
// ranking tie-breaks resolve to the earliest row.
type Catalog struct {
	ID         uuid.UUID   `json:"catalog_id"`
	Name       string      `json:"name"`
	Candidates []Candidate `json:"candidates"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Validate checks the catalog against the analysis preconditions.
func (c *Catalog) Validate() error {
	return ValidateCandidates(c.Candidates)
}

// ValidateCandidates enforces the input contract of the pipeline: at least
// two rows, unique non-empty model names, non-negative specs, positive price.
func ValidateCandidates(rows []Candidate) error {
	if len(rows) < MinCandidates {
		return fmt.Errorf("%w: got %d", ErrTooFewCandidates, len(rows))
	}
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		if r.Model == "" {
			return fmt.Errorf("row %d: %w", i, ErrEmptyModel)
		}
		if _, ok := seen[r.Model]; ok {
			return fmt.Errorf("row %d: %w: %q", i, ErrDuplicateModel, r.Model)
		}
		seen[r.Model] = struct{}{}
		for j, v := range r.Features() {
			if v < 0 {
				return fmt.Errorf("row %d (%s): %w: %s=%g", i, r.Model, ErrNegativeSpec, FeatureColumns[j], v)
			}
		}
		if r.Price <= 0 {
			return fmt.Errorf("row %d (%s): %w: price=%g", i, r.Model, ErrNonPositivePrice, r.Price)
		}
	}
	return nil
}
