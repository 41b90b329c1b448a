package events

import "time"

type CatalogUpdatedEvent struct {
	CatalogID      string    `json:"catalog_id"`
	Name           string    `json:"name,omitempty"`
	CandidateCount int       `json:"candidate_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AnalysisCompletedEvent struct {
	CatalogID  string  `json:"catalog_id"`
	BestModel  string  `json:"best_model"`
	BestPrice  float64 `json:"best_price"`
	Candidates int     `json:"candidates"`
	Reused     bool    `json:"reused_reduction"`
	DurationMs int64   `json:"duration_ms"`
}
