package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/analysis"
	"github.com/rigfit/rigfit/internal/catalog"
	"github.com/rigfit/rigfit/internal/config"
	"github.com/rigfit/rigfit/internal/events"
	"github.com/rigfit/rigfit/internal/store"
)

type AnalyzeHandler struct {
	store    store.Store
	events   events.Client
	policy   analysis.Policy
	defaults analysis.Preference
	logger   *slog.Logger
}

func NewAnalyzeHandler(s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		store:    s,
		events:   ev,
		policy:   cfg.Policy(),
		defaults: cfg.DefaultPreference(),
		logger:   logger,
	}
}

// AnalyzeRequest tunes one analysis run. Unset fields fall back to the
// configured defaults; a preset seeds the weights before explicit overrides
// apply.
type AnalyzeRequest struct {
	Preset string           `json:"preset,omitempty"`
	Axis1  *float64         `json:"axis1,omitempty"`
	Axis2  *float64         `json:"axis2,omitempty"`
	Budget *float64         `json:"budget,omitempty"`
	Policy *analysis.Policy `json:"policy,omitempty"`
}

func (h *AnalyzeHandler) preference(req AnalyzeRequest) (analysis.Preference, bool) {
	pref := h.defaults
	if req.Preset != "" {
		p, ok := analysis.PresetByName(req.Preset)
		if !ok {
			return pref, false
		}
		pref.Axis1 = p.Axis1
		pref.Axis2 = p.Axis2
	}
	if req.Axis1 != nil {
		pref.Axis1 = *req.Axis1
	}
	if req.Axis2 != nil {
		pref.Axis2 = *req.Axis2
	}
	if req.Budget != nil {
		pref.Budget = *req.Budget
	}
	return pref, true
}

func (h *AnalyzeHandler) analyzer(req AnalyzeRequest) (*analysis.Analyzer, error) {
	policy := h.policy
	if req.Policy != nil {
		policy = *req.Policy
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return analysis.New(policy, h.logger), nil
}

// Analyze runs the full pipeline over the catalog's current snapshot and
// persists the result as the catalog's latest analysis.
// POST /api/v1/catalogs/{id}/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return
	}

	var req AnalyzeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	pref, ok := h.preference(req)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown preset: " + req.Preset})
		return
	}
	an, err := h.analyzer(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.store.GetCatalog(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog not found"})
		return
	}
	if len(c.Candidates) < catalog.MinCandidates {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": catalog.ErrTooFewCandidates.Error()})
		return
	}

	start := time.Now()
	res, err := an.Analyze(c.Candidates, pref)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	h.finish(w, r, c, res, start, false)
}

// Rank re-scores against the stored reduction without re-running the
// Reducer. Valid only while the catalog is unchanged since the last analyze.
// POST /api/v1/catalogs/{id}/rank
func (h *AnalyzeHandler) Rank(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return
	}

	var req AnalyzeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	pref, ok := h.preference(req)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown preset: " + req.Preset})
		return
	}
	an, err := h.analyzer(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.store.GetCatalog(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog not found"})
		return
	}

	prev, err := h.store.GetAnalysis(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if prev == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no prior analysis; run analyze first"})
		return
	}
	if prev.Stale(c) || prev.Result.Reduction.Policy != an.Policy().Reduction {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "stored reduction is stale; run analyze"})
		return
	}

	start := time.Now()
	res, err := an.Rank(c.Candidates, prev.Result.Reduction, pref)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	h.finish(w, r, c, res, start, true)
}

func (h *AnalyzeHandler) finish(w http.ResponseWriter, r *http.Request, c *catalog.Catalog, res *analysis.Result, start time.Time, reused bool) {
	elapsed := time.Since(start)
	recordAnalysis(string(res.Policy.Scoring), reused, elapsed)

	sa := &store.StoredAnalysis{
		CatalogID:      c.ID,
		CatalogVersion: c.UpdatedAt,
		Result:         res,
	}
	if err := h.store.SaveAnalysis(r.Context(), sa); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectAnalysisCompleted(c.ID.String()), events.AnalysisCompletedEvent{
			CatalogID:  c.ID.String(),
			BestModel:  res.BestModel,
			BestPrice:  res.Candidates[res.BestIndex].Price,
			Candidates: len(res.Candidates),
			Reused:     reused,
			DurationMs: elapsed.Milliseconds(),
		})
	}

	h.logger.Info("analysis complete",
		"catalog", c.ID,
		"best", res.BestModel,
		"reused_reduction", reused,
		"duration_ms", elapsed.Milliseconds(),
	)
	writeJSON(w, http.StatusOK, res)
}
