package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/store"
)

type ExplainHandler struct {
	store store.Store
}

func NewExplainHandler(s store.Store) *ExplainHandler {
	return &ExplainHandler{store: s}
}

// ExplainResponse exposes the stored analysis plus its staleness relative to
// the catalog's current snapshot.
type ExplainResponse struct {
	*store.StoredAnalysis
	Stale bool `json:"stale"`
}

// Explain returns the last persisted analysis for a catalog.
// GET /api/v1/catalogs/{id}/explain
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
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

	sa, err := h.store.GetAnalysis(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sa == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analysis stored for catalog"})
		return
	}

	writeJSON(w, http.StatusOK, ExplainResponse{StoredAnalysis: sa, Stale: sa.Stale(c)})
}
