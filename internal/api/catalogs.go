package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rigfit/rigfit/internal/catalog"
	"github.com/rigfit/rigfit/internal/events"
	"github.com/rigfit/rigfit/internal/store"
)

type CatalogsHandler struct {
	store  store.Store
	events events.Client
}

func NewCatalogsHandler(s store.Store, ev events.Client) *CatalogsHandler {
	return &CatalogsHandler{store: s, events: ev}
}

type CreateCatalogRequest struct {
	Name       string              `json:"name"`
	Candidates []catalog.Candidate `json:"candidates"`
}

func (h *CatalogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	if err := catalog.ValidateCandidates(req.Candidates); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c := &catalog.Catalog{Name: req.Name, Candidates: req.Candidates}
	if err := h.store.CreateCatalog(r.Context(), c); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.publishUpdated(events.SubjectCatalogCreated(c.ID.String()), c)
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogsHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.ListCatalogs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"catalogs": summaries})
}

func (h *CatalogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogsHandler) ReplaceCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return
	}

	var rows []catalog.Candidate
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := catalog.ValidateCandidates(rows); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.ReplaceCandidates(r.Context(), id, rows); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.store.GetCatalog(r.Context(), id)
	if err != nil || c == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "catalog reload failed"})
		return
	}
	h.publishUpdated(events.SubjectCatalogUpdated(id.String()), c)
	writeJSON(w, http.StatusOK, c)
}

// ImportCSV replaces a catalog's rows from a text/csv request body.
func (h *CatalogsHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return
	}

	rows, err := catalog.ReadCSV(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := catalog.ValidateCandidates(rows); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.ReplaceCandidates(r.Context(), id, rows); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.store.GetCatalog(r.Context(), id)
	if err != nil || c == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "catalog reload failed"})
		return
	}
	h.publishUpdated(events.SubjectCatalogUpdated(id.String()), c)
	writeJSON(w, http.StatusOK, map[string]interface{}{"imported": len(rows), "catalog_id": id})
}

func (h *CatalogsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+c.Name+`.csv"`)
	if err := catalog.WriteCSV(w, c.Candidates); err != nil {
		// headers are already out; nothing meaningful left to send
		return
	}
}

func (h *CatalogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return
	}
	if err := h.store.DeleteCatalog(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if h.events != nil {
		_ = h.events.Publish(events.SubjectCatalogDeleted(id.String()), map[string]string{"catalog_id": id.String()})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogsHandler) loadCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog id"})
		return nil, false
	}
	c, err := h.store.GetCatalog(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog not found"})
		return nil, false
	}
	return c, true
}

func (h *CatalogsHandler) publishUpdated(subject string, c *catalog.Catalog) {
	if h.events == nil {
		return
	}
	_ = h.events.Publish(subject, events.CatalogUpdatedEvent{
		CatalogID:      c.ID.String(),
		Name:           c.Name,
		CandidateCount: len(c.Candidates),
		UpdatedAt:      c.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
