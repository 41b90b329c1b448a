package api

import (
	"net/http"

	"github.com/rigfit/rigfit/internal/analysis"
)

// Presets lists the built-in preference presets.
// GET /api/v1/presets
func Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analysis.Presets())
}
