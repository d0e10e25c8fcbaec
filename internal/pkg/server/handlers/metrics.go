package handlers

import (
	"net/http"

	"github.com/Vodeneev/pokepaste/internal/pkg/performance"
)

// HandleMetrics serves the parse tracker snapshot
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, performance.GetTracker().GetMetrics())
}
