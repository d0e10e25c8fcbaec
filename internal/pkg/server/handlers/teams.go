package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Vodeneev/pokepaste/internal/pkg/storage"
)

// GetTeam handles GET /teams/{id}
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "team storage is not configured", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := h.storage.GetTeam(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrTeamNotFound) {
		respondError(w, http.StatusNotFound, "team not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get team", err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// ListTeams handles GET /teams?limit=N
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "team storage is not configured", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := parseIntParam(r, "limit", 50)
	teams, err := h.storage.ListTeams(ctx, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list teams", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
		"limit": limit,
	})
}
