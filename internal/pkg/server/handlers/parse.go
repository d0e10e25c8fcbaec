package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
	"github.com/Vodeneev/pokepaste/internal/pkg/performance"
	"github.com/Vodeneev/pokepaste/internal/pkg/storage"
)

const maxPasteSize = 1 << 20

// ParseRequest is the JSON form of a POST /parse body
type ParseRequest struct {
	Text   string `json:"text"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Format string `json:"format,omitempty"`
}

// CreateTeamResponse is returned by POST /teams
type CreateTeamResponse struct {
	ID   string       `json:"id"`
	Team *models.Team `json:"team"`
}

// Handler serves the parse and team endpoints
type Handler struct {
	parser  *pokepaste.Parser
	fetcher pokepaste.Fetcher
	storage storage.TeamStorage
	timeout time.Duration
}

// NewHandler wires the handler. storage may be nil, in which case /teams answers 503.
func NewHandler(parser *pokepaste.Parser, fetcher pokepaste.Fetcher, store storage.TeamStorage, timeout time.Duration) *Handler {
	if parser == nil {
		parser = &pokepaste.Parser{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{parser: parser, fetcher: fetcher, storage: store, timeout: timeout}
}

// ParseText handles POST /parse
func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	res, err := h.parseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	respondJSON(w, statusForResult(res, http.StatusOK), res)
}

// ParseURL handles GET /parse?url=<locator>
func (h *Handler) ParseURL(w http.ResponseWriter, r *http.Request) {
	locator := strings.TrimSpace(r.URL.Query().Get("url"))
	if locator == "" {
		respondError(w, http.StatusBadRequest, "url query parameter is required", nil)
		return
	}
	res := h.fetchAndParse(r.Context(), locator)
	respondJSON(w, statusForResult(res, http.StatusOK), res)
}

// CreateTeam handles POST /teams: parse from ?url= or the body, then store
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "team storage is not configured", nil)
		return
	}

	var res models.Result
	if locator := strings.TrimSpace(r.URL.Query().Get("url")); locator != "" {
		res = h.fetchAndParse(r.Context(), locator)
	} else {
		var err error
		if res, err = h.parseRequest(r); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}
	if !res.Success {
		respondJSON(w, statusForResult(res, http.StatusCreated), res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id, err := h.storage.StoreTeam(ctx, res.Data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store team", err)
		return
	}
	respondJSON(w, http.StatusCreated, CreateTeamResponse{ID: id, Team: res.Data})
}

func (h *Handler) parseRequest(r *http.Request) (models.Result, error) {
	text, meta, err := readPaste(r)
	if err != nil {
		return models.Result{}, err
	}
	start := time.Now()
	res := h.parser.ParseText(text, meta)
	performance.GetTracker().RecordParse(res, time.Since(start))
	return res, nil
}

func (h *Handler) fetchAndParse(ctx context.Context, locator string) models.Result {
	if h.fetcher == nil {
		return models.Fail(&pokepaste.UnexpectedError{Op: "parse url", Err: errors.New("no fetcher configured")})
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	res := h.parser.ParseURL(ctx, h.fetcher, locator)
	performance.GetTracker().RecordParse(res, time.Since(start))
	return res
}

// readPaste accepts either a raw text body or a JSON ParseRequest
func readPaste(r *http.Request) (string, *pokepaste.Metadata, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPasteSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxPasteSize {
		return "", nil, fmt.Errorf("paste exceeds %d bytes", maxPasteSize)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return string(body), nil, nil
	}

	var req ParseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", nil, fmt.Errorf("decode json body: %w", err)
	}
	return req.Text, &pokepaste.Metadata{
		Title:  req.Title,
		Author: req.Author,
		Format: req.Format,
	}, nil
}

// statusForResult maps a parse outcome to an HTTP status
func statusForResult(res models.Result, okStatus int) int {
	if res.Success {
		return okStatus
	}
	err := res.Err()
	var te *pokepaste.TransportError
	var ue *pokepaste.UnexpectedError
	switch {
	case errors.Is(err, pokepaste.ErrNoEntries):
		return http.StatusUnprocessableEntity
	case errors.As(err, &te):
		return http.StatusBadGateway
	case errors.As(err, &ue) && ue.Op == "parse url":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
