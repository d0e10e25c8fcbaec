package performance

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

// Tracker tracks parse metrics for the running process
type Tracker struct {
	mu sync.RWMutex

	TotalRuns     int
	Successful    int
	Failed        int
	TotalPokemon  int
	TotalDuration time.Duration
	LastError     string
	LastErrorAt   time.Time
}

// MetricsResponse is the JSON shape served by /metrics
type MetricsResponse struct {
	TotalRuns          int     `json:"total_runs"`
	Successful         int     `json:"successful"`
	Failed             int     `json:"failed"`
	TotalPokemon       int     `json:"total_pokemon"`
	AvgPokemonPerTeam  float64 `json:"avg_pokemon_per_team"`
	TotalDuration      string  `json:"total_duration"`
	AvgDuration        string  `json:"avg_duration"`
	LastError          string  `json:"last_error,omitempty"`
	LastErrorTimestamp string  `json:"last_error_at,omitempty"`
}

var globalTracker = &Tracker{}

// GetTracker returns the global tracker
func GetTracker() *Tracker {
	return globalTracker
}

// RecordParse records one parse call and how long it took
func (t *Tracker) RecordParse(res models.Result, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns++
	t.TotalDuration += duration
	if res.Success {
		t.Successful++
		if res.Data != nil {
			t.TotalPokemon += len(res.Data.Pokemon)
		}
		return
	}
	t.Failed++
	t.LastError = res.Error
	t.LastErrorAt = time.Now()
}

// Reset resets all metrics
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns = 0
	t.Successful = 0
	t.Failed = 0
	t.TotalPokemon = 0
	t.TotalDuration = 0
	t.LastError = ""
	t.LastErrorAt = time.Time{}
}

// GetMetrics returns a snapshot for the JSON API
func (t *Tracker) GetMetrics() MetricsResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()

	resp := MetricsResponse{
		TotalRuns:     t.TotalRuns,
		Successful:    t.Successful,
		Failed:        t.Failed,
		TotalPokemon:  t.TotalPokemon,
		TotalDuration: t.TotalDuration.String(),
		AvgDuration:   time.Duration(0).String(),
		LastError:     t.LastError,
	}
	if t.TotalRuns > 0 {
		resp.AvgDuration = (t.TotalDuration / time.Duration(t.TotalRuns)).String()
	}
	if t.Successful > 0 {
		resp.AvgPokemonPerTeam = float64(t.TotalPokemon) / float64(t.Successful)
	}
	if !t.LastErrorAt.IsZero() {
		resp.LastErrorTimestamp = t.LastErrorAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// PrintSummary logs the current metrics
func (t *Tracker) PrintSummary() {
	m := t.GetMetrics()
	if m.TotalRuns == 0 {
		slog.Info("No parse metrics collected yet")
		return
	}
	slog.Info("Parse summary",
		"total_runs", m.TotalRuns,
		"successful", m.Successful,
		"failed", m.Failed,
		"total_pokemon", m.TotalPokemon,
		"avg_duration", m.AvgDuration)
}
