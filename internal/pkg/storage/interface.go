package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

// ErrTeamNotFound is returned when no team exists for an id
var ErrTeamNotFound = errors.New("team not found")

// StoredTeam is a team together with its storage id
type StoredTeam struct {
	ID        string      `json:"id"`
	Team      models.Team `json:"team"`
	CreatedAt time.Time   `json:"created_at"`
}

// TeamStorage persists parsed teams
type TeamStorage interface {
	// StoreTeam saves a team and returns its new id
	StoreTeam(ctx context.Context, team *models.Team) (string, error)

	// GetTeam returns ErrTeamNotFound for unknown or malformed ids
	GetTeam(ctx context.Context, id string) (*StoredTeam, error)

	// ListTeams returns the most recently stored teams first
	ListTeams(ctx context.Context, limit int) ([]StoredTeam, error)

	Close() error
}
