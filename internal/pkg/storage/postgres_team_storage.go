package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
	"github.com/Vodeneev/pokepaste/internal/pkg/storage/migrations"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Ensure PostgresTeamStorage implements TeamStorage
var _ TeamStorage = (*PostgresTeamStorage)(nil)

// PostgresTeamStorage stores parsed teams as JSONB rows
type PostgresTeamStorage struct {
	db *sql.DB
}

// NewPostgresTeamStorage connects, pings and migrates the schema
func NewPostgresTeamStorage(ctx context.Context, cfg *config.PostgresConfig) (*PostgresTeamStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("PostgreSQL team storage initialized successfully")
	return &PostgresTeamStorage{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *PostgresTeamStorage) StoreTeam(ctx context.Context, team *models.Team) (string, error) {
	if team == nil {
		return "", fmt.Errorf("team is nil")
	}
	payload, err := json.Marshal(team)
	if err != nil {
		return "", fmt.Errorf("failed to marshal team: %w", err)
	}

	id := uuid.New().String()
	query := `
	INSERT INTO teams (
		id, title, author, format, original_url,
		pokemon_count, parsed_at, payload
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	// payload goes as text: lib/pq would send []byte as bytea
	_, err = s.db.ExecContext(ctx, query,
		id,
		team.Title,
		team.Author,
		team.Format,
		team.Metadata.OriginalURL,
		len(team.Pokemon),
		team.Metadata.ParsedAt,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store team: %w", err)
	}
	return id, nil
}

func (s *PostgresTeamStorage) GetTeam(ctx context.Context, id string) (*StoredTeam, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrTeamNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, payload, created_at FROM teams WHERE id = $1`, id)
	st, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return st, nil
}

func (s *PostgresTeamStorage) ListTeams(ctx context.Context, limit int) ([]StoredTeam, error) {
	limit = clampLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, payload, created_at FROM teams
	ORDER BY created_at DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]StoredTeam, 0, limit)
	for rows.Next() {
		st, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

func (s *PostgresTeamStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(r rowScanner) (*StoredTeam, error) {
	var (
		st      StoredTeam
		payload []byte
	)
	if err := r.Scan(&st.ID, &payload, &st.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &st.Team); err != nil {
		return nil, fmt.Errorf("failed to decode team payload: %w", err)
	}
	return &st, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
