package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS matches (
	id              TEXT PRIMARY KEY,
	board_size      INTEGER NOT NULL,
	winner_strategy TEXT NOT NULL,
	turns           INTEGER NOT NULL,
	finished_at     TIMESTAMPTZ NOT NULL,
	payload         JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS matches_finished_at_idx ON matches (finished_at DESC)`

	upsertMatchSQL = `INSERT INTO matches (id, board_size, winner_strategy, turns, finished_at, payload)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET board_size = EXCLUDED.board_size, winner_strategy = EXCLUDED.winner_strategy,
	turns = EXCLUDED.turns, finished_at = EXCLUDED.finished_at, payload = EXCLUDED.payload`

	selectMatchSQL = `SELECT payload FROM matches WHERE id = $1`

	listMatchesSQL        = `SELECT payload FROM matches ORDER BY finished_at DESC, id ASC`
	listMatchesLimitedSQL = `SELECT payload FROM matches ORDER BY finished_at DESC, id ASC LIMIT $1`

	deleteMatchSQL = `DELETE FROM matches WHERE id = $1`
)

// Connect opens a connection pool to the PostgreSQL database.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Storage is a PostgreSQL-backed implementation of the storage interface.
// Matches are stored whole as JSONB with a few columns pulled out for ordering.
type Storage struct {
	db *sql.DB
}

// New creates a Storage on an open database handle
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// EnsureSchema creates the matches table if it does not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	payload, err := json.Marshal(match)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, upsertMatchSQL,
		string(match.ID), match.BoardSize, match.WinnerStats().Strategy, match.Turns(), match.FinishedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, selectMatchSQL, string(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}

	var match model.Match
	if err := json.Unmarshal(payload, &match); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", id, err)
	}
	return &match, nil
}

func (s *Storage) ListMatches(ctx context.Context, limit int) ([]*model.Match, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, listMatchesLimitedSQL, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, listMatchesSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []*model.Match{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		var match model.Match
		if err := json.Unmarshal(payload, &match); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
		matches = append(matches, &match)
	}
	return matches, rows.Err()
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	if _, err := s.db.ExecContext(ctx, deleteMatchSQL, string(id)); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
