package storage

import (
	"context"

	"github.com/mcoot/battleship-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	// ListMatches returns stored matches, most recently finished first.
	// A limit of zero or less returns every match.
	ListMatches(ctx context.Context, limit int) ([]*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}
