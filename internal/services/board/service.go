package board

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
)

const (
	// MinBoardSize is the smallest playable board
	MinBoardSize = 2
	// MaxBoardSize keeps every row addressable by a single letter
	MaxBoardSize = 26
	// MaxPlacementAttempts bounds the random tries for one ship within a layout
	MaxPlacementAttempts = 200
	// MaxLayoutAttempts bounds how often a whole fleet layout is restarted
	MaxLayoutAttempts = 50
)

// Service sets up boards and fleets
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new board Service
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// WithRandom returns a copy of the service drawing from rnd
func (s *Service) WithRandom(rnd random.Random) *Service {
	return &Service{random: rnd, logger: s.logger}
}

// NewBoard creates an empty board after validating its size
func (s *Service) NewBoard(size int) (*model.Board, error) {
	if err := s.ValidateSize(size); err != nil {
		return nil, err
	}
	return model.NewBoard(size), nil
}

// ValidateSize checks the board size is within [MinBoardSize, MaxBoardSize]
func (s *Service) ValidateSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("%w: %d (must be %d-%d)", model.ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return nil
}

// ValidateFleet checks a fleet can be placed on a board of the given size
func (s *Service) ValidateFleet(size int, fleet model.Fleet) error {
	if len(fleet) == 0 {
		return fmt.Errorf("%w: no ships", model.ErrInvalidFleet)
	}

	names := make(map[string]struct{}, len(fleet))
	for _, kind := range fleet {
		if kind.Name == "" {
			return fmt.Errorf("%w: ship with no name", model.ErrInvalidFleet)
		}
		if kind.Length < 1 {
			return fmt.Errorf("%w: %s has length %d", model.ErrInvalidFleet, kind.Name, kind.Length)
		}
		if kind.Length > size {
			return fmt.Errorf("%w: %s does not fit on a %dx%d board", model.ErrInvalidFleet, kind.Name, size, size)
		}
		if _, dup := names[kind.Name]; dup {
			return fmt.Errorf("%w: duplicate ship %s", model.ErrInvalidFleet, kind.Name)
		}
		names[kind.Name] = struct{}{}
	}

	if fleet.TotalCells() > size*size {
		return fmt.Errorf("%w: %d cells do not fit on a %dx%d board", model.ErrInvalidFleet, fleet.TotalCells(), size, size)
	}
	return nil
}

// PlaceFleet places every ship of the fleet at a random origin and direction.
// Ships are laid out longest first on a scratch board, and a layout that leaves
// no room for a ship is thrown away and started again. The ships land on board
// in fleet order.
func (s *Service) PlaceFleet(board *model.Board, fleet model.Fleet) error {
	if err := s.ValidateFleet(board.Size(), fleet); err != nil {
		return err
	}

	order := slices.Clone(fleet)
	slices.SortStableFunc(order, func(a, b model.ShipKind) int {
		return cmp.Compare(b.Length, a.Length)
	})

	for attempt := 1; attempt <= MaxLayoutAttempts; attempt++ {
		layout, ok := s.layout(board.Size(), order)
		if !ok {
			continue
		}

		for _, kind := range fleet {
			p := layout[kind.Name]
			if result := board.PlaceShip(p.Kind, p.Origin, p.Direction); result != model.PlacementOk {
				return fmt.Errorf("%w: %s: %s", model.ErrPlacementFailed, kind.Name, result)
			}
		}

		s.logger.Debug("fleet placed",
			slog.Int("board_size", board.Size()),
			slog.Int("ships", len(fleet)),
			slog.Int("layouts", attempt),
		)
		return nil
	}

	s.logger.Warn("gave up placing fleet",
		slog.Int("board_size", board.Size()),
		slog.Int("layouts", MaxLayoutAttempts),
	)
	return fmt.Errorf("%w: no layout found after %d attempts", model.ErrPlacementFailed, MaxLayoutAttempts)
}

// layout places the ships in order on an empty board of the given size
func (s *Service) layout(size int, order model.Fleet) (map[string]model.ShipPlacement, bool) {
	scratch := model.NewBoard(size)
	for _, kind := range order {
		if !s.placeShip(scratch, kind) {
			return nil, false
		}
	}

	placements := make(map[string]model.ShipPlacement, len(order))
	for _, p := range scratch.Placements() {
		placements[p.Kind.Name] = p
	}
	return placements, true
}

func (s *Service) placeShip(board *model.Board, kind model.ShipKind) bool {
	for range MaxPlacementAttempts {
		origin := bot.RandomCoordinate(s.random, board.Size())
		dir := bot.RandomDirection(s.random)
		if board.PlaceShip(kind, origin, dir) == model.PlacementOk {
			return true
		}
	}
	return false
}
