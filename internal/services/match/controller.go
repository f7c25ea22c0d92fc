package match

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/board"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/storage"
)

// DefaultListLimit is used when a caller asks for matches without a limit
const DefaultListLimit = 20

// SimulationRequest describes a bot-versus-bot match to play
type SimulationRequest struct {
	BoardSize  int
	Fleet      model.Fleet // Nil uses the standard fleet
	Strategies [model.MatchPlayers]string
	Names      [model.MatchPlayers]string // Empty names become "Bot 1" and "Bot 2"
	Seed       *uint64                    // Makes the whole match reproducible
}

// Controller plays and records simulated matches
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		random:       random,
		logger:       logger.With(slog.String("component", "match-controller")),
	}
}

// Simulate plays a full match between two bots and stores the result.
// Each bot fires at the other's board; the first shooter is chosen at random
// and turns alternate until one side sinks the whole opposing fleet.
func (c *Controller) Simulate(ctx context.Context, req SimulationRequest) (*model.Match, error) {
	rnd := c.random
	boardService := c.boardService
	if req.Seed != nil {
		rnd = random.NewSeeded(*req.Seed)
		boardService = boardService.WithRandom(rnd)
	}

	fleet := req.Fleet
	if fleet == nil {
		fleet = model.StandardFleet()
	}

	if err := boardService.ValidateSize(req.BoardSize); err != nil {
		return nil, err
	}
	if err := boardService.ValidateFleet(req.BoardSize, fleet); err != nil {
		return nil, err
	}

	match := &model.Match{
		ID:        model.MatchID(uuid.NewString()),
		BoardSize: req.BoardSize,
		Fleet:     fleet,
		Seed:      req.Seed,
		StartedAt: c.clock.Now(),
	}

	strategies := make([]bot.Strategy, model.MatchPlayers)
	for i, name := range req.Strategies {
		strategy, err := bot.NewStrategy(name, rnd)
		if err != nil {
			return nil, err
		}
		strategies[i] = strategy

		match.Players[i] = model.PlayerStats{
			Name:     req.Names[i],
			Strategy: strategy.Name(),
		}
		if match.Players[i].Name == "" {
			match.Players[i].Name = fmt.Sprintf("Bot %d", i+1)
		}
	}

	boards := make([]*model.Board, model.MatchPlayers)
	for i := range boards {
		b, err := boardService.NewBoard(req.BoardSize)
		if err != nil {
			return nil, err
		}
		if err := boardService.PlaceFleet(b, fleet); err != nil {
			return nil, err
		}
		boards[i] = b
		match.Placements[i] = b.Placements()
	}

	// Each side fires at the other side's board
	drivers := make([]*bot.Driver, model.MatchPlayers)
	for i := range drivers {
		drivers[i] = bot.NewDriver(i, boards[opponent(i)], strategies[i], rnd, c.logger)
	}

	match.FirstPlayer = rnd.Intn(model.MatchPlayers)
	if err := c.play(ctx, match, drivers); err != nil {
		return nil, err
	}
	match.FinishedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match simulated",
		slog.String("match_id", string(match.ID)),
		slog.Int("board_size", match.BoardSize),
		slog.String("winner", match.WinnerStats().Name),
		slog.String("winner_strategy", match.WinnerStats().Strategy),
		slog.Int("turns", match.Turns()),
	)

	return match, nil
}

func (c *Controller) play(ctx context.Context, match *model.Match, drivers []*bot.Driver) error {
	current := match.FirstPlayer
	exhausted := make([]bool, len(drivers))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		move, err := drivers[current].TakeTurn()
		if errors.Is(err, model.ErrPoolExhausted) {
			exhausted[current] = true
			if exhausted[opponent(current)] {
				return model.ErrMatchIncomplete
			}
			current = opponent(current)
			continue
		}
		if err != nil {
			return err
		}

		match.Moves = append(match.Moves, move)
		match.Players[current].Update(move.Outcome)
		if move.Outcome.Status == model.ShotVictory {
			match.Winner = current
			return nil
		}
		current = opponent(current)
	}
}

func opponent(player int) int {
	return (player + 1) % model.MatchPlayers
}

// GetMatch retrieves a stored match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// ListMatches returns stored matches, most recent first
func (c *Controller) ListMatches(ctx context.Context, limit int) ([]*model.Match, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return c.storage.ListMatches(ctx, limit)
}

// DeleteMatch removes a stored match
func (c *Controller) DeleteMatch(ctx context.Context, id model.MatchID) error {
	if _, err := c.storage.GetMatch(ctx, id); err != nil {
		return err
	}
	return c.storage.DeleteMatch(ctx, id)
}

// Summary aggregates every stored match into per-strategy totals.
// A strategy that plays itself is counted once per side.
func (c *Controller) Summary(ctx context.Context) (*model.MatchSummary, error) {
	matches, err := c.storage.ListMatches(ctx, 0)
	if err != nil {
		return nil, err
	}

	byStrategy := make(map[string]*model.StrategySummary)
	totalTurns := 0
	for _, m := range matches {
		totalTurns += m.Turns()
		for _, player := range m.Players {
			entry, ok := byStrategy[player.Strategy]
			if !ok {
				entry = &model.StrategySummary{Strategy: player.Strategy}
				byStrategy[player.Strategy] = entry
			}
			entry.Played++
			entry.ShotsHit += player.ShotsHit
			entry.ShotsMissed += player.ShotsMissed
			if player.Victorious {
				entry.Won++
			}
		}
	}

	summary := &model.MatchSummary{
		Matches:    len(matches),
		Strategies: make([]model.StrategySummary, 0, len(byStrategy)),
	}
	if len(matches) > 0 {
		summary.AvgTurns = float64(totalTurns) / float64(len(matches))
	}
	for _, entry := range byStrategy {
		if shots := entry.ShotsHit + entry.ShotsMissed; shots > 0 {
			entry.Accuracy = float64(entry.ShotsHit) / float64(shots)
		}
		summary.Strategies = append(summary.Strategies, *entry)
	}
	slices.SortFunc(summary.Strategies, func(a, b model.StrategySummary) int {
		return cmp.Compare(a.Strategy, b.Strategy)
	})

	return summary, nil
}
