package bot

import (
	"log/slog"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Driver runs one bot's turns against the opponent's board. It owns the bot's
// pool so the strategy never sees ship positions.
type Driver struct {
	player   int
	target   *model.Board
	strategy Strategy
	pool     *Pool
	moves    []model.Move
	logger   *slog.Logger
}

// NewDriver creates a Driver for player firing at target
func NewDriver(player int, target *model.Board, strategy Strategy, rnd random.Random, logger *slog.Logger) *Driver {
	return &Driver{
		player:   player,
		target:   target,
		strategy: strategy,
		pool:     NewPool(target.Size(), rnd),
		logger: logger.With(
			slog.String("component", "bot-driver"),
			slog.Int("player", player),
			slog.String("strategy", strategy.Name()),
		),
	}
}

// Strategy returns the strategy driving this bot
func (d *Driver) Strategy() Strategy {
	return d.strategy
}

// Remaining returns the number of cells the bot has not fired at
func (d *Driver) Remaining() int {
	return d.pool.Len()
}

// History returns the moves taken so far, oldest first
func (d *Driver) History() []model.Move {
	out := make([]model.Move, len(d.moves))
	copy(out, d.moves)
	return out
}

// TakeTurn decides, fires and reports back to the strategy
func (d *Driver) TakeTurn() (model.Move, error) {
	c, ok := d.strategy.Decide(boardView{board: d.target, pool: d.pool})
	if !ok {
		return model.Move{}, model.ErrPoolExhausted
	}

	outcome := d.target.Fire(c)
	d.pool.Remove(c)
	d.strategy.Observe(c, outcome)

	move := model.Move{Player: d.player, Coordinate: c, Outcome: outcome}
	d.moves = append(d.moves, move)

	attrs := []any{
		slog.String("coordinate", c.String()),
		slog.String("outcome", outcome.Status.String()),
	}
	if h, ok := d.strategy.(*HuntTargetStrategy); ok {
		attrs = append(attrs, slog.String("mode", h.Mode()))
	}
	d.logger.Debug("bot fired", attrs...)

	return move, nil
}

// boardView exposes the public parts of a board plus the bot's pool
type boardView struct {
	board *model.Board
	pool  *Pool
}

func (v boardView) InBounds(c model.Coordinate) bool {
	return v.board.InBounds(c)
}

func (v boardView) Check(c model.Coordinate) model.CellState {
	return v.board.CheckCoordinate(c)
}

func (v boardView) Shootable(c model.Coordinate) bool {
	return v.board.InBounds(c) && v.pool.Contains(c)
}

func (v boardView) Next() (model.Coordinate, bool) {
	return v.pool.Peek()
}
