package bot

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// View is everything a strategy may know about the opponent's board:
// the public shot history and which cells this bot has not fired at yet.
// Ship positions are not exposed.
type View interface {
	// InBounds returns true if the coordinate is on the board
	InBounds(c model.Coordinate) bool
	// Check returns the recorded result of a previous shot at c
	Check(c model.Coordinate) model.CellState
	// Shootable returns true if c is on the board and still in the pool
	Shootable(c model.Coordinate) bool
	// Next returns the head of the shuffled pool, or false if it is empty
	Next() (model.Coordinate, bool)
}

// Strategy decides where a bot fires
type Strategy interface {
	// Name returns the registry name of the strategy
	Name() string
	// Decide picks the next coordinate; false means nothing is left to shoot
	Decide(view View) (model.Coordinate, bool)
	// Observe reports the outcome of firing at the decided coordinate
	Observe(c model.Coordinate, outcome model.ShotOutcome)
}

// NewStrategy creates a fresh strategy by name.
// An empty name selects the default strategy.
func NewStrategy(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case "", model.BotStrategyHunt:
		return NewHuntTargetStrategy(rnd), nil
	case model.BotStrategyRandom:
		return NewRandomStrategy(), nil
	}
	return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
}

// RandomCoordinate returns a uniformly random coordinate on a board of the given size
func RandomCoordinate(rnd random.Random, size int) model.Coordinate {
	col := model.MinCoordinate + rnd.Intn(size)
	row := model.MinCoordinate + rnd.Intn(size)
	return model.Coordinate{X: col, Y: row}
}

// RandomDirection returns a uniformly random direction
func RandomDirection(rnd random.Random) model.Direction {
	return model.AllDirections[rnd.Intn(model.TotalDirections)]
}
