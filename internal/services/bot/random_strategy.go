package bot

import "github.com/mcoot/battleship-go/internal/model"

// RandomStrategy fires at the pool in its shuffled order and ignores results
type RandomStrategy struct{}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{}
}

// Name returns the registry name
func (s *RandomStrategy) Name() string {
	return model.BotStrategyRandom
}

// Decide returns the next unfired coordinate
func (s *RandomStrategy) Decide(view View) (model.Coordinate, bool) {
	return view.Next()
}

// Observe is a no-op; random fire has no memory
func (s *RandomStrategy) Observe(model.Coordinate, model.ShotOutcome) {}
