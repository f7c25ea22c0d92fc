package bot

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// maxDecisionSteps bounds the state transitions in a single Decide call.
// The longest chain is following -> reversed -> finding -> searching.
const maxDecisionSteps = model.TotalDirections + 1

// huntState is the hunt/target state machine. Each variant carries only the
// data meaningful in that state.
type huntState interface {
	huntState()
}

// searching fires at random. dir is the seek direction guessed for the shot
// just committed, used only if that shot hits.
type searching struct {
	dir model.Direction
}

// target holds the memory shared by the states that chase a ship
type target struct {
	origin model.Coordinate // First hit of the current target
	cursor model.Coordinate // Coordinate the next step is taken from
	dir    model.Direction  // Current probe or follow direction
}

// findingDirection probes the neighbours of cursor to learn the ship's orientation
type findingDirection struct{ target }

// followingDirection keeps stepping along a confirmed orientation
type followingDirection struct{ target }

// followingReversed sweeps from origin in the opposite direction after the
// forward line ended without sinking the ship
type followingReversed struct{ target }

func (searching) huntState()          {}
func (findingDirection) huntState()   {}
func (followingDirection) huntState() {}
func (followingReversed) huntState()  {}

// HuntTargetStrategy fires randomly until it hits, then works out which way the
// ship lies and follows it until sunk. It only uses public shot results.
type HuntTargetStrategy struct {
	random random.Random
	state  huntState
}

// NewHuntTargetStrategy creates a HuntTargetStrategy in the searching state
func NewHuntTargetStrategy(rnd random.Random) *HuntTargetStrategy {
	return &HuntTargetStrategy{
		random: rnd,
		state:  searching{},
	}
}

// Name returns the registry name
func (s *HuntTargetStrategy) Name() string {
	return model.BotStrategyHunt
}

// Mode returns a short label for the current state, for logging
func (s *HuntTargetStrategy) Mode() string {
	switch s.state.(type) {
	case searching:
		return "random"
	case findingDirection:
		return "find_direction"
	case followingDirection:
		return "follow_direction"
	case followingReversed:
		return "follow_direction_reversed"
	}
	return "unknown"
}

// Decide commits to the next coordinate to fire at
func (s *HuntTargetStrategy) Decide(view View) (model.Coordinate, bool) {
	for range maxDecisionSteps {
		switch st := s.state.(type) {
		case searching:
			return s.search(view)

		case findingDirection:
			dir := st.dir
			for range model.TotalDirections {
				next := st.cursor.Step(dir)
				if view.Shootable(next) {
					s.state = findingDirection{target{origin: st.origin, cursor: next, dir: dir}}
					return next, true
				}
				dir = dir.Rotate()
			}
			// Every neighbour is resolved; abandon this target
			s.state = searching{}

		case followingDirection:
			next := st.cursor.Step(st.dir)
			if view.Shootable(next) {
				s.state = followingDirection{target{origin: st.origin, cursor: next, dir: st.dir}}
				return next, true
			}
			s.state = followingReversed{st.target}

		case followingReversed:
			reversed := st.dir.Reverse()
			next := st.origin.Step(reversed)
			for view.InBounds(next) && view.Check(next) == model.CellHit {
				next = next.Step(reversed)
			}

			// The sweep is a one-shot correction; direction finding resumes either way
			if view.Shootable(next) {
				s.state = findingDirection{target{origin: st.origin, cursor: next, dir: st.dir}}
				return next, true
			}
			s.state = findingDirection{st.target}

		default:
			panic(fmt.Sprintf("bot: unknown hunt state %T", st))
		}
	}

	s.state = searching{}
	return s.search(view)
}

func (s *HuntTargetStrategy) search(view View) (model.Coordinate, bool) {
	next, ok := view.Next()
	if !ok {
		return model.Coordinate{}, false
	}
	s.state = searching{dir: RandomDirection(s.random)}
	return next, true
}

// Observe advances the state machine from the outcome of the committed shot
func (s *HuntTargetStrategy) Observe(c model.Coordinate, outcome model.ShotOutcome) {
	switch outcome.Status {
	case model.ShotHitAndSunk, model.ShotVictory:
		s.state = searching{}

	case model.ShotHit:
		switch st := s.state.(type) {
		case searching:
			s.state = findingDirection{target{origin: c, cursor: c, dir: st.dir}}
		case findingDirection:
			s.state = followingDirection{st.target}
		case followingDirection, followingReversed:
			// Keep following
		}

	case model.ShotMiss:
		switch st := s.state.(type) {
		case searching:
		case findingDirection:
			// Back out to the first hit and probe the next direction
			s.state = findingDirection{target{origin: st.origin, cursor: st.origin, dir: st.dir}}
		case followingDirection:
			s.state = followingReversed{st.target}
		case followingReversed:
			s.state = findingDirection{st.target}
		}

	case model.ShotDuplicate, model.ShotInvalid:
		// Nothing was learned
	}
}
