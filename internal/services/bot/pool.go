package bot

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Pool is the set of coordinates a bot has not fired at yet, kept in a
// pre-shuffled order. It is drained without replacement.
type Pool struct {
	order   []model.Coordinate
	head    int // order[:head] has been removed
	present map[model.Coordinate]struct{}
}

// NewPool builds a shuffled pool covering every cell of a size x size board
func NewPool(size int, rnd random.Random) *Pool {
	order := make([]model.Coordinate, 0, size*size)
	for row := model.MinCoordinate; row <= size; row++ {
		for col := model.MinCoordinate; col <= size; col++ {
			order = append(order, model.Coordinate{X: col, Y: row})
		}
	}
	random.Shuffle(rnd, order)

	present := make(map[model.Coordinate]struct{}, len(order))
	for _, c := range order {
		present[c] = struct{}{}
	}
	return &Pool{order: order, present: present}
}

// Len returns the number of coordinates left
func (p *Pool) Len() int {
	return len(p.present)
}

// Contains returns true if c has not been removed
func (p *Pool) Contains(c model.Coordinate) bool {
	_, ok := p.present[c]
	return ok
}

// Peek returns the first remaining coordinate in shuffled order
func (p *Pool) Peek() (model.Coordinate, bool) {
	for p.head < len(p.order) {
		c := p.order[p.head]
		if p.Contains(c) {
			return c, true
		}
		p.head++
	}
	return model.Coordinate{}, false
}

// Remove takes c out of the pool; removing an absent coordinate is a no-op
func (p *Pool) Remove(c model.Coordinate) {
	delete(p.present, c)
}
