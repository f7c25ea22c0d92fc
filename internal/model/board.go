package model

// DefaultBoardSize is the side length of the classic board
const DefaultBoardSize = 10

// Board is one player's grid: their placed ships and the shots fired against it.
// A Board is owned by a single turn loop and is not safe for concurrent use.
type Board struct {
	size      int
	ships     []*Ship                  // In placement order
	occupied  map[Coordinate]*Ship     // Cell -> ship covering it
	history   map[Coordinate]CellState // Every accepted shot
	shotOrder []Coordinate
}

// NewBoard creates an empty board with bounds [1, size] on both axes
func NewBoard(size int) *Board {
	return &Board{
		size:     size,
		occupied: make(map[Coordinate]*Ship),
		history:  make(map[Coordinate]CellState),
	}
}

// Size returns the board's side length
func (b *Board) Size() int {
	return b.size
}

// InBounds returns true if the coordinate lies on the board
func (b *Board) InBounds(c Coordinate) bool {
	return c.InRange(b.size)
}

// PlaceShip puts a ship of the given kind on the board.
// Bounds are checked before overlap, so a ship that both runs off the edge and
// collides reports NotEnoughSpace. The board is unchanged unless the result is Ok.
func (b *Board) PlaceShip(kind ShipKind, origin Coordinate, dir Direction) PlacementResult {
	if kind.Length < 1 || !dir.IsValid() {
		return PlacementInvalid
	}
	for _, ship := range b.ships {
		if ship.Kind.Name == kind.Name {
			return PlacementInvalid
		}
	}

	cells := ShipCells(origin, dir, kind.Length)
	for _, c := range cells {
		if !b.InBounds(c) {
			return PlacementNotEnoughSpace
		}
	}
	for _, c := range cells {
		if _, taken := b.occupied[c]; taken {
			return PlacementOverlap
		}
	}

	ship := newShip(kind, origin, dir, cells)
	b.ships = append(b.ships, ship)
	for _, c := range cells {
		b.occupied[c] = ship
	}
	return PlacementOk
}

// Fire resolves a shot at the coordinate.
// Invalid and Duplicate outcomes leave the board untouched.
func (b *Board) Fire(c Coordinate) ShotOutcome {
	if !b.InBounds(c) {
		return ShotOutcome{Status: ShotInvalid}
	}
	if _, fired := b.history[c]; fired {
		return ShotOutcome{Status: ShotDuplicate}
	}
	b.shotOrder = append(b.shotOrder, c)

	ship, ok := b.occupied[c]
	if !ok {
		b.history[c] = CellMiss
		return ShotOutcome{Status: ShotMiss}
	}

	ship.hit(c)
	b.history[c] = CellHit

	if !ship.IsSunk() {
		return ShotOutcome{Status: ShotHit, Kind: ship.Kind}
	}
	if b.AllSunk() {
		return ShotOutcome{Status: ShotVictory, Kind: ship.Kind}
	}
	return ShotOutcome{Status: ShotHitAndSunk, Kind: ship.Kind}
}

// CheckCoordinate reports what is known about a coordinate without firing
func (b *Board) CheckCoordinate(c Coordinate) CellState {
	if state, ok := b.history[c]; ok {
		return state
	}
	return CellUnknown
}

// ShotCount returns the number of accepted shots
func (b *Board) ShotCount() int {
	return len(b.shotOrder)
}

// Shots returns every accepted shot in the order it was fired
func (b *Board) Shots() []Coordinate {
	return append([]Coordinate(nil), b.shotOrder...)
}

// Ships returns a snapshot of the placed ships in placement order
func (b *Board) Ships() []Ship {
	ships := make([]Ship, 0, len(b.ships))
	for _, ship := range b.ships {
		ships = append(ships, ship.clone())
	}
	return ships
}

// ShipAt returns a snapshot of the ship covering the coordinate, if any
func (b *Board) ShipAt(c Coordinate) (Ship, bool) {
	ship, ok := b.occupied[c]
	if !ok {
		return Ship{}, false
	}
	return ship.clone(), true
}

// Placements returns where each ship was put, in placement order
func (b *Board) Placements() []ShipPlacement {
	placements := make([]ShipPlacement, 0, len(b.ships))
	for _, ship := range b.ships {
		placements = append(placements, ship.Placement())
	}
	return placements
}

// ShipsRemaining returns the number of ships still afloat
func (b *Board) ShipsRemaining() int {
	count := 0
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			count++
		}
	}
	return count
}

// AllSunk returns true when at least one ship was placed and every ship is sunk
func (b *Board) AllSunk() bool {
	return len(b.ships) > 0 && b.ShipsRemaining() == 0
}
