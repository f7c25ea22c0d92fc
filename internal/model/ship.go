package model

// ShipKind describes a class of vessel
type ShipKind struct {
	Name   string `json:"name"`
	Length int    `json:"length"` // Number of cells occupied
}

// Fleet is the ordered set of ship kinds each player must place
type Fleet []ShipKind

// Standard ship kinds
var (
	Destroyer  = ShipKind{Name: "Destroyer", Length: 2}
	Submarine  = ShipKind{Name: "Submarine", Length: 3}
	Cruiser    = ShipKind{Name: "Cruiser", Length: 3}
	Battleship = ShipKind{Name: "Battleship", Length: 4}
	Carrier    = ShipKind{Name: "Carrier", Length: 5}
)

// StandardFleet returns the classic five-ship fleet
func StandardFleet() Fleet {
	return Fleet{Destroyer, Submarine, Cruiser, Battleship, Carrier}
}

// TotalCells returns the number of cells the whole fleet occupies
func (f Fleet) TotalCells() int {
	total := 0
	for _, kind := range f {
		total += kind.Length
	}
	return total
}

// ShipCells returns the cells a ship of the given length would occupy
func ShipCells(origin Coordinate, dir Direction, length int) []Coordinate {
	cells := make([]Coordinate, 0, length)
	c := origin
	for i := 0; i < length; i++ {
		cells = append(cells, c)
		c = c.Step(dir)
	}
	return cells
}

// ShipPlacement records where a ship was put, without its damage
type ShipPlacement struct {
	Kind      ShipKind   `json:"kind"`
	Origin    Coordinate `json:"origin"`
	Direction Direction  `json:"direction"`
}

// Ship is a vessel placed on a board
type Ship struct {
	Kind      ShipKind
	Origin    Coordinate
	Direction Direction
	Cells     []Coordinate // Cells[i] is Origin stepped i times in Direction

	hits map[Coordinate]struct{}
}

func newShip(kind ShipKind, origin Coordinate, dir Direction, cells []Coordinate) *Ship {
	return &Ship{
		Kind:      kind,
		Origin:    origin,
		Direction: dir,
		Cells:     cells,
		hits:      make(map[Coordinate]struct{}, len(cells)),
	}
}

// Occupies returns true if the ship covers the coordinate
func (s *Ship) Occupies(c Coordinate) bool {
	for _, cell := range s.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// IsHit returns true if the given cell of the ship has been struck
func (s *Ship) IsHit(c Coordinate) bool {
	_, ok := s.hits[c]
	return ok
}

// Hits returns the struck cells in cell order
func (s *Ship) Hits() []Coordinate {
	var hits []Coordinate
	for _, cell := range s.Cells {
		if s.IsHit(cell) {
			hits = append(hits, cell)
		}
	}
	return hits
}

// IsSunk returns true once every cell has been hit
func (s *Ship) IsSunk() bool {
	return len(s.hits) == len(s.Cells)
}

// Placement returns the ship's placement record
func (s *Ship) Placement() ShipPlacement {
	return ShipPlacement{Kind: s.Kind, Origin: s.Origin, Direction: s.Direction}
}

func (s *Ship) hit(c Coordinate) {
	s.hits[c] = struct{}{}
}

func (s *Ship) clone() Ship {
	cp := *s
	cp.Cells = append([]Coordinate(nil), s.Cells...)
	cp.hits = make(map[Coordinate]struct{}, len(s.hits))
	for c := range s.hits {
		cp.hits[c] = struct{}{}
	}
	return cp
}
