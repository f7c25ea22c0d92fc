package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MinCoordinate is the lowest valid value on either axis
const MinCoordinate = 1

// Coordinate identifies a cell on a board
type Coordinate struct {
	X int `json:"x"` // Column, 1-indexed from the left
	Y int `json:"y"` // Row, 1-indexed from the top
}

// Step returns the coordinate one cell away in the given direction
func (c Coordinate) Step(d Direction) Coordinate {
	dx, dy := d.Delta()
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// InRange returns true if both axes fall within [MinCoordinate, size]
func (c Coordinate) InRange(size int) bool {
	return c.X >= MinCoordinate && c.X <= size && c.Y >= MinCoordinate && c.Y <= size
}

// String renders the coordinate in board notation: row letter then column number.
// (1,1) is "A1" and (10,10) is "J10".
func (c Coordinate) String() string {
	if c.Y < MinCoordinate || c.Y > 26 {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return string(rune('A'+c.Y-1)) + strconv.Itoa(c.X)
}

// ParseCoordinate converts board notation ("A1", "j10") into a Coordinate.
// The letter selects the row and the number selects the column; both must be
// within a board of the given size.
func ParseCoordinate(s string, size int) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}

	letter := rune(s[0])
	if letter > unicode.MaxASCII || !unicode.IsLetter(letter) {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}

	// Only plain digits; rejects signs such as "A-1" and "A+1"
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
		}
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}

	coord := Coordinate{X: col, Y: int(unicode.ToUpper(letter)-'A') + 1}
	if !coord.InRange(size) {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return coord, nil
}
