package model

import (
	"fmt"
	"strings"
)

// Direction is the way a ship extends from its origin, or the way a bot probes.
// Values are declared in clockwise order so rotation is a modular increment.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionRight
	DirectionDown
	DirectionLeft
)

// TotalDirections is the number of distinct directions
const TotalDirections = 4

// AllDirections lists every direction in clockwise order starting at Up
var AllDirections = [TotalDirections]Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

// IsValid returns true for the four declared directions
func (d Direction) IsValid() bool {
	return d >= DirectionUp && d <= DirectionLeft
}

// Delta returns the unit column/row offset for the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	panic(fmt.Sprintf("model: invalid direction %d", int(d)))
}

// Rotate returns the next direction clockwise
func (d Direction) Rotate() Direction {
	if !d.IsValid() {
		panic(fmt.Sprintf("model: invalid direction %d", int(d)))
	}
	return (d + 1) % TotalDirections
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	panic(fmt.Sprintf("model: cannot reverse invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts a direction name or its first letter, case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return DirectionUp, nil
	case "r", "right":
		return DirectionRight, nil
	case "d", "down":
		return DirectionDown, nil
	case "l", "left":
		return DirectionLeft, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
