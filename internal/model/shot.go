package model

import "fmt"

// PlacementResult is the outcome of placing a ship
type PlacementResult int

const (
	PlacementOk PlacementResult = iota
	PlacementOverlap
	PlacementNotEnoughSpace
	PlacementInvalid
)

func (p PlacementResult) String() string {
	switch p {
	case PlacementOk:
		return "ok"
	case PlacementOverlap:
		return "overlap"
	case PlacementNotEnoughSpace:
		return "not_enough_space"
	case PlacementInvalid:
		return "invalid"
	}
	return fmt.Sprintf("placement(%d)", int(p))
}

// ShotStatus classifies a single fire call
type ShotStatus int

const (
	ShotMiss ShotStatus = iota
	ShotHit
	ShotHitAndSunk
	ShotVictory   // The shot sank the last afloat ship
	ShotDuplicate // Coordinate was already fired at
	ShotInvalid   // Coordinate is off the board
)

var shotStatusNames = map[ShotStatus]string{
	ShotMiss:       "miss",
	ShotHit:        "hit",
	ShotHitAndSunk: "hit_and_sunk",
	ShotVictory:    "victory",
	ShotDuplicate:  "duplicate",
	ShotInvalid:    "invalid",
}

func (s ShotStatus) String() string {
	if name, ok := shotStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shot(%d)", int(s))
}

// MarshalText encodes the status by name
func (s ShotStatus) MarshalText() ([]byte, error) {
	name, ok := shotStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown shot status %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a status name
func (s *ShotStatus) UnmarshalText(text []byte) error {
	for status, name := range shotStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown shot status %q", string(text))
}

// ShotOutcome is the result of firing at a board
type ShotOutcome struct {
	Status ShotStatus `json:"status"`
	// Kind is the ship struck; set for Hit, HitAndSunk and Victory.
	// Callers decide whether to reveal it on a plain Hit.
	Kind ShipKind `json:"kind,omitzero"`
}

// Happened returns false for shots rejected without effect
func (o ShotOutcome) Happened() bool {
	return o.Status != ShotDuplicate && o.Status != ShotInvalid
}

// IsHit returns true if the shot struck a ship
func (o ShotOutcome) IsHit() bool {
	switch o.Status {
	case ShotHit, ShotHitAndSunk, ShotVictory:
		return true
	}
	return false
}

// SankShip returns true if the shot finished off a ship
func (o ShotOutcome) SankShip() bool {
	return o.Status == ShotHitAndSunk || o.Status == ShotVictory
}

// CellState is what a board's shot history says about a coordinate
type CellState int

const (
	CellUnknown CellState = iota
	CellHit
	CellMiss
)

func (c CellState) String() string {
	switch c {
	case CellUnknown:
		return "unknown"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	}
	return fmt.Sprintf("cell(%d)", int(c))
}
