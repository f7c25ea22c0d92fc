package model

import "time"

// MatchID uniquely identifies a simulated match
type MatchID string

// MatchPlayers is the number of sides in a match
const MatchPlayers = 2

// Move is one accepted shot in a match
type Move struct {
	Player     int         `json:"player"` // Index of the shooter
	Coordinate Coordinate  `json:"coordinate"`
	Outcome    ShotOutcome `json:"outcome"`
}

// Match is the record of a finished bot-versus-bot game
type Match struct {
	ID        MatchID `json:"id"`
	BoardSize int     `json:"board_size"`
	Fleet     Fleet   `json:"fleet"`
	Seed      *uint64 `json:"seed,omitempty"` // Set when the match was seeded

	Players     [MatchPlayers]PlayerStats     `json:"players"`
	Placements  [MatchPlayers][]ShipPlacement `json:"placements"` // Each player's own fleet
	FirstPlayer int                           `json:"first_player"`
	Winner      int                           `json:"winner"`
	Moves       []Move                        `json:"moves"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Turns returns the number of shots taken by both sides
func (m *Match) Turns() int {
	return len(m.Moves)
}

// WinnerStats returns the winning side's stats
func (m *Match) WinnerStats() PlayerStats {
	return m.Players[m.Winner]
}

// StrategySummary aggregates results for one bot strategy across matches
type StrategySummary struct {
	Strategy    string  `json:"strategy"`
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	ShotsHit    int     `json:"shots_hit"`
	ShotsMissed int     `json:"shots_missed"`
	Accuracy    float64 `json:"accuracy"`
}

// MatchSummary is the cumulative statistics over stored matches
type MatchSummary struct {
	Matches    int               `json:"matches"`
	AvgTurns   float64           `json:"avg_turns"`
	Strategies []StrategySummary `json:"strategies"`
}
