package model

// PlayerStats tracks one side's shooting over a match
type PlayerStats struct {
	Name        string `json:"name"`
	Strategy    string `json:"strategy"`
	ShotsHit    int    `json:"shots_hit"`
	ShotsMissed int    `json:"shots_missed"`
	Victorious  bool   `json:"victorious"`
}

// Update records the outcome of a shot this player fired.
// Rejected shots are not counted.
func (p *PlayerStats) Update(outcome ShotOutcome) {
	switch outcome.Status {
	case ShotVictory:
		p.Victorious = true
		p.ShotsHit++
	case ShotHit, ShotHitAndSunk:
		p.ShotsHit++
	case ShotMiss:
		p.ShotsMissed++
	case ShotDuplicate, ShotInvalid:
	}
}

// TotalShots returns the number of shots that landed on the board
func (p *PlayerStats) TotalShots() int {
	return p.ShotsHit + p.ShotsMissed
}

// Accuracy returns the hit ratio in [0, 1], or 0 before any shot
func (p *PlayerStats) Accuracy() float64 {
	total := p.TotalShots()
	if total == 0 {
		return 0
	}
	return float64(p.ShotsHit) / float64(total)
}
