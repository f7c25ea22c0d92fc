package response

import (
	"time"

	"github.com/mcoot/battleship-go/internal/model"
)

// Player represents one side of a match in API responses
type Player struct {
	Name         string  `json:"name"`
	Strategy     string  `json:"strategy"`
	StrategyName string  `json:"strategy_name"`
	ShotsHit     int     `json:"shots_hit"`
	ShotsMissed  int     `json:"shots_missed"`
	Accuracy     float64 `json:"accuracy"`
	Victorious   bool    `json:"victorious"`
}

// PlayerFromModel converts model.PlayerStats
func PlayerFromModel(p model.PlayerStats) Player {
	return Player{
		Name:         p.Name,
		Strategy:     p.Strategy,
		StrategyName: model.BotStrategyDisplayName(p.Strategy),
		ShotsHit:     p.ShotsHit,
		ShotsMissed:  p.ShotsMissed,
		Accuracy:     p.Accuracy(),
		Victorious:   p.Victorious,
	}
}

// Placement represents where a ship was put
type Placement struct {
	Ship      string `json:"ship"`
	Length    int    `json:"length"`
	Origin    string `json:"origin"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// PlacementFromModel converts model.ShipPlacement
func PlacementFromModel(p model.ShipPlacement) Placement {
	return Placement{
		Ship:      p.Kind.Name,
		Length:    p.Kind.Length,
		Origin:    p.Origin.String(),
		X:         p.Origin.X,
		Y:         p.Origin.Y,
		Direction: p.Direction.String(),
	}
}

// Move represents one shot in a match
type Move struct {
	Player     int    `json:"player"`
	Coordinate string `json:"coordinate"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Result     string `json:"result"`
	Ship       string `json:"ship,omitempty"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		Player:     m.Player,
		Coordinate: m.Coordinate.String(),
		X:          m.Coordinate.X,
		Y:          m.Coordinate.Y,
		Result:     m.Outcome.Status.String(),
		Ship:       m.Outcome.Kind.Name,
	}
}

// Match represents a full match record
type Match struct {
	ID          string        `json:"id"`
	BoardSize   int           `json:"board_size"`
	Seed        *uint64       `json:"seed,omitempty"`
	Players     []Player      `json:"players"`
	FirstPlayer int           `json:"first_player"`
	Winner      int           `json:"winner"`
	Turns       int           `json:"turns"`
	Placements  [][]Placement `json:"placements"`
	Moves       []Move        `json:"moves"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
}

// MatchFromModel converts model.Match
func MatchFromModel(m *model.Match) Match {
	players := make([]Player, len(m.Players))
	for i, p := range m.Players {
		players[i] = PlayerFromModel(p)
	}

	placements := make([][]Placement, len(m.Placements))
	for i, side := range m.Placements {
		placements[i] = make([]Placement, len(side))
		for j, p := range side {
			placements[i][j] = PlacementFromModel(p)
		}
	}

	moves := make([]Move, len(m.Moves))
	for i, mv := range m.Moves {
		moves[i] = MoveFromModel(mv)
	}

	return Match{
		ID:          string(m.ID),
		BoardSize:   m.BoardSize,
		Seed:        m.Seed,
		Players:     players,
		FirstPlayer: m.FirstPlayer,
		Winner:      m.Winner,
		Turns:       m.Turns(),
		Placements:  placements,
		Moves:       moves,
		StartedAt:   m.StartedAt,
		FinishedAt:  m.FinishedAt,
	}
}

// MatchListItem is the short form of a match used in listings
type MatchListItem struct {
	ID         string    `json:"id"`
	BoardSize  int       `json:"board_size"`
	Players    []Player  `json:"players"`
	Winner     int       `json:"winner"`
	Turns      int       `json:"turns"`
	FinishedAt time.Time `json:"finished_at"`
}

// MatchListItemFromModel converts model.Match to its short form
func MatchListItemFromModel(m *model.Match) MatchListItem {
	players := make([]Player, len(m.Players))
	for i, p := range m.Players {
		players[i] = PlayerFromModel(p)
	}
	return MatchListItem{
		ID:         string(m.ID),
		BoardSize:  m.BoardSize,
		Players:    players,
		Winner:     m.Winner,
		Turns:      m.Turns(),
		FinishedAt: m.FinishedAt,
	}
}

// MatchList is the response for listing matches
type MatchList struct {
	Matches []MatchListItem `json:"matches"`
}

// MatchListFromModel converts a slice of matches
func MatchListFromModel(matches []*model.Match) MatchList {
	items := make([]MatchListItem, len(matches))
	for i, m := range matches {
		items[i] = MatchListItemFromModel(m)
	}
	return MatchList{Matches: items}
}

// StrategySummary is the aggregate record of one strategy
type StrategySummary struct {
	Strategy     string  `json:"strategy"`
	StrategyName string  `json:"strategy_name"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	WinRate      float64 `json:"win_rate"`
	ShotsHit     int     `json:"shots_hit"`
	ShotsMissed  int     `json:"shots_missed"`
	Accuracy     float64 `json:"accuracy"`
}

// Summary is the response for cumulative statistics
type Summary struct {
	Matches    int               `json:"matches"`
	AvgTurns   float64           `json:"avg_turns"`
	Strategies []StrategySummary `json:"strategies"`
}

// SummaryFromModel converts model.MatchSummary
func SummaryFromModel(s *model.MatchSummary) Summary {
	strategies := make([]StrategySummary, len(s.Strategies))
	for i, st := range s.Strategies {
		var winRate float64
		if st.Played > 0 {
			winRate = float64(st.Won) / float64(st.Played)
		}
		strategies[i] = StrategySummary{
			Strategy:     st.Strategy,
			StrategyName: model.BotStrategyDisplayName(st.Strategy),
			Played:       st.Played,
			Won:          st.Won,
			WinRate:      winRate,
			ShotsHit:     st.ShotsHit,
			ShotsMissed:  st.ShotsMissed,
			Accuracy:     st.Accuracy,
		}
	}
	return Summary{
		Matches:    s.Matches,
		AvgTurns:   s.AvgTurns,
		Strategies: strategies,
	}
}

// Health is the response for the health check
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
