package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
)

// Board cell glyphs
const (
	glyphWater = '.'
	glyphShip  = '#'
	glyphHit   = 'X'
	glyphMiss  = 'o'
)

// ReplayBoards rebuilds each player's own board from a match record by
// placing their fleet and applying every shot the opponent fired at it.
func ReplayBoards(m response.Match) ([model.MatchPlayers]*model.Board, error) {
	var boards [model.MatchPlayers]*model.Board
	if len(m.Placements) != model.MatchPlayers {
		return boards, fmt.Errorf("match %s has %d fleets, want %d", m.ID, len(m.Placements), model.MatchPlayers)
	}

	for player, placements := range m.Placements {
		board := model.NewBoard(m.BoardSize)
		for _, p := range placements {
			dir, err := model.ParseDirection(p.Direction)
			if err != nil {
				return boards, err
			}
			kind := model.ShipKind{Name: p.Ship, Length: p.Length}
			if result := board.PlaceShip(kind, model.Coordinate{X: p.X, Y: p.Y}, dir); result != model.PlacementOk {
				return boards, fmt.Errorf("replaying %s at %s: %s", p.Ship, p.Origin, result)
			}
		}
		boards[player] = board
	}

	for i, mv := range m.Moves {
		if mv.Player < 0 || mv.Player >= model.MatchPlayers {
			return boards, fmt.Errorf("move %d has unknown player %d", i, mv.Player)
		}
		target := boards[1-mv.Player]
		if outcome := target.Fire(model.Coordinate{X: mv.X, Y: mv.Y}); outcome.Status.String() != mv.Result {
			return boards, fmt.Errorf("move %d at %s replayed as %s, recorded %s", i, mv.Coordinate, outcome.Status, mv.Result)
		}
	}
	return boards, nil
}

// RenderBoard writes a text grid of the board: columns are numbered and rows
// lettered, matching coordinate notation.
func RenderBoard(w io.Writer, board *model.Board) {
	size := board.Size()

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 1; x <= size; x++ {
		fmt.Fprintf(&sb, "%3d", x)
	}
	sb.WriteByte('\n')

	for y := 1; y <= size; y++ {
		fmt.Fprintf(&sb, "%3s", model.Coordinate{X: 1, Y: y}.String()[:1])
		for x := 1; x <= size; x++ {
			fmt.Fprintf(&sb, "%3c", cellGlyph(board, model.Coordinate{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}

	_, _ = io.WriteString(w, sb.String())
}

func cellGlyph(board *model.Board, c model.Coordinate) rune {
	switch board.CheckCoordinate(c) {
	case model.CellHit:
		return glyphHit
	case model.CellMiss:
		return glyphMiss
	}
	if _, ok := board.ShipAt(c); ok {
		return glyphShip
	}
	return glyphWater
}
