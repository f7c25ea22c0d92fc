package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/battleship-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// IsJSON reports whether output is machine-readable
func (o *Output) IsJSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.IsJSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

// PrintBoards renders both players' boards after replaying the match.
// JSON output carries the match record already, so nothing extra is written.
func (o *Output) PrintBoards(m response.Match) error {
	if o.IsJSON() {
		return nil
	}

	boards, err := ReplayBoards(m)
	if err != nil {
		return err
	}
	for i, board := range boards {
		fmt.Fprintf(o.w, "\n%s's fleet:\n", m.Players[i].Name)
		RenderBoard(o.w, board)
	}
	return nil
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Match:
		o.printMatch(v)
	case response.MatchList:
		o.printMatchList(v)
	case response.Summary:
		o.printSummary(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Board: %dx%d\n", m.BoardSize, m.BoardSize)
	if m.Seed != nil {
		fmt.Fprintf(o.w, "Seed: %d\n", *m.Seed)
	}
	if m.FirstPlayer >= 0 && m.FirstPlayer < len(m.Players) {
		fmt.Fprintf(o.w, "First shot: %s\n", m.Players[m.FirstPlayer].Name)
	}
	fmt.Fprintf(o.w, "Turns: %d\n", m.Turns)

	fmt.Fprintln(o.w, "Players:")
	for _, p := range m.Players {
		o.printPlayer(p)
	}

	var sunk []string
	for _, mv := range m.Moves {
		if mv.Result == "hit_and_sunk" || mv.Result == "victory" {
			sunk = append(sunk, fmt.Sprintf("%s sank %s at %s", m.Players[mv.Player].Name, mv.Ship, mv.Coordinate))
		}
	}
	if len(sunk) > 0 {
		fmt.Fprintln(o.w, "Sinkings:")
		for _, s := range sunk {
			fmt.Fprintf(o.w, "  - %s\n", s)
		}
	}

	if m.Winner >= 0 && m.Winner < len(m.Players) {
		fmt.Fprintf(o.w, "Winner: %s\n", m.Players[m.Winner].Name)
	}
}

func (o *Output) printPlayer(p response.Player) {
	winner := ""
	if p.Victorious {
		winner = " [winner]"
	}
	fmt.Fprintf(o.w, "  - %s (%s): %d hits, %d misses, %.1f%% accuracy%s\n",
		p.Name, p.StrategyName, p.ShotsHit, p.ShotsMissed, p.Accuracy*100, winner)
}

func (o *Output) printMatchList(l response.MatchList) {
	if len(l.Matches) == 0 {
		fmt.Fprintln(o.w, "No matches recorded")
		return
	}

	fmt.Fprintf(o.w, "Matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		names := make([]string, len(m.Players))
		for i, p := range m.Players {
			names[i] = p.Name
		}
		winner := ""
		if m.Winner >= 0 && m.Winner < len(m.Players) {
			winner = m.Players[m.Winner].Name
		}
		fmt.Fprintf(o.w, "  %s  %s  %dx%d  %s  %d turns  winner: %s\n",
			m.ID, m.FinishedAt.Format("2006-01-02 15:04:05"), m.BoardSize, m.BoardSize,
			strings.Join(names, " vs "), m.Turns, winner)
	}
}

func (o *Output) printSummary(s response.Summary) {
	fmt.Fprintf(o.w, "Matches: %d\n", s.Matches)
	if s.Matches == 0 {
		return
	}
	fmt.Fprintf(o.w, "Average turns: %.1f\n", s.AvgTurns)
	fmt.Fprintln(o.w, "Strategies:")
	for _, st := range s.Strategies {
		fmt.Fprintf(o.w, "  - %s: %d played, %d won (%.1f%%), %.1f%% accuracy\n",
			st.StrategyName, st.Played, st.Won, st.WinRate*100, st.Accuracy*100)
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
}
