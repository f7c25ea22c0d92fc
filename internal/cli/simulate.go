package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// simulateFlags are shared by the remote and in-process simulate commands
type simulateFlags struct {
	boardSize  int
	strategies []string
	names      []string
	ships      []string
	seed       uint64
	seeded     bool
	boards     bool
}

func (f *simulateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.boardSize, "board-size", model.DefaultBoardSize, "Board side length")
	cmd.Flags().StringSliceVar(&f.strategies, "strategies", nil, "Strategy per player, e.g. hunt,random")
	cmd.Flags().StringSliceVar(&f.names, "names", nil, "Name per player, e.g. Alice,Bob")
	cmd.Flags().StringArrayVar(&f.ships, "ship", nil, "Custom fleet ship as NAME:LENGTH (repeatable)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for a reproducible match")
	cmd.Flags().BoolVar(&f.boards, "boards", false, "Render both boards after the match")
}

// load reads flag state that cobra cannot express directly
func (f *simulateFlags) load(cmd *cobra.Command) error {
	f.seeded = cmd.Flags().Changed("seed")
	if n := len(f.strategies); n != 0 && n != model.MatchPlayers {
		return fmt.Errorf("--strategies needs %d values, got %d", model.MatchPlayers, n)
	}
	if n := len(f.names); n != 0 && n != model.MatchPlayers {
		return fmt.Errorf("--names needs %d values, got %d", model.MatchPlayers, n)
	}
	return nil
}

func (f *simulateFlags) fleet() ([]request.FleetShip, error) {
	fleet := make([]request.FleetShip, 0, len(f.ships))
	for _, raw := range f.ships {
		name, length, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid ship %q: want NAME:LENGTH", raw)
		}
		n, err := strconv.Atoi(strings.TrimSpace(length))
		if err != nil {
			return nil, fmt.Errorf("invalid ship %q: %w", raw, err)
		}
		fleet = append(fleet, request.FleetShip{Name: strings.TrimSpace(name), Length: n})
	}
	return fleet, nil
}

func (f *simulateFlags) apiRequest() (request.SimulateRequest, error) {
	fleet, err := f.fleet()
	if err != nil {
		return request.SimulateRequest{}, err
	}
	req := request.SimulateRequest{
		BoardSize:  f.boardSize,
		Strategies: f.strategies,
		Names:      f.names,
		Fleet:      fleet,
	}
	if f.seeded {
		req.Seed = &f.seed
	}
	return req, nil
}

func (f *simulateFlags) matchRequest() (match.SimulationRequest, error) {
	fleet, err := f.fleet()
	if err != nil {
		return match.SimulationRequest{}, err
	}
	req := match.SimulationRequest{BoardSize: f.boardSize}
	copy(req.Strategies[:], f.strategies)
	copy(req.Names[:], f.names)
	if len(fleet) > 0 {
		req.Fleet = make(model.Fleet, len(fleet))
		for i, ship := range fleet {
			req.Fleet[i] = model.ShipKind{Name: ship.Name, Length: ship.Length}
		}
	}
	if f.seeded {
		req.Seed = &f.seed
	}
	return req, nil
}

func newSimulateCmd() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a bot-versus-bot match on the server",
		Example: `  battleship simulate
  battleship simulate --strategies hunt,random --seed 42 --boards
  battleship simulate --board-size 6 --ship Dinghy:2 --ship Raft:3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.load(cmd); err != nil {
				return err
			}
			req, err := flags.apiRequest()
			if err != nil {
				return err
			}

			var result response.Match
			if err := client.Post("/api/v1/simulations", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if flags.boards {
				return out.PrintBoards(result)
			}
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
