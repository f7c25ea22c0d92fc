package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/api/response"
)

func newMatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Browse recorded matches",
	}

	cmd.AddCommand(newMatchesListCmd())
	cmd.AddCommand(newMatchesGetCmd())
	cmd.AddCommand(newMatchesDeleteCmd())

	return cmd
}

func newMatchesListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result response.MatchList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of matches (server default when 0)")
	return cmd
}

func newMatchesGetCmd() *cobra.Command {
	var boards bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a recorded match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match
			if err := client.Get("/api/v1/matches/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if boards {
				return out.PrintBoards(result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&boards, "boards", false, "Render both boards")
	return cmd
}

func newMatchesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/matches/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted match %s", args[0]))
			return nil
		},
	}
}
