package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/api/response"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show win rates and accuracy per strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Summary
			if err := client.Get("/api/v1/summary", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
