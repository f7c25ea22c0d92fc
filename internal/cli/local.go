package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/factory"
)

func newLocalCmd() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Run a bot-versus-bot match in-process and show the boards",
		Long: `Plays a match without a server, using in-memory storage, and renders both
fleets afterwards: # is an intact ship cell, X a hit, o a miss.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.load(cmd); err != nil {
				return err
			}
			req, err := flags.matchRequest()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			app, err := factory.New(factory.Config{
				Logger:      logger,
				StorageType: factory.StorageTypeMemory,
			})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			m, err := app.MatchController.Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}

			result := response.MatchFromModel(m)
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return out.PrintBoards(result)
		},
	}

	flags.bind(cmd)
	return cmd
}
