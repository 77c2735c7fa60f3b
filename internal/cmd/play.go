package cmd

import (
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-minimax/internal"
)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the game in the terminal",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := load(cmd)
			if err != nil {
				return err
			}

			// logs go to stderr so they don't interleave with the board
			logger := initLogger(conf, stderr)

			return application.RunConsole(logger, conf, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
