package cmd

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-minimax/internal"
)

func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: heredoc.Doc(`
			Serve the game over HTTP.

			Endpoints:
			  POST /move   {"position": 0-8}  play X, the computer answers as O
			  POST /reset                     start a new game
			  GET  /state                     current game state
			  GET  /ping                      health check
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	conf, err := load(cmd)
	if err != nil {
		return err
	}

	logger := initLogger(conf, os.Stdout)

	return application.RunApp(logger, conf)
}
