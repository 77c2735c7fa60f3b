package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

const defaultConfigPath = "./config.yml"

var ErrUnknownLogLevel = errors.New("unknown log level")

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Root - the tictactoe command. Without a subcommand it serves HTTP.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-Tac-Toe against an unbeatable minimax opponent",
		Long: heredoc.Doc(`
			Tic-Tac-Toe against an unbeatable minimax opponent.

			You play X and always move first, the computer plays O and answers
			every move with an exhaustive minimax search.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", defaultConfigPath, "path to the config file")
	root.PersistentFlags().String("log-level", "", "override the configured log level (debug, info)")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}

// load - reads the config file named by --config and applies flag overrides.
func load(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	conf := config.MustLoad(path)

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		conf.LogLevel = level
	}

	if _, ok := logLevels[conf.LogLevel]; !ok {
		return nil, fmt.Errorf("%w: %q, use debug, info, warn or error", ErrUnknownLogLevel, conf.LogLevel)
	}

	return conf, nil
}

// initLogger - JSON logs to w at the configured level.
func initLogger(conf *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevels[conf.LogLevel]}))
}

var stderr io.Writer = os.Stderr
