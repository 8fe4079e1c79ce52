package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// execute builds the command tree and runs it. Logging goes to stderr so
// reports on stdout stay pipeable; --verbose switches to debug level.
func execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "steinred",
		Short: "steinred shrinks Steiner tree instances before solving",
		Long: `steinred applies cost-preserving reduction tests to Steiner tree
instances in SteinLib STP format. Prize-collecting and maximum-weight
instances are transformed into the rooted representation first; eliminated
edge costs accumulate in a fixed offset that is reported with the result.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			cmd.SetContext(withLogger(cmd.Context(), log))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML settings file")

	root.AddCommand(newInfoCmd())
	root.AddCommand(newReduceCmd(&configPath))

	return root.ExecuteContext(ctx)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// loggerFromContext falls back to a nop logger so commands never nil-check.
func loggerFromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}
