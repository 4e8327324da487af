package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"studentadmin/config"
	"studentadmin/notify"
)

var version = "0.1.0"

// errNotAllDeleted makes the process exit non-zero; the notifications
// already told the user what failed.
var errNotAllDeleted = errors.New("not all students were deleted")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	verbose bool
	envFile string
	logger  *zap.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "studentctl",
		Short:         "Manage student records on the course backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(newDeleteCmd(a), newHistoryCmd(a), newVersionCmd())
	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.envFile)
}

// buildSink assembles the configured sinks. The returned func releases them.
func (a *app) buildSink(ctx context.Context, cfg *config.Config) (notify.Sink, func(), error) {
	var (
		sinks   []notify.Sink
		closers []func() error
	)
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkTerminal:
			sinks = append(sinks, notify.NewTerminal(a.out))
		case config.SinkLog:
			sinks = append(sinks, notify.NewLog(a.logger))
		case config.SinkKafka:
			k := notify.NewKafka(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, a.logger)
			sinks = append(sinks, k)
			closers = append(closers, k.Close)
		default:
			return nil, nil, fmt.Errorf("unknown sink %q", name)
		}
	}

	release := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				a.logger.Warn("closing sink", zap.Error(err))
			}
		}
	}
	if len(sinks) == 1 {
		return sinks[0], release, nil
	}
	return notify.Multi(sinks...), release, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the studentctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "studentctl", version)
		},
	}
}
