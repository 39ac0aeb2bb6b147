package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dsuite/dlist/config"
	"github.com/dsuite/dlist/errors"
	"github.com/dsuite/dlist/log"
)

func main() {
	var (
		logLevelFlag string
		logJSON      bool
		logNoColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "dlist",
		Short: "Doubly linked list walkthrough and workload driver",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, err := zerolog.ParseLevel(logLevelFlag)
			if err != nil {
				log.InitGlobals(0, logJSON, true).Fatal().Msg("Unknown log level")
			}

			lg := log.InitGlobals(logLevel, logJSON, logNoColor)
			ctx := lg.WithContext(context.Background())
			cmd.SetContext(ctx)
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Output log in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logNoColor, "no-color", false, "Disable log color")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted list walkthrough",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context())
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a randomized list workload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := benchOptionsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			return runBench(cmd.Context(), opts)
		},
	}

	benchCmd.Flags().Int("workers", config.DefaultBenchWorkers,
		"Number of concurrent workers, one list each")
	benchCmd.Flags().Int("ops", config.DefaultBenchOps, "Number of operations per worker")
	benchCmd.Flags().Int("capacity", 0, "Per-list capacity bound (0 = unbounded)")
	benchCmd.Flags().Int("traverse-every", config.DefaultTraverseEvery,
		"Mutations between full traversals")
	benchCmd.Flags().Int64("seed", 0, "Workload seed (0 = DLIST_BENCH_SEED or clock)")
	benchCmd.Flags().String("metrics-addr", "", "Address to serve Prometheus metrics on")

	rootCmd.AddCommand(demoCmd, benchCmd)

	err := rootCmd.Execute()
	if err != nil {
		zerolog.Ctx(context.Background()).Fatal().Err(err).Msg("")
	}
}

// benchOptionsFromFlags collects and validates the bench command flags.
func benchOptionsFromFlags(flags *pflag.FlagSet) (benchOptions, error) {
	var (
		opts benchOptions
		err  error
	)

	opts.Workers, err = flags.GetInt("workers")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Ops, err = flags.GetInt("ops")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Capacity, err = flags.GetInt("capacity")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.TraverseEvery, err = flags.GetInt("traverse-every")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Seed, err = flags.GetInt64("seed")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.MetricsAddr, err = flags.GetString("metrics-addr")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	if opts.Workers < 1 {
		return opts, errors.New("workers must be at least 1")
	}

	if opts.Ops < 1 {
		return opts, errors.New("ops must be at least 1")
	}

	if opts.Capacity < 0 {
		return opts, errors.New("capacity must not be negative")
	}

	if opts.TraverseEvery < 1 {
		return opts, errors.New("traverse-every must be at least 1")
	}

	return opts, nil
}
