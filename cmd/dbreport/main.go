package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dbreport/config"
	"dbreport/core"
	"dbreport/present"
	"dbreport/send"
	"dbreport/sources"
)

var (
	logger  *zap.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "dbreport [config file]",
	Short:         "Run configured queries against a database and deliver the report",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args[0])
	},
}

func run(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger.Info("running the report",
		zap.String("title", cfg.Title),
		zap.Int("queries", len(cfg.Queries)))

	queries := make([]*core.Query, 0, len(cfg.Queries))
	componentByKey := make(map[string]core.Component, len(cfg.Queries))
	for _, query := range cfg.Queries {
		queries = append(queries, query.CoreQuery())
		componentByKey[query.Key] = query.Component()
	}

	results, err := sources.Fetch(ctx, logger, cfg.Source, queries)
	if err != nil {
		return err
	}

	entries := make([]present.Entry, 0, len(results))
	for _, result := range results {
		entries = append(entries, present.Entry{
			Query:     result.Query,
			Component: componentByKey[result.Query.Key],
			Rows:      result.Rows,
			Err:       result.Err,
		})
	}

	dt, err := present.PresentAs(logger, entries, cfg.Title, cfg.Send.Format)
	if err != nil {
		return err
	}

	if cfg.Send.Stdout {
		if err := send.Stdout(os.Stdout, dt); err != nil {
			return err
		}
	}

	if cfg.Send.Mail != nil {
		if err := send.Mail(ctx, logger, cfg.Send.Mail, cfg.Title, dt); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
