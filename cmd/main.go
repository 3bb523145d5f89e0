package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnthoniusHendriyanto/marketplace-api/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config
	var logger *slog.Logger

	root := &cobra.Command{
		Use:           "marketplace-api",
		Short:         "Marketplace HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg = config.Load()
			var err error
			logger, err = newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(func() (*config.Config, *slog.Logger) { return cfg, logger }),
		newMigrateCmd(func() (*config.Config, *slog.Logger) { return cfg, logger }),
	)
	return root
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
}
