package main

import (
	"log/slog"

	"github.com/bionutrex/internal/config"
	"github.com/bionutrex/internal/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfg config.AppConfig
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cmsctl",
		Short:         "BioNutrex CMS admin tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.New(cfg.Env, cfg.LogLevel)
			return nil
		},
	}

	cmd.AddCommand(
		newSeedCmd(opts),
		newChangesCmd(opts),
		newPublishCmd(opts),
	)
	return cmd
}
