package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bionutrex/internal/db"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		adminOnly bool
		demo      bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin and starter content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			dbOpts := db.Options{Path: cfg.DatabasePath, Logger: opts.log}
			if cfg.UsePostgres() {
				dbOpts.URL = cfg.DatabaseURL
			}
			if err := db.Init(dbOpts); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			password := cfg.SeedPassword()
			if password == "" {
				return errors.New("SEED_ADMIN_PASSWORD is required in production")
			}

			created, err := db.EnsureAdmin(db.DB, cfg.SeedAdminEmail, password, cfg.SeedAdminName)
			if err != nil {
				return err
			}
			if created {
				opts.log.Info("admin created", slog.String("email", cfg.SeedAdminEmail))
			} else {
				opts.log.Info("admin already exists", slog.String("email", cfg.SeedAdminEmail))
			}
			if adminOnly {
				return nil
			}

			n, err := db.SeedContent(db.DB, time.Now())
			if err != nil {
				return err
			}
			opts.log.Info("content seeded", slog.Int("created", n))

			if demo {
				n, err := db.SeedDemo(db.DB, time.Now())
				if err != nil {
					return err
				}
				opts.log.Info("demo content seeded", slog.Int("created", n))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&adminOnly, "admin-only", false, "only ensure the admin account")
	cmd.Flags().BoolVar(&demo, "demo", false, "also create demo sliders and posts")
	return cmd
}
