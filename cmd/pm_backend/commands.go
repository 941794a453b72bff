package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_management_app/internal/platform/config"
	"github.com/SscSPs/property_management_app/internal/seed"
	"github.com/SscSPs/property_management_app/internal/utils"
	"github.com/SscSPs/property_management_app/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, 0, logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateDown, steps, logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 rolls back everything)")

	cmd.AddCommand(up, down)
	return cmd
}

func seedCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo buildings and houses",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer app.Close(logger)

			res, err := seed.Run(cmd.Context(), app.services.Building, app.services.House, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d buildings and %d houses (%d skipped)\n", res.Buildings, res.Houses, len(res.Skipped))
			return nil
		},
	}
}

func tokenCmd(cfg *config.Config) *cobra.Command {
	var subject string
	var expiry time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiry <= 0 {
				expiry = cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(subject, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "user ID placed in the sub claim")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
