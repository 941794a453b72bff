package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/property_management_app/internal/platform/config"
	"github.com/spf13/cobra"
)

//go:generate swag init -g main.go -d .,../../internal/handlers,../../internal/dto -o ../docs

// @title Property Management API
// @version 1.0
// @description Buildings, houses, tenants and rent payments with derived occupancy.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "pm_backend",
		Short:         "Property management back end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCmd(cfg, logger),
		migrateCmd(cfg, logger),
		seedCmd(cfg, logger),
		tokenCmd(cfg),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
