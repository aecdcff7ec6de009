package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/api"
	"github.com/edgewatch/backend/internal/api/handlers"
	"github.com/edgewatch/backend/internal/cooldown"
	"github.com/edgewatch/backend/internal/history"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/database"
	"github.com/edgewatch/backend/pkg/logger"
)

var servePort string

// serveCmd starts the read-only API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scan artifacts over HTTP",
	Long: `Starts the read-only API server over the scan artifacts.

Endpoints:
  GET /health
  GET /api/v1/leaderboard/{variant}
  GET /api/v1/cooldown
  GET /api/v1/history/{variant}

Example:
  go run ./cmd/edgewatch serve --port 8087`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)

	store := cooldown.NewStore(cfg.CooldownPath(), cfg.Scan.CooldownDays, log)

	var hist *history.Repository
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		hist = history.NewRepository(db.Pool)
	}

	handler := handlers.NewScanHandler(cfg, store, hist, log)
	router := api.NewRouter(handler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
