package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	parcours "github.com/parcours-dev/parcours"
	"github.com/parcours-dev/parcours/internal/logging"
	httpAdapter "github.com/parcours-dev/parcours/pkg/adapters/http"
	"github.com/parcours-dev/parcours/pkg/adapters/postgres"
	redisAdapter "github.com/parcours-dev/parcours/pkg/adapters/redis"
	"github.com/parcours-dev/parcours/pkg/flow"
	"github.com/parcours-dev/parcours/pkg/routing"
	backend "github.com/redis/go-redis/v9"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard HTTP server",
	Long:  `Starts the in-person application wizard, exposing localized navigation endpoints over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(parseLevel(cfg.LogLevel))

		engineOpts, cleanup, err := buildStore(cfg)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		engineOpts = append(engineOpts, parcours.WithLogger(logger))

		engine, err := parcours.New(routing.Tree(), flow.InPerson(), engineOpts...)
		if err != nil {
			// Configuration defects abort startup, never limp into requests.
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(engine, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr, "store", cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("failed to close server", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

// buildStore wires the configured snapshot backend into engine options and
// returns a cleanup for whatever connections it opened.
func buildStore(cfg Config) ([]parcours.Option, func(), error) {
	switch cfg.Store {
	case "", "memory":
		return nil, func() {}, nil

	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisAdapter.NewFromClient(client,
			redisAdapter.WithPrefix(cfg.Redis.Prefix),
			redisAdapter.WithTTL(cfg.Redis.TTL),
		)
		opts := []parcours.Option{parcours.WithStore(store)}
		if cfg.Redis.Lock {
			opts = append(opts, parcours.WithLocker(redisAdapter.NewLocker(client, cfg.Redis.Prefix)))
		}
		return opts, func() { store.Close() }, nil

	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.CreateSchema(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to create schema: %w", err)
		}
		return []parcours.Option{parcours.WithStore(store)}, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
