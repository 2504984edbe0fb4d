package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	redisAdapter "github.com/parcours-dev/parcours/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <session-id>",
	Short: "List the tab snapshots stored under a session",
	Long:  `Inspects the configured store and prints every tab id and its current flow state for the given session. Requires a redis store.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Store != "redis" {
			fmt.Println("sessions requires a redis store (set store: redis in the config)")
			os.Exit(1)
		}

		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisAdapter.NewFromClient(client, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sessionID := args[0]
		tabs, err := store.List(ctx, sessionID)
		if err != nil {
			fmt.Printf("Error listing tabs: %v\n", err)
			os.Exit(1)
		}
		if len(tabs) == 0 {
			fmt.Println("No tab snapshots found")
			return
		}

		for _, tabID := range tabs {
			snap, err := store.Load(ctx, sessionID, tabID)
			if err != nil {
				fmt.Printf("%s\t<unreadable: %v>\n", tabID, err)
				continue
			}
			fmt.Printf("%s\t%s\n", tabID, snap.Value)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
