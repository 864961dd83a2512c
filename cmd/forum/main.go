package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/sunzone-forum/internal/common/config"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

var (
	flagPort        string
	flagDatabaseURL string
)

var rootCmd = &cobra.Command{
	Use:           "forum [command] [flags]",
	Short:         "Sunzone forum API: posters, responders, posts and comments",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "database url, overrides DATABASE_URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "forum: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig() (config.ForumConfig, error) {
	if flagDatabaseURL != "" {
		if err := os.Setenv("DATABASE_URL", flagDatabaseURL); err != nil {
			return config.ForumConfig{}, fmt.Errorf("apply --database-url: %w", err)
		}
	}

	cfg, err := config.LoadForumConfig()
	if err != nil {
		return config.ForumConfig{}, fmt.Errorf("load config: %w", err)
	}
	if flagPort != "" {
		cfg.HTTPPort = flagPort
	}
	return cfg, nil
}

func newLogger(cfg config.ForumConfig) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogDir, "forum", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
