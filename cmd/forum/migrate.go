package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back Postgres schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(func(dsn string, log *logger.Logger) error {
			return db.MigrateUp(log, dsn)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations, all of them when steps is omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return runMigrate(func(dsn string, log *logger.Logger) error {
			return db.MigrateDown(log, dsn, steps)
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

// runMigrate resolves the database url and runs fn against it. SQLite
// stores bring their schema up to date when opened, so there is nothing
// to run for them.
func runMigrate(fn func(dsn string, log *logger.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	backend, dsn, err := db.ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if backend != db.BackendPostgres {
		log.Infof("migrations: %s schema is applied on open, nothing to do", backend)
		return nil
	}
	return fn(dsn, log)
}
