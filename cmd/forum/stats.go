package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/AlibekovAA/sunzone-forum/internal/common/bootstrap"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print record counts per collection",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Keep log lines off stdout so the table stays readable.
	cfg.LogLevel = "error"
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	cfg.AutoMigrate = false
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	stats, err := app.Stats(ctx)
	if err != nil {
		return fmt.Errorf("collect stats: %w", err)
	}

	renderStats(cmd.OutOrStdout(), stats)
	return nil
}

func renderStats(w io.Writer, stats bootstrap.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Collection", "Records"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	rows := []struct {
		name  string
		count int
	}{
		{"posters", stats.Posters},
		{"responders", stats.Responders},
		{"posts", stats.Posts},
		{"comments", stats.Comments},
	}
	for _, row := range rows {
		table.Append([]string{row.name, strconv.Itoa(row.count)})
	}
	table.Render()
}
