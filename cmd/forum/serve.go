package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/sunzone-forum/internal/common/bootstrap"
	"github.com/AlibekovAA/sunzone-forum/internal/common/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until interrupted",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port, overrides FORUM_HTTP_PORT")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Errorf("failed to start: %v", err)
		return err
	}

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), app.Handler(), log)
	return server.Run(ctx, srv, log, func(context.Context) error {
		return app.Close()
	})
}
