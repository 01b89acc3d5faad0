package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskapi/internal/scheduler"
	"github.com/sandeepkv93/taskapi/internal/server"
	"github.com/sandeepkv93/taskapi/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the task API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, dialect, err := storage.OpenDB(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := storage.MigrateUp(db, dialect); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	repo, err := storage.NewRepository(db, dialect)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer repo.Close()

	var watcher *scheduler.Engine
	if cfg.Notify.Enabled {
		watcher = scheduler.NewEngine(cfg.Notify.Buffer)
	}

	logger := newLogger()
	srv, err := server.NewServer(server.ServerOptions{
		Repo:    repo,
		Watcher: watcher,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	logger.Printf("listening on %s (%s)", cfg.Server.Addr, dialect)
	return srv.Serve(cfg.Server.Addr)
}
