package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskapi/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the configured database",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE:  runMigrate(storage.MigrateUp),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Apply all down migrations",
	RunE:  runMigrate(storage.MigrateDown),
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrate(apply func(*sql.DB, storage.Dialect) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, dialect, err := storage.OpenDB(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := apply(db, dialect); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
		fmt.Printf("migrated %s\n", dialect)
		return nil
	}
}
