package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskapi/internal/client"
	"github.com/sandeepkv93/taskapi/internal/taskfile"
)

const clientTimeout = 30 * time.Second

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create tasks from a YAML taskfile through a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the server's current tasks to a YAML taskfile",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := taskfile.Load(args[0])
	if err != nil {
		return err
	}

	api := client.NewClient(serverURL(cfg))
	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	for i, task := range tasks {
		task.ID = 0
		created, createErr := api.CreateTask(ctx, task)
		if createErr != nil {
			return fmt.Errorf("import tasks[%d] %q: %w", i, task.Title, createErr)
		}
		fmt.Printf("created task %d: %s\n", created.ID, created.Title)
	}
	fmt.Printf("imported %d tasks\n", len(tasks))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	api := client.NewClient(serverURL(cfg))
	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()

	tasks, err := api.ListTasks(ctx)
	if err != nil {
		return err
	}
	if err := taskfile.Save(args[0], tasks); err != nil {
		return err
	}
	fmt.Printf("exported %d tasks to %s\n", len(tasks), args[0])
	return nil
}
