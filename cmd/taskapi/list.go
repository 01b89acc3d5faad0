package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/taskapi/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks from a running server",
	RunE:  runList,
}

var listJSON bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
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

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tDUE")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			task.ID, doneMarker(task.Completed), task.Title, task.DueDate.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

const (
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func doneMarker(completed bool) string {
	if !completed {
		return "[ ]"
	}
	if ansiEnabled() {
		return ansiGreen + "[x]" + ansiReset
	}
	return "[x]"
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
