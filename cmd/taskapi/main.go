// Package main implements the taskapi CLI tool.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskapi/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskapi",
	Short: "Taskapi - a task record store with an HTTP API and terminal client",
}

var (
	flagConfig string
	flagAddr   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "taskapi.toml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Server address (overrides the configuration file)")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "taskapi: ", log.LstdFlags)
}

// serverURL turns a listen address like ":8080" into an address a
// client can dial.
func serverURL(cfg config.Config) string {
	addr := cfg.Server.Addr
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
