// Package config handles loading taskapi.toml configuration files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the taskapi.toml configuration file.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Notify   Notify   `toml:"notify"`
}

// Server contains HTTP listener configuration.
type Server struct {
	Addr string `toml:"addr"`
}

// Database contains the storage connection string.
type Database struct {
	// DSN selects the engine: postgres:// URLs use Postgres, anything
	// else is treated as a SQLite path.
	DSN string `toml:"dsn"`
}

// Notify contains due-notification configuration.
type Notify struct {
	Enabled bool `toml:"enabled"`
	Buffer  int  `toml:"buffer"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:   Server{Addr: ":8080"},
		Database: Database{DSN: "taskapi.db"},
		Notify:   Notify{Enabled: true, Buffer: 64},
	}
}

// Load reads the config file at path, tolerating a missing file, then
// applies TASKAPI_* environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, decodeErr := toml.Decode(string(data), &cfg); decodeErr != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, decodeErr)
		}
	}

	return fromEnv(cfg), nil
}

func fromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKAPI_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := getEnvString("TASKAPI_DATABASE_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := getEnvBool("TASKAPI_NOTIFY"); ok {
		cfg.Notify.Enabled = v
	}
	if v, ok := getEnvInt("TASKAPI_NOTIFY_BUFFER"); ok && v > 0 {
		cfg.Notify.Buffer = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
