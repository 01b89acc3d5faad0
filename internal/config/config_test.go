package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TASKAPI_ADDR",
		"TASKAPI_DATABASE_DSN",
		"TASKAPI_NOTIFY",
		"TASKAPI_NOTIFY_BUFFER",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "taskapi.toml")
	body := `
[server]
addr = "127.0.0.1:9090"

[database]
dsn = "postgres://taskapi@localhost/taskapi?sslmode=disable"

[notify]
enabled = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "postgres://taskapi@localhost/taskapi?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN)
	}
	if cfg.Notify.Enabled {
		t.Fatal("expected notify to be disabled")
	}
	if cfg.Notify.Buffer != Default().Notify.Buffer {
		t.Fatalf("expected default buffer, got %d", cfg.Notify.Buffer)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "taskapi.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "taskapi.toml")
	body := `
[server]
addr = ":7000"

[notify]
buffer = 16
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TASKAPI_ADDR", ":7001")
	t.Setenv("TASKAPI_DATABASE_DSN", "override.db")
	t.Setenv("TASKAPI_NOTIFY", "off")
	t.Setenv("TASKAPI_NOTIFY_BUFFER", "128")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7001" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "override.db" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN)
	}
	if cfg.Notify.Enabled {
		t.Fatal("expected notify to be disabled")
	}
	if cfg.Notify.Buffer != 128 {
		t.Fatalf("unexpected buffer %d", cfg.Notify.Buffer)
	}
}

func TestEnvIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("TASKAPI_NOTIFY", "maybe")
	t.Setenv("TASKAPI_NOTIFY_BUFFER", "-3")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
