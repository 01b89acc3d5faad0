package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskapi/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db, DialectSQLite); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db, DialectSQLite); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db, DialectSQLite); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	created, err := repo.CreateTask(t.Context(), model.Task{
		Title:       "Roundtrip task",
		Description: "migration compatibility",
		DueDate:     due,
	})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTask(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Roundtrip task" {
		t.Fatalf("unexpected title after roundtrip: %q", got.Title)
	}
}

func TestDialectFor(t *testing.T) {
	cases := []struct {
		dsn  string
		want Dialect
	}{
		{"postgres://user:pw@localhost:5432/tasks?sslmode=disable", DialectPostgres},
		{"postgresql://localhost/tasks", DialectPostgres},
		{"tasks.db", DialectSQLite},
		{"/var/lib/taskapi/tasks.db", DialectSQLite},
		{":memory:", DialectSQLite},
	}
	for _, tc := range cases {
		if got := DialectFor(tc.dsn); got != tc.want {
			t.Fatalf("DialectFor(%q) = %s, want %s", tc.dsn, got, tc.want)
		}
	}
}
