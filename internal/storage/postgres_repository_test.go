package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sandeepkv93/taskapi/internal/model"
)

// Needs a reachable server, so the suite is gated on
// TASKAPI_TEST_POSTGRES_DSN and skipped otherwise.
func setupPostgresRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("TASKAPI_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TASKAPI_TEST_POSTGRES_DSN not set")
	}

	repo, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := MigrateDown(repo.db, DialectPostgres); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if err := MigrateUp(repo.db, DialectPostgres); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	return repo
}

func TestPostgresTaskCRUDAndList(t *testing.T) {
	repo := setupPostgresRepo(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	created, err := repo.CreateTask(ctx, model.Task{
		Title:       "Postgres task",
		Description: "server-side ids",
		DueDate:     due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected store-assigned id, got: %#v", created)
	}

	got, err := repo.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !sameTask(got, created) {
		t.Fatalf("get mismatch: got %#v want %#v", got, created)
	}

	created.Title = "Postgres task v2"
	created.Completed = true
	if err := repo.UpdateTask(ctx, created); err != nil {
		t.Fatalf("update task: %v", err)
	}

	list, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Postgres task v2" {
		t.Fatalf("unexpected list: %#v", list)
	}

	deleted, err := repo.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if !deleted.Completed {
		t.Fatalf("delete must return prior state: %#v", deleted)
	}

	if _, err := repo.GetTask(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.UpdateTask(ctx, created); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got: %v", err)
	}
}
