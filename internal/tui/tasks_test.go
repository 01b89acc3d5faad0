package tui

import (
	"database/sql"
	"io"
	"log"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskapi/internal/client"
	"github.com/sandeepkv93/taskapi/internal/server"
	"github.com/sandeepkv93/taskapi/internal/storage"
)

func newServedModel(t *testing.T) Model {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tui-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db, storage.DialectSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	srv, err := server.NewServer(server.ServerOptions{
		Repo:   repo,
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	m := New(client.NewClient(ts.URL))
	m.Now = fixedNow
	return m
}

func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command to run")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func reload(t *testing.T, m Model) Model {
	t.Helper()
	return runCmd(t, m, m.loadTasksCmd())
}

func TestTaskLifecycleAgainstServer(t *testing.T) {
	m := newServedModel(t)

	m = reload(t, m)
	if len(m.Tasks) != 0 {
		t.Fatalf("expected empty store, got %d tasks", len(m.Tasks))
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("add pay rent due:2026-09-03")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	m = runCmd(t, m, cmd)
	if !strings.Contains(m.Status.Text, "created task") {
		t.Fatalf("unexpected status after create: %+v", m.Status)
	}

	m = reload(t, m)
	if len(m.Tasks) != 1 || m.Tasks[0].Title != "pay rent" {
		t.Fatalf("unexpected tasks after create: %+v", m.Tasks)
	}
	if m.Tasks[0].Completed {
		t.Fatal("expected new task to start incomplete")
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = updated.(Model)
	m = runCmd(t, m, cmd)
	m = reload(t, m)
	if !m.Tasks[0].Completed {
		t.Fatal("expected task completed after toggle")
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	m = runCmd(t, m, cmd)
	if !strings.Contains(m.Status.Text, "deleted task") || !strings.Contains(m.Status.Text, "pay rent") {
		t.Fatalf("expected prior state in delete status, got %+v", m.Status)
	}

	m = reload(t, m)
	if len(m.Tasks) != 0 {
		t.Fatalf("expected empty store after delete, got %d tasks", len(m.Tasks))
	}
}

func TestDeleteMissingTaskSurfacesError(t *testing.T) {
	m := newServedModel(t)
	m = reload(t, m)

	m = runCmd(t, m, m.deleteTaskCmd(42))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no longer exists") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}
