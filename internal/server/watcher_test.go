package server

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/taskapi/internal/model"
	"github.com/sandeepkv93/taskapi/internal/scheduler"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newWatchedServer(t *testing.T) (*Server, *scheduler.Engine, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	watcher := scheduler.NewEngine(8)
	srv, err := NewServer(ServerOptions{
		Repo:    openTestRepo(t),
		Watcher: watcher,
		Logger:  log.New(out, "", 0),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, watcher, out
}

func waitForLog(t *testing.T, out *syncBuffer, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), substr) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("log %q never appeared, got: %q", substr, out.String())
}

func TestNotifyDueChecksCurrentState(t *testing.T) {
	srv, _, out := newWatchedServer(t)
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Minute)

	due, err := srv.repo.CreateTask(ctx, model.Task{Title: "Pay rent", DueDate: past})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	srv.notifyDue(ctx, scheduler.DueEvent{TaskID: due.ID, Title: due.Title, DueAt: past})
	if !strings.Contains(out.String(), "task "+itoa(due.ID)+" due: Pay rent") {
		t.Fatalf("expected due log, got: %q", out.String())
	}

	done, err := srv.repo.CreateTask(ctx, model.Task{Title: "Already done", DueDate: past, Completed: true})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	before := out.String()
	srv.notifyDue(ctx, scheduler.DueEvent{TaskID: done.ID, Title: done.Title, DueAt: past})
	if out.String() != before {
		t.Fatalf("completed task must stay silent, got: %q", out.String())
	}

	srv.notifyDue(ctx, scheduler.DueEvent{TaskID: 404040, Title: "Phantom", DueAt: past})
	if out.String() != before {
		t.Fatalf("deleted task must stay silent, got: %q", out.String())
	}

	postponed, err := srv.repo.CreateTask(ctx, model.Task{Title: "Postponed", DueDate: past})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	postponed.DueDate = time.Now().UTC().Add(time.Hour)
	if err := srv.repo.UpdateTask(ctx, postponed); err != nil {
		t.Fatalf("update task: %v", err)
	}
	srv.notifyDue(ctx, scheduler.DueEvent{TaskID: postponed.ID, Title: postponed.Title, DueAt: past})
	if out.String() != before {
		t.Fatalf("postponed task must stay silent, got: %q", out.String())
	}
}

func TestScheduledDueEventIsLogged(t *testing.T) {
	srv, watcher, out := newWatchedServer(t)
	watcher.Start()
	t.Cleanup(watcher.Stop)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.watchDue(ctx)

	created, err := srv.repo.CreateTask(ctx, model.Task{
		Title:   "Ship release",
		DueDate: time.Now().UTC().Add(40 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	srv.scheduleDue(created)

	waitForLog(t, out, "due: Ship release")
}

func TestScheduleExistingSkipsCompleted(t *testing.T) {
	srv, watcher, out := newWatchedServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	soon := time.Now().UTC().Add(40 * time.Millisecond)

	if _, err := srv.repo.CreateTask(ctx, model.Task{Title: "Soon", DueDate: soon}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := srv.repo.CreateTask(ctx, model.Task{Title: "Finished", DueDate: soon, Completed: true}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	watcher.Start()
	t.Cleanup(watcher.Stop)
	srv.scheduleExisting(ctx)
	go srv.watchDue(ctx)

	waitForLog(t, out, "due: Soon")
	if strings.Contains(out.String(), "Finished") {
		t.Fatalf("completed task must not be scheduled: %q", out.String())
	}
}

func TestDeleteCancelsPendingNotification(t *testing.T) {
	srv, watcher, out := newWatchedServer(t)
	watcher.Start()
	t.Cleanup(watcher.Stop)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.watchDue(ctx)

	doomed, err := srv.repo.CreateTask(ctx, model.Task{
		Title:   "Doomed",
		DueDate: time.Now().UTC().Add(60 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	kept, err := srv.repo.CreateTask(ctx, model.Task{
		Title:   "Kept",
		DueDate: time.Now().UTC().Add(90 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	srv.scheduleDue(doomed)
	srv.scheduleDue(kept)

	if _, err := srv.repo.DeleteTask(ctx, doomed.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	srv.cancelDue(doomed.ID)

	waitForLog(t, out, "due: Kept")
	if strings.Contains(out.String(), "Doomed") {
		t.Fatalf("cancelled task must stay silent: %q", out.String())
	}
}
