package server

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/taskapi/internal/model"
	"github.com/sandeepkv93/taskapi/internal/scheduler"
	"github.com/sandeepkv93/taskapi/internal/storage"
)

func (s *Server) scheduleDue(task model.Task) {
	if s.watcher == nil || task.Completed {
		return
	}
	if !task.DueDate.After(time.Now()) {
		return
	}
	ev := scheduler.DueEvent{TaskID: task.ID, Title: task.Title, DueAt: task.DueDate}
	if err := s.watcher.Schedule(ev); err != nil {
		s.logf("schedule due notification for task %d: %v", task.ID, err)
	}
}

func (s *Server) rescheduleDue(task model.Task) {
	if s.watcher == nil {
		return
	}
	s.watcher.Cancel(task.ID)
	s.scheduleDue(task)
}

func (s *Server) cancelDue(id int64) {
	if s.watcher == nil {
		return
	}
	s.watcher.Cancel(id)
}

func (s *Server) scheduleExisting(ctx context.Context) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		s.logf("load tasks for due notifications: %v", err)
		return
	}
	for _, task := range tasks {
		s.scheduleDue(task)
	}
}

func (s *Server) watchDue(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.C():
			if !ok {
				return
			}
			s.notifyDue(ctx, ev)
		}
	}
}

// notifyDue re-reads the task before logging so events queued for
// tasks that were since completed, postponed, or deleted stay silent.
func (s *Server) notifyDue(ctx context.Context, ev scheduler.DueEvent) {
	task, err := s.repo.GetTask(ctx, ev.TaskID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, context.Canceled) {
			s.logf("check due task %d: %v", ev.TaskID, err)
		}
		return
	}
	if !task.Overdue(time.Now()) {
		return
	}
	s.logf("task %d due: %s", task.ID, task.Title)
}
