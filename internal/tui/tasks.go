package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskapi/internal/client"
	"github.com/sandeepkv93/taskapi/internal/model"
)

const requestTimeout = 10 * time.Second

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectedTaskToCursor()
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		m.syncSelectedTaskToCursor()
	case "enter":
		if _, ok := m.currentTask(); ok {
			m.CurrentView = ViewDetail
			m.detailView.GotoTop()
		}
	case m.Keys.Toggle:
		return m.toggleSelectedTask()
	case m.Keys.Delete:
		selected, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleting task %d", selected.ID), IsError: false}
		return m, m.deleteTaskCmd(selected.ID)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		return m, nil
	case m.Keys.Toggle:
		return m.toggleSelectedTask()
	}
	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m Model) toggleSelectedTask() (Model, tea.Cmd) {
	selected, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	selected.Completed = !selected.Completed
	verb := "completing"
	if !selected.Completed {
		verb = "reopening"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s task %d", verb, selected.ID), IsError: false}
	return m, m.saveTaskCmd(selected)
}

func (m Model) loadTasksCmd() tea.Cmd {
	api := m.api
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tasks, err := api.ListTasks(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func (m Model) createTaskCmd(task model.Task) tea.Cmd {
	api := m.api
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		created, err := api.CreateTask(ctx, task)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: created, Created: true}
	}
}

func (m Model) saveTaskCmd(task model.Task) tea.Cmd {
	api := m.api
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.UpdateTask(ctx, task); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return AppErrorMsg{Err: fmt.Errorf("task %d no longer exists", task.ID)}
			}
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: task}
	}
}

func (m Model) deleteTaskCmd(id int64) tea.Cmd {
	api := m.api
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		deleted, err := api.DeleteTask(ctx, id)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return AppErrorMsg{Err: fmt.Errorf("task %d no longer exists", id)}
			}
			return AppErrorMsg{Err: err}
		}
		return TaskDeletedMsg{Task: deleted}
	}
}
