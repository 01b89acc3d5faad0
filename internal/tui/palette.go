package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskapi/internal/commands"
	"github.com/sandeepkv93/taskapi/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	var pending tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due := a.Due
			if due.IsZero() {
				due = defaultDue(m.Now())
			}
			task := model.Task{Title: a.Title, DueDate: due}
			pending = m.createTaskCmd(task)
			return commands.Result{Message: fmt.Sprintf("creating task: %s", a.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			task, ok := m.taskByID(d.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no loaded task with id %d", d.ID)}
			}
			if task.Completed {
				return commands.Result{Message: fmt.Sprintf("task %d already completed", d.ID)}, nil
			}
			task.Completed = true
			pending = m.saveTaskCmd(task)
			return commands.Result{Message: fmt.Sprintf("completing task %d", d.ID)}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			pending = m.deleteTaskCmd(r.ID)
			return commands.Result{Message: fmt.Sprintf("deleting task %d", r.ID)}, nil
		},
		Reload: func() (commands.Result, error) {
			pending = m.loadTasksCmd()
			return commands.Result{Message: "reloading tasks"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		pending = nil
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, pending
}
