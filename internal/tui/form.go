package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskapi/internal/commands"
	"github.com/sandeepkv93/taskapi/internal/model"
)

func (m Model) openForm() (Model, tea.Cmd) {
	m.CurrentView = ViewNew
	m.Form = FormState{Active: true, Field: FieldTitle}
	m.titleInput.SetValue("")
	m.dueInput.SetValue("")
	m.descArea.SetValue("")
	m.focusFormField()
	m.Status = StatusBar{Text: "new task form", IsError: false}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "new task cancelled", IsError: false}
		return m, nil
	case "tab":
		m.Form.Field = nextFormField(m.Form.Field)
		m.focusFormField()
		return m, nil
	case "shift+tab":
		m.Form.Field = previousFormField(m.Form.Field)
		m.focusFormField()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		switch m.Form.Field {
		case FieldTitle:
			m.Form.Field = FieldDue
			m.focusFormField()
			return m, nil
		case FieldDue:
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	switch m.Form.Field {
	case FieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FieldDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	case FieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	task := model.Task{
		Title:       strings.TrimSpace(m.titleInput.Value()),
		Description: m.descArea.Value(),
	}

	rawDue := strings.TrimSpace(m.dueInput.Value())
	if rawDue == "" {
		task.DueDate = defaultDue(m.Now())
	} else {
		due, err := commands.ParseDue(rawDue)
		if err != nil {
			m.Form.Err = fmt.Sprintf("invalid due time %q", rawDue)
			return m, nil
		}
		task.DueDate = due
	}

	if err := task.Validate(); err != nil {
		m.Form.Err = err.Error()
		return m, nil
	}

	m.closeForm()
	m.Status = StatusBar{Text: fmt.Sprintf("creating task: %s", task.Title), IsError: false}
	return m, m.createTaskCmd(task)
}

func (m *Model) closeForm() {
	m.Form = FormState{}
	m.CurrentView = ViewList
	m.titleInput.Blur()
	m.dueInput.Blur()
	m.descArea.Blur()
}

func (m *Model) focusFormField() {
	m.titleInput.Blur()
	m.dueInput.Blur()
	m.descArea.Blur()
	switch m.Form.Field {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldDue:
		m.dueInput.Focus()
	case FieldDescription:
		m.descArea.Focus()
	}
}

func nextFormField(f FormField) FormField {
	switch f {
	case FieldTitle:
		return FieldDue
	case FieldDue:
		return FieldDescription
	default:
		return FieldTitle
	}
}

func previousFormField(f FormField) FormField {
	switch f {
	case FieldDescription:
		return FieldDue
	case FieldDue:
		return FieldTitle
	default:
		return FieldDescription
	}
}
