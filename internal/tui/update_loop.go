package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskapi/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.api == nil {
		return nil
	}
	return tea.Batch(m.loadTasksCmd(), m.loadSpinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.ensureListState()

		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		if m.Form.Active {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.New:
			if m.CurrentView == ViewList {
				return m.openForm()
			}
		case m.Keys.Reload:
			if m.CurrentView == ViewList {
				return m.startLoad()
			}
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewList:
			return m.handleListKey(typed)
		case ViewDetail:
			return m.handleDetailKey(typed)
		}
		return m, nil
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewNew {
				next, cmd := m.openForm()
				return next, cmd
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.Loading = false
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TasksLoadedMsg:
		m.Loading = false
		m.Tasks = typed.Tasks
		m.ensureListState()
		m.syncSelectedTaskToCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d tasks", len(typed.Tasks)), IsError: false}
		return m, nil
	case TaskSavedMsg:
		verb := "updated"
		if typed.Created {
			verb = "created"
		}
		m.Status = statusForTask(verb, typed.Task)
		m.SelectedTaskID = typed.Task.ID
		return m.startLoadKeepStatus()
	case TaskDeletedMsg:
		m.Status = statusForTask("deleted", typed.Task)
		if m.CurrentView == ViewDetail {
			m.CurrentView = ViewList
		}
		return m.startLoadKeepStatus()
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewList:
		leftPane = m.renderListView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewDetail:
		leftPane = m.renderDetailView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewNew:
		leftPane = m.renderFormView()
		rightPane = m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskapi | view: %s | tasks: %d | selected: %d", m.CurrentView, len(m.Tasks), m.SelectedTaskID),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s new | %s toggle | %s delete | %s reload | / cmd | %s help | %s quit",
			m.Keys.New, m.Keys.Toggle, m.Keys.Delete, m.Keys.Reload, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderListView() string {
	return views.RenderTaskListPanel(views.TaskListPanelData{
		ListView:    m.taskList.View(),
		Rows:        m.taskRows(),
		SelectedID:  m.SelectedTaskID,
		Loading:     m.Loading,
		SpinnerView: m.loadSpinner.View(),
	})
}

func (m Model) renderDetailView() string {
	selected, ok := m.currentTask()
	if !ok {
		return "detail:\n(no selection)"
	}
	return views.RenderDetailPanel(views.DetailPanelData{
		ID:           selected.ID,
		Title:        selected.Title,
		DueAt:        selected.DueDate.Format("2006-01-02 15:04"),
		Completed:    selected.Completed,
		Overdue:      selected.Overdue(m.Now()),
		MarkdownView: m.detailView.View(),
	})
}

func (m Model) renderFormView() string {
	return views.RenderFormPanel(views.FormPanelData{
		TitleView:       m.titleInput.View(),
		DueView:         m.dueInput.View(),
		DescriptionView: m.descArea.View(),
		Field:           m.fieldName(),
		ErrorText:       m.Form.Err,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) startLoad() (Model, tea.Cmd) {
	if m.api == nil {
		return m, nil
	}
	m.Loading = true
	m.Status = StatusBar{Text: "loading tasks", IsError: false}
	return m, tea.Batch(m.loadTasksCmd(), m.loadSpinner.Tick)
}

func (m Model) startLoadKeepStatus() (Model, tea.Cmd) {
	if m.api == nil {
		return m, nil
	}
	m.Loading = true
	return m, tea.Batch(m.loadTasksCmd(), m.loadSpinner.Tick)
}
