package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskapi/internal/client"
	"github.com/sandeepkv93/taskapi/internal/model"
	"github.com/sandeepkv93/taskapi/internal/views"
)

type View string

const (
	ViewList   View = "Tasks"
	ViewDetail View = "Detail"
	ViewNew    View = "New"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New    string
	Toggle string
	Delete string
	Reload string
	Help   string
	Quit   string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDue
	FieldDescription
)

type FormState struct {
	Active bool
	Field  FormField
	Err    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	Tasks          []model.Task
	Cursor         int
	SelectedTaskID int64
	Palette        CommandPaletteState
	Form           FormState
	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Loading        bool
	Quitting       bool
	LastError      error
	Now            func() time.Time
	api            *client.Client
	// Bubble components used for rich TUI controls
	taskList     list.Model
	titleInput   textinput.Model
	dueInput     textinput.Model
	descArea     textarea.Model
	commandInput textinput.Model
	loadSpinner  spinner.Model
	helpModel    help.Model
	detailView   viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Tasks []model.Task
}

type TaskSavedMsg struct {
	Task    model.Task
	Created bool
}

type TaskDeletedMsg struct {
	Task model.Task
}

func New(api *client.Client) Model {
	m := Model{
		CurrentView: ViewList,
		Now:         time.Now,
		api:         api,
		Loading:     api != nil,
		Keys: GlobalKeyMap{
			New:    "n",
			Toggle: "c",
			Delete: "d",
			Reload: "r",
			Help:   "?",
			Quit:   "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks (list)"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.dueInput = textinput.New()
	m.dueInput.Prompt = "due> "
	m.dueInput.Placeholder = "2026-09-03 or 2026-09-03T09:00:00Z"
	m.dueInput.CharLimit = 64
	m.dueInput.Width = 42

	m.descArea = textarea.New()
	m.descArea.SetWidth(54)
	m.descArea.SetHeight(6)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "Task description (markdown)"

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailView = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		items = append(items, listItem{title: task.Title, description: task.DueDate.Format("2006-01-02 15:04")})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 && m.Cursor < len(items) {
		m.taskList.Select(m.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if selected, ok := m.currentTask(); ok {
		m.detailView.SetContent(views.RenderMarkdown(selected.Description))
	}
}

func (m *Model) ensureListState() {
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Tasks) && len(m.Tasks) > 0 {
		m.Cursor = len(m.Tasks) - 1
	}
	if len(m.Tasks) > 0 && m.SelectedTaskID == 0 {
		m.syncSelectedTaskToCursor()
	}
}

func (m *Model) syncSelectedTaskToCursor() {
	if selected, ok := m.currentTask(); ok {
		m.SelectedTaskID = selected.ID
	}
}

func (m Model) currentTask() (model.Task, bool) {
	if len(m.Tasks) == 0 {
		return model.Task{}, false
	}
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m Model) taskByID(id int64) (model.Task, bool) {
	for _, task := range m.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) taskRows() []views.TaskRowData {
	now := m.Now()
	rows := make([]views.TaskRowData, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		rows = append(rows, views.TaskRowData{
			ID:        task.ID,
			Title:     task.Title,
			DueAt:     task.DueDate.Format("2006-01-02 15:04"),
			Completed: task.Completed,
			Overdue:   task.Overdue(now),
		})
	}
	return rows
}

func (m Model) fieldName() string {
	switch m.Form.Field {
	case FieldDue:
		return "due"
	case FieldDescription:
		return "description"
	default:
		return "title"
	}
}

func statusForTask(verb string, task model.Task) StatusBar {
	return StatusBar{Text: fmt.Sprintf("%s task %d: %s", verb, task.ID, task.Title), IsError: false}
}

func defaultDue(now time.Time) time.Time {
	y, mo, d := now.Date()
	return time.Date(y, mo, d, 23, 59, 0, 0, now.Location())
}

func isKnownView(v View) bool {
	switch v {
	case ViewList, ViewDetail, ViewNew:
		return true
	default:
		return false
	}
}
