package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

type TaskRowData struct {
	ID        int64
	Title     string
	DueAt     string
	Completed bool
	Overdue   bool
}

type TaskListPanelData struct {
	ListView    string
	Rows        []TaskRowData
	SelectedID  int64
	Loading     bool
	SpinnerView string
}

type DetailPanelData struct {
	ID           int64
	Title        string
	DueAt        string
	Completed    bool
	Overdue      bool
	MarkdownView string
}

type FormPanelData struct {
	TitleView       string
	DueView         string
	DescriptionView string
	Field           string
	ErrorText       string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [j/k]move [enter]detail [n]new [c]toggle [d]delete [r]reload\n")
	if data.Loading {
		b.WriteString("loading: " + data.SpinnerView + "\n")
	}
	b.WriteString(data.ListView + "\n")

	overdue := make([]TaskRowData, 0)
	pending := make([]TaskRowData, 0)
	done := make([]TaskRowData, 0)
	for _, row := range data.Rows {
		switch {
		case row.Completed:
			done = append(done, row)
		case row.Overdue:
			overdue = append(overdue, row)
		default:
			pending = append(pending, row)
		}
	}
	renderTaskSection(&b, "Overdue", overdue, data.SelectedID)
	renderTaskSection(&b, "Pending", pending, data.SelectedID)
	renderTaskSection(&b, "Done", done, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailPanelData) string {
	state := "pending"
	if data.Completed {
		state = "completed"
	} else if data.Overdue {
		state = "overdue"
	}

	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString("actions: [j/k]scroll [c]toggle [esc]back\n")
	b.WriteString(fmt.Sprintf("id: %d\n", data.ID))
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("due: %s\n", data.DueAt))
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	b.WriteString("\ndescription:\n")
	b.WriteString(data.MarkdownView)
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString("new-task:\n")
	b.WriteString("keys: [tab]next field [ctrl+s]save [esc]cancel\n")
	b.WriteString(fmt.Sprintf("field: %s\n", data.Field))
	b.WriteString("title: " + data.TitleView + "\n")
	b.WriteString("due: " + data.DueView + "\n")
	b.WriteString("description:\n" + data.DescriptionView + "\n")
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderTaskSection(b *strings.Builder, title string, rows []TaskRowData, selectedID int64) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, row := range rows {
		cursor := " "
		if selectedID == row.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s #%d %s due:%s\n",
			cursor, urgencyBadge(row), row.ID, truncate.StringWithTail(row.Title, 32, "…"), row.DueAt))
	}
}

func urgencyBadge(row TaskRowData) string {
	if row.Completed {
		return "[GREEN]"
	}
	if row.Overdue {
		return "[RED]"
	}
	return "[YELLOW]"
}
