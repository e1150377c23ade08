package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskpanel/taskpanel/internal/apiclient"
	"github.com/taskpanel/taskpanel/internal/dashboard"
	"github.com/taskpanel/taskpanel/internal/models"
	"github.com/taskpanel/taskpanel/internal/tasklist"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
	activeView   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// visibleTasks applies the presenter's ordering to a snapshot.
func visibleTasks(snap dashboard.Snapshot) []models.Task {
	return tasklist.Sorted(snap.Tasks)
}

func (m Model) View() string {
	switch m.mode {
	case modeLogin:
		return m.viewAuth("Sign in", "enter submit • ctrl+r register • ctrl+c quit")
	case modeRegister:
		return m.viewAuth("Create account", "enter submit • esc back • ctrl+c quit")
	case modeForm:
		return m.viewTaskForm()
	default:
		return m.viewList()
	}
}

func (m Model) viewAuth(heading, help string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskpanel — " + heading))
	b.WriteString("\n\n")
	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewTaskForm() string {
	form := m.taskForm
	var b strings.Builder

	heading := "New task"
	if form.Editing() {
		heading = "Edit task"
	}
	b.WriteString(titleStyle.Render("taskpanel — " + heading))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString(m.enumRow(fieldPriority, "priority",
		apiclient.PriorityLabel(form.Draft.Priority),
		apiclient.PriorityColor(form.Draft.Priority)))
	b.WriteString(m.enumRow(fieldCategory, "category",
		apiclient.CategoryLabel(form.Draft.Category),
		apiclient.CategoryColor(form.Draft.Category)))

	b.WriteString("\n")
	if form.Loading {
		b.WriteString(dimStyle.Render("Saving..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("tab next field • left/right change value • enter save • esc cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) enumRow(field int, label, value, color string) string {
	marker := "  "
	if m.focus == field {
		marker = "> "
	}
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value)
	return fmt.Sprintf("%s%s: %s\n", marker, label, styled)
}

func (m Model) viewList() string {
	snap := m.ctrl.Snapshot()
	tasks := visibleTasks(snap)
	now := m.now()

	var b strings.Builder

	user := m.sess.CurrentUser()
	header := "taskpanel"
	if user != nil {
		header += " — " + user.Name
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%d tasks • %d done • %d pending • %d%% complete\n",
		snap.Stats.TotalTasks, snap.Stats.CompletedTasks,
		snap.Stats.PendingTasks, m.ctrl.CompletionPercentage()))

	b.WriteString(m.viewTabs(snap.View))
	b.WriteString("\n\n")

	switch {
	case snap.Loading:
		b.WriteString(dimStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(tasks) == 0:
		b.WriteString(dimStyle.Render("No tasks here. Press 'a' to add one."))
		b.WriteString("\n")
	default:
		for i, task := range tasks {
			b.WriteString(m.renderTaskRow(task, i == m.cursor, now))
		}
	}

	if m.mode == modeConfirmDelete && m.pendingDel != nil {
		b.WriteString("\n")
		b.WriteString(overdueStyle.Render(
			fmt.Sprintf("Delete %q? y/n", m.pendingDel.Title)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(
		"j/k move • space toggle • a add • e edit • d delete • 1-4 view • r refresh • o sign out • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewTabs(current dashboard.ViewMode) string {
	tabs := []struct {
		key  string
		view dashboard.ViewMode
	}{
		{"1 all", dashboard.ViewAll},
		{"2 today", dashboard.ViewToday},
		{"3 week", dashboard.ViewWeek},
		{"4 month", dashboard.ViewMonth},
	}

	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		if tab.view == current {
			parts[i] = activeView.Render(tab.key)
		} else {
			parts[i] = dimStyle.Render(tab.key)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTaskRow(task models.Task, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	priority := lipgloss.NewStyle().
		Foreground(lipgloss.Color(apiclient.PriorityColor(task.Priority))).
		Render(apiclient.PriorityLabel(task.Priority))
	category := lipgloss.NewStyle().
		Foreground(lipgloss.Color(apiclient.CategoryColor(task.Category))).
		Render(apiclient.CategoryLabel(task.Category))

	title := task.Title
	if task.Completed {
		title = doneStyle.Render(title)
	}

	marker := ""
	switch {
	case tasklist.IsOverdue(task, now):
		marker = " " + overdueStyle.Render("overdue")
	case tasklist.IsToday(task, now):
		marker = " " + todayStyle.Render("today")
	}

	return fmt.Sprintf("%s%s %s  %s  %s/%s%s\n",
		cursor, checkbox, title,
		dimStyle.Render(task.TaskDate.String()),
		priority, category, marker)
}
