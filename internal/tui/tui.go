// Package tui is the interactive terminal front end. It follows the
// usual Bubble Tea shape: a single Model, key-driven mode switches,
// and remote work pushed into commands so the event loop never
// blocks.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskpanel/taskpanel/internal/dashboard"
	"github.com/taskpanel/taskpanel/internal/forms"
	"github.com/taskpanel/taskpanel/internal/models"
	"github.com/taskpanel/taskpanel/internal/session"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
	modeList
	modeForm
	modeConfirmDelete
)

// field indexes of the task form; the last two cycle through enums
// instead of taking text.
const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldPriority
	fieldCategory
	taskFieldCount
)

type Model struct {
	sess *session.Store
	ctrl *dashboard.Controller
	api  forms.TaskSaver
	now  func() time.Time

	mode   mode
	inputs []textinput.Model
	focus  int
	cursor int
	status string

	taskForm     *forms.TaskForm
	loginForm    *forms.LoginForm
	registerForm *forms.RegisterForm
	pendingDel   *models.Task

	width int
}

// Messages produced by commands.
type refreshedMsg struct{}

type authDoneMsg struct {
	ok     bool
	errMsg string
}

type formDoneMsg struct {
	saved  bool
	errMsg string
}

type mutationDoneMsg struct{}

// New builds the root model. When the session was restored the UI
// opens straight on the dashboard.
func New(sess *session.Store, ctrl *dashboard.Controller, api forms.TaskSaver) Model {
	m := Model{
		sess: sess,
		ctrl: ctrl,
		api:  api,
		now:  time.Now,
		mode: modeLogin,
	}

	if sess.CurrentUser() != nil {
		m.mode = modeList
	} else {
		m.enterLogin()
	}

	return m
}

// Run starts the program and blocks until quit.
func Run(sess *session.Store, ctrl *dashboard.Controller, api forms.TaskSaver) error {
	_, err := tea.NewProgram(New(sess, ctrl, api), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.mode == modeList {
		return m.refreshCmd()
	}
	return textinput.Blink
}

// refreshCmd reloads the list and the stats off the event loop.
func (m Model) refreshCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx := context.Background()
		ctrl.LoadTasks(ctx)
		ctrl.LoadStats(ctx)
		return refreshedMsg{}
	}
}

func (m Model) changeViewCmd(view dashboard.ViewMode) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.ChangeView(context.Background(), view)
		return refreshedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case refreshedMsg:
		snap := m.ctrl.Snapshot()
		m.cursor = clampCursor(m.cursor, len(snap.Tasks))
		return m, nil
	case mutationDoneMsg:
		snap := m.ctrl.Snapshot()
		m.cursor = clampCursor(m.cursor, len(snap.Tasks))
		return m, nil
	case authDoneMsg:
		if msg.ok {
			m.mode = modeList
			m.status = ""
			return m, m.refreshCmd()
		}
		m.status = msg.errMsg
		return m, nil
	case formDoneMsg:
		if msg.saved {
			m.mode = modeList
			m.taskForm = nil
			m.status = "Saved"
			return m, func() tea.Msg { return refreshedMsg{} }
		}
		m.status = msg.errMsg
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeLogin:
		return m.updateLogin(msg)
	case modeRegister:
		return m.updateRegister(msg)
	case modeForm:
		return m.updateTaskForm(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg.String())
	default:
		return m.updateList(msg.String())
	}
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	tasks := visibleTasks(snap)
	// The list may have shrunk in a command goroutine since the cursor
	// last moved; clamp before any indexing.
	m.cursor = clampCursor(m.cursor, len(tasks))

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case "up", "k":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(tasks))
		}
	case "1":
		return m, m.changeViewCmd(dashboard.ViewAll)
	case "2":
		return m, m.changeViewCmd(dashboard.ViewToday)
	case "3":
		return m, m.changeViewCmd(dashboard.ViewWeek)
	case "4":
		return m, m.changeViewCmd(dashboard.ViewMonth)
	case "r":
		return m, m.refreshCmd()
	case "a":
		m.ctrl.NewTask()
		m.enterTaskForm(nil)
		return m, textinput.Blink
	case "e":
		if len(tasks) == 0 {
			m.status = "No task selected"
			return m, nil
		}
		task := tasks[m.cursor]
		m.ctrl.EditTask(task)
		m.enterTaskForm(&task)
		return m, textinput.Blink
	case " ", "t":
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.cursor]
		ctrl := m.ctrl
		return m, func() tea.Msg {
			_ = ctrl.Toggle(context.Background(), task)
			return mutationDoneMsg{}
		}
	case "d":
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.cursor]
		m.pendingDel = &task
		m.mode = modeConfirmDelete
		return m, nil
	case "o":
		m.sess.Logout()
		m.enterLogin()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		task := m.pendingDel
		m.pendingDel = nil
		m.mode = modeList
		if task == nil {
			return m, nil
		}
		ctrl := m.ctrl
		m.status = "Deleted"
		return m, func() tea.Msg {
			_ = ctrl.Delete(context.Background(), *task)
			return mutationDoneMsg{}
		}
	case "n", "N", "esc":
		m.pendingDel = nil
		m.mode = modeList
		m.status = "Delete cancelled"
		return m, nil
	}
	return m, nil
}

func (m *Model) enterLogin() {
	m.mode = modeLogin
	m.loginForm = forms.NewLoginForm(m.sess)
	m.inputs = makeInputs("email", "password")
	m.inputs[1].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.inputs[0].Focus()
	m.status = ""
}

func (m *Model) enterRegister() {
	m.mode = modeRegister
	m.registerForm = forms.NewRegisterForm(m.sess)
	m.inputs = makeInputs("name", "email", "password", "confirm password")
	m.inputs[2].EchoMode = textinput.EchoPassword
	m.inputs[3].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.inputs[0].Focus()
	m.status = ""
}

func (m *Model) enterTaskForm(editing *models.Task) {
	m.mode = modeForm
	m.taskForm = forms.NewTaskForm(m.api, editing, m.now)
	m.inputs = makeInputs("title", "description", "date (YYYY-MM-DD)")
	m.inputs[fieldTitle].SetValue(m.taskForm.Draft.Title)
	m.inputs[fieldDescription].SetValue(m.taskForm.Draft.Description)
	m.inputs[fieldDate].SetValue(m.taskForm.Draft.TaskDate.String())
	m.focus = fieldTitle
	m.inputs[0].Focus()
	m.status = ""
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		m.enterRegister()
		return m, textinput.Blink
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		form := m.loginForm
		form.Draft = models.LoginRequest{
			Email:    strings.TrimSpace(m.inputs[0].Value()),
			Password: m.inputs[1].Value(),
		}
		if !form.Valid() {
			m.status = "Email and password are required"
			return m, nil
		}
		m.status = "Signing in..."
		return m, func() tea.Msg {
			var saved bool
			form.OnSaved = func() { saved = true }
			form.Submit(context.Background())
			return authDoneMsg{ok: saved, errMsg: form.Err}
		}
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.enterLogin()
		return m, textinput.Blink
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		form := m.registerForm
		form.Draft = models.RegisterRequest{
			Name:            strings.TrimSpace(m.inputs[0].Value()),
			Email:           strings.TrimSpace(m.inputs[1].Value()),
			Password:        m.inputs[2].Value(),
			ConfirmPassword: m.inputs[3].Value(),
		}
		if !form.Valid() {
			m.status = "Check the fields: name, email, password (6+), matching confirmation"
			return m, nil
		}
		m.status = "Creating account..."
		return m, func() tea.Msg {
			var saved bool
			form.OnSaved = func() { saved = true }
			form.Submit(context.Background())
			return authDoneMsg{ok: saved, errMsg: form.Err}
		}
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.taskForm

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		form.Cancel()
		m.ctrl.FormCanceled()
		m.mode = modeList
		m.taskForm = nil
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.cycleFormFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFormFocus(-1)
		return m, nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.focus {
		case fieldPriority:
			form.Draft.Priority = cycleEnum(models.Priorities, form.Draft.Priority, delta)
			return m, nil
		case fieldCategory:
			form.Draft.Category = cycleEnum(models.Categories, form.Draft.Category, delta)
			return m, nil
		}
	case "enter":
		if m.focus < taskFieldCount-1 {
			m.cycleFormFocus(1)
			return m, nil
		}
		m.collectTaskDraft()
		if !form.Valid() {
			m.status = "Title and date are required"
			return m, nil
		}
		ctrl := m.ctrl
		m.status = "Saving..."
		return m, func() tea.Msg {
			var saved bool
			form.OnSaved = func() { saved = true }
			form.Submit(context.Background())
			if saved {
				ctrl.FormSaved(context.Background())
			}
			return formDoneMsg{saved: saved, errMsg: form.Err}
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// collectTaskDraft copies the text inputs back into the form draft.
func (m *Model) collectTaskDraft() {
	form := m.taskForm
	form.Draft.Title = strings.TrimSpace(m.inputs[fieldTitle].Value())
	form.Draft.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())

	if date, err := models.ParseDate(strings.TrimSpace(m.inputs[fieldDate].Value())); err == nil {
		form.Draft.TaskDate = date
	} else {
		form.Draft.TaskDate = models.Date{}
	}
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) cycleFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = wrapIndex(m.focus+delta, len(m.inputs))
	m.inputs[m.focus].Focus()
}

// cycleFormFocus moves across all task form fields, including the
// two enum rows that have no text input.
func (m *Model) cycleFormFocus(delta int) {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = wrapIndex(m.focus+delta, taskFieldCount)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}

func makeInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	return inputs
}

func cycleEnum[T comparable](values []T, current T, delta int) T {
	for i, v := range values {
		if v == current {
			return values[wrapIndex(i+delta, len(values))]
		}
	}
	return values[0]
}

func wrapIndex(i, length int) int {
	if length == 0 {
		return 0
	}
	return ((i % length) + length) % length
}

func clampCursor(i, length int) int {
	if length == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
