// Package dashboard orchestrates the visible task list and the
// aggregate stats behind it.
package dashboard

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskpanel/taskpanel/internal/logger"
	"github.com/taskpanel/taskpanel/internal/models"
	"github.com/taskpanel/taskpanel/internal/session"
)

// ViewMode selects which query populates the visible task list.
type ViewMode string

const (
	ViewAll   ViewMode = "all"
	ViewToday ViewMode = "today"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// TaskAPI is the slice of the remote API the dashboard drives.
type TaskAPI interface {
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	TasksByDate(ctx context.Context, date models.Date) ([]models.Task, error)
	TasksForCurrentWeek(ctx context.Context) ([]models.Task, error)
	TasksForCurrentMonth(ctx context.Context) ([]models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleCompletion(ctx context.Context, id int64, completed bool) (*models.Task, error)
	GetStats(ctx context.Context) (models.TaskStats, error)
}

// Confirmer gates destructive operations. A false return aborts the
// operation with no side effects.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Snapshot is a consistent copy of the dashboard state for rendering.
type Snapshot struct {
	View        ViewMode
	Tasks       []models.Task
	Stats       models.TaskStats
	Loading     bool
	FormVisible bool
	Selected    *models.Task
}

// Controller orchestrates the visible task list: it picks the query
// for the current view mode, holds the fetched collection and stats,
// and resyncs both after every mutation. Requests are not sequenced:
// rapid view changes may resolve out of order, and the last response
// to arrive wins.
type Controller struct {
	api     TaskAPI
	confirm Confirmer
	now     func() time.Time

	mu          sync.Mutex
	view        ViewMode
	tasks       []models.Task
	stats       models.TaskStats
	loading     bool
	formVisible bool
	selected    *models.Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the controller's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a controller in the unfiltered view.
func New(api TaskAPI, confirm Confirmer, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		confirm: confirm,
		now:     time.Now,
		view:    ViewAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind subscribes the controller to the session: whenever a user
// becomes present, the list and stats are loaded. Returns the
// subscription id.
func (c *Controller) Bind(sess *session.Store) int {
	return sess.Subscribe(func(user *models.User) {
		if user == nil {
			return
		}
		ctx := context.Background()
		c.LoadTasks(ctx)
		c.LoadStats(ctx)
	})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := make([]models.Task, len(c.tasks))
	copy(tasks, c.tasks)

	return Snapshot{
		View:        c.view,
		Tasks:       tasks,
		Stats:       c.stats,
		Loading:     c.loading,
		FormVisible: c.formVisible,
		Selected:    c.selected,
	}
}

// LoadTasks replaces the task list with the current view's query
// result. Fetch failures are logged and leave the previous list in
// place; loading clears either way.
func (c *Controller) LoadTasks(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	view := c.view
	c.mu.Unlock()

	tasks, err := c.queryFor(ctx, view)

	c.mu.Lock()
	if err == nil {
		c.tasks = tasks
	}
	c.loading = false
	c.mu.Unlock()

	if err != nil {
		logger.Error("load tasks", err, zap.String("view", string(view)))
	}
}

func (c *Controller) queryFor(ctx context.Context, view ViewMode) ([]models.Task, error) {
	switch view {
	case ViewToday:
		return c.api.TasksByDate(ctx, models.NewDate(c.now()))
	case ViewWeek:
		return c.api.TasksForCurrentWeek(ctx)
	case ViewMonth:
		return c.api.TasksForCurrentMonth(ctx)
	default:
		return c.api.GetAllTasks(ctx)
	}
}

// LoadStats refetches the aggregate independently of the list. On
// failure the previous stats stay untouched.
func (c *Controller) LoadStats(ctx context.Context) {
	stats, err := c.api.GetStats(ctx)
	if err != nil {
		logger.Error("load stats", err)
		return
	}

	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
}

// ChangeView switches the view mode and reloads the list.
func (c *Controller) ChangeView(ctx context.Context, view ViewMode) {
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()

	c.LoadTasks(ctx)
}

// Delete removes a task after the confirmation gate allows it. A
// denied confirmation issues no request. On success both the list and
// the stats are refetched.
func (c *Controller) Delete(ctx context.Context, task models.Task) error {
	if !c.confirm.Confirm("Delete task \"" + task.Title + "\"?") {
		return nil
	}

	if err := c.api.DeleteTask(ctx, task.ID); err != nil {
		logger.Error("delete task", err, zap.Int64("task_id", task.ID))
		return err
	}

	c.refresh(ctx)
	return nil
}

// Toggle flips the task's completed flag remotely, then resyncs.
func (c *Controller) Toggle(ctx context.Context, task models.Task) error {
	if _, err := c.api.ToggleCompletion(ctx, task.ID, !task.Completed); err != nil {
		logger.Error("toggle task", err, zap.Int64("task_id", task.ID))
		return err
	}

	c.refresh(ctx)
	return nil
}

// refresh resyncs list and stats after a successful mutation. There
// is no incremental patching; the server's view wins.
func (c *Controller) refresh(ctx context.Context) {
	c.LoadTasks(ctx)
	c.LoadStats(ctx)
}

// NewTask opens the form over an empty draft.
func (c *Controller) NewTask() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.formVisible = true
}

// EditTask opens the form pre-populated with the given task.
func (c *Controller) EditTask(task models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	selected := task
	c.selected = &selected
	c.formVisible = true
}

// FormSaved dismisses the form and resyncs after a successful save.
func (c *Controller) FormSaved(ctx context.Context) {
	c.mu.Lock()
	c.formVisible = false
	c.selected = nil
	c.mu.Unlock()

	c.refresh(ctx)
}

// FormCanceled dismisses the form with no side effects.
func (c *Controller) FormCanceled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formVisible = false
	c.selected = nil
}

// CompletionPercentage derives the dashboard's headline number from
// the fetched stats; zero total yields zero.
func (c *Controller) CompletionPercentage() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stats.TotalTasks == 0 {
		return 0
	}
	ratio := float64(c.stats.CompletedTasks) / float64(c.stats.TotalTasks)
	return int(math.Round(ratio * 100))
}
