// Package forms holds the submit/cancel lifecycle of the input
// forms. Each form keeps a draft, a loading flag and an error string;
// persistence is delegated to the remote API.
package forms

import (
	"context"
	"strings"
	"time"

	"github.com/taskpanel/taskpanel/internal/apiclient"
	"github.com/taskpanel/taskpanel/internal/models"
)

// TaskSaver is the slice of the remote API the task form needs.
type TaskSaver interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, task models.Task) (*models.Task, error)
}

const genericSaveError = "Could not save the task"

// TaskForm drives creating or editing a single task.
type TaskForm struct {
	saver   TaskSaver
	editing *models.Task

	Draft   models.Task
	Loading bool
	Err     string

	// OnSaved and OnCanceled notify the parent; either may be nil.
	OnSaved    func()
	OnCanceled func()
}

// NewTaskForm builds a form. With editing non-nil the draft copies
// the task's fields; otherwise the draft defaults to today, medium
// priority and the personal category.
func NewTaskForm(saver TaskSaver, editing *models.Task, now func() time.Time) *TaskForm {
	form := &TaskForm{saver: saver, editing: editing}

	if editing != nil {
		form.Draft = *editing
	} else {
		form.Draft = models.Task{
			TaskDate: models.NewDate(now()),
			Priority: models.PriorityMedium,
			Category: models.CategoryPersonal,
		}
	}

	return form
}

// Editing reports whether the form updates an existing task.
func (f *TaskForm) Editing() bool {
	return f.editing != nil
}

// Valid reports whether the draft may be submitted: a non-empty
// trimmed title and a date.
func (f *TaskForm) Valid() bool {
	return strings.TrimSpace(f.Draft.Title) != "" && !f.Draft.TaskDate.IsZero()
}

// Submit persists the draft. It is a no-op while the draft is
// invalid. The server's error message is surfaced verbatim, with a
// generic fallback when it provides none; on success the saved signal
// fires.
func (f *TaskForm) Submit(ctx context.Context) {
	if !f.Valid() {
		return
	}

	f.Loading = true
	f.Err = ""

	var err error
	if f.editing != nil {
		_, err = f.saver.UpdateTask(ctx, f.editing.ID, f.Draft)
	} else {
		_, err = f.saver.CreateTask(ctx, f.Draft)
	}

	f.Loading = false
	if err != nil {
		f.Err = apiclient.ServerMessage(err, genericSaveError)
		return
	}

	if f.OnSaved != nil {
		f.OnSaved()
	}
}

// Cancel fires the canceled signal; the draft is left as is.
func (f *TaskForm) Cancel() {
	if f.OnCanceled != nil {
		f.OnCanceled()
	}
}
