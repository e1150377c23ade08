// Package tasklist holds the pure display logic applied to a fetched
// task collection. Nothing here performs I/O.
package tasklist

import (
	"sort"
	"time"

	"github.com/taskpanel/taskpanel/internal/models"
)

// priorityRank orders priorities most-urgent-first for display.
var priorityRank = map[models.Priority]int{
	models.PriorityUrgent: 0,
	models.PriorityHigh:   1,
	models.PriorityMedium: 2,
	models.PriorityLow:    3,
}

// Sorted returns a new slice ordered for display: incomplete tasks
// before complete ones, then ascending by date, then by descending
// urgency. The sort is stable, so equal tasks keep their fetched
// order.
func Sorted(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.TaskDate != b.TaskDate {
			return a.TaskDate.Before(b.TaskDate)
		}
		return priorityRank[a.Priority] < priorityRank[b.Priority]
	})

	return sorted
}

// IsOverdue reports whether the task's date lies strictly before
// now's calendar day. Completed tasks are never overdue.
func IsOverdue(task models.Task, now time.Time) bool {
	if task.Completed {
		return false
	}
	return task.TaskDate.Before(models.NewDate(now))
}

// IsToday reports whether the task falls on now's calendar day.
func IsToday(task models.Task, now time.Time) bool {
	return task.TaskDate == models.NewDate(now)
}
