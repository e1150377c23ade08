package tasklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpanel/taskpanel/internal/models"
)

func date(y int, m time.Month, d int) models.Date {
	return models.Date{Year: y, Month: m, Day: d}
}

func TestSortedOrdering(t *testing.T) {
	june1 := date(2024, time.June, 1)
	june2 := date(2024, time.June, 2)

	tasks := []models.Task{
		{ID: 1, Title: "done early", Completed: true, TaskDate: june1, Priority: models.PriorityUrgent},
		{ID: 2, Title: "later low", TaskDate: june2, Priority: models.PriorityLow},
		{ID: 3, Title: "early medium", TaskDate: june1, Priority: models.PriorityMedium},
		{ID: 4, Title: "early urgent", TaskDate: june1, Priority: models.PriorityUrgent},
		{ID: 5, Title: "done late", Completed: true, TaskDate: june2, Priority: models.PriorityLow},
	}

	sorted := Sorted(tasks)

	var ids []int64
	for _, task := range sorted {
		ids = append(ids, task.ID)
	}

	// Incomplete first; within each group date ascending; within a
	// date most urgent first.
	assert.Equal(t, []int64{4, 3, 2, 1, 5}, ids)
}

func TestSortedIsStable(t *testing.T) {
	june1 := date(2024, time.June, 1)

	tasks := []models.Task{
		{ID: 1, TaskDate: june1, Priority: models.PriorityMedium},
		{ID: 2, TaskDate: june1, Priority: models.PriorityMedium},
		{ID: 3, TaskDate: june1, Priority: models.PriorityMedium},
	}

	sorted := Sorted(tasks)

	require.Len(t, sorted, 3)
	assert.Equal(t, int64(1), sorted[0].ID)
	assert.Equal(t, int64(2), sorted[1].ID)
	assert.Equal(t, int64(3), sorted[2].ID)
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Completed: true},
		{ID: 2},
	}

	Sorted(tasks)

	assert.Equal(t, int64(1), tasks[0].ID)
}

func TestSortedEmpty(t *testing.T) {
	assert.Empty(t, Sorted(nil))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 2, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "yesterday incomplete",
			task: models.Task{TaskDate: date(2024, time.June, 1)},
			want: true,
		},
		{
			name: "yesterday but completed",
			task: models.Task{TaskDate: date(2024, time.June, 1), Completed: true},
			want: false,
		},
		{
			name: "same day is not overdue",
			task: models.Task{TaskDate: date(2024, time.June, 2)},
			want: false,
		},
		{
			name: "tomorrow",
			task: models.Task{TaskDate: date(2024, time.June, 3)},
			want: false,
		},
		{
			name: "long past but completed",
			task: models.Task{TaskDate: date(2020, time.January, 1), Completed: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, now))
		})
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2024, time.June, 2, 23, 59, 0, 0, time.Local)

	assert.True(t, IsToday(models.Task{TaskDate: date(2024, time.June, 2)}, now))
	assert.False(t, IsToday(models.Task{TaskDate: date(2024, time.June, 1)}, now))
	assert.False(t, IsToday(models.Task{TaskDate: date(2024, time.June, 3)}, now))
}
