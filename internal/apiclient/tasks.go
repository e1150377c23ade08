package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taskpanel/taskpanel/internal/models"
)

// GetAllTasks returns the user's full task collection.
func (c *Client) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by its id.
func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask persists a draft and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces the task with id wholesale.
func (c *Client) UpdateTask(ctx context.Context, id int64, task models.Task) (*models.Task, error) {
	var updated models.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), nil, task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes the task with id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

// ToggleCompletion patches only the completed flag of the task.
func (c *Client) ToggleCompletion(ctx context.Context, id int64, completed bool) (*models.Task, error) {
	payload := map[string]bool{"completed": completed}
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id)+"/toggle", nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TasksByDate returns the tasks scheduled for exactly date.
func (c *Client) TasksByDate(ctx context.Context, date models.Date) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/date/"+date.String(), nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByPeriod returns the tasks within the inclusive date range.
func (c *Client) TasksByPeriod(ctx context.Context, start, end models.Date) ([]models.Task, error) {
	query := url.Values{
		"startDate": {start.String()},
		"endDate":   {end.String()},
	}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/period", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksForCurrentWeek returns the current calendar week, as the
// server defines it.
func (c *Client) TasksForCurrentWeek(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/week", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksForCurrentMonth returns the current calendar month.
func (c *Client) TasksForCurrentMonth(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/month", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByStatus filters on the completed flag.
func (c *Client) TasksByStatus(ctx context.Context, completed bool) ([]models.Task, error) {
	var tasks []models.Task
	path := "/tasks/status/" + strconv.FormatBool(completed)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByPriority filters on priority.
func (c *Client) TasksByPriority(ctx context.Context, priority models.Priority) ([]models.Task, error) {
	var tasks []models.Task
	path := "/tasks/priority/" + string(priority)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByCategory filters on category.
func (c *Client) TasksByCategory(ctx context.Context, category models.Category) ([]models.Task, error) {
	var tasks []models.Task
	path := "/tasks/category/" + string(category)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SearchByTitle returns the tasks whose title contains the given
// substring.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]models.Task, error) {
	query := url.Values{"title": {title}}
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/search", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetStats fetches the server-side aggregate over all of the user's
// tasks.
func (c *Client) GetStats(ctx context.Context) (models.TaskStats, error) {
	var stats models.TaskStats
	if err := c.do(ctx, http.MethodGet, "/tasks/stats", nil, nil, &stats); err != nil {
		return models.TaskStats{}, err
	}
	return stats, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}
