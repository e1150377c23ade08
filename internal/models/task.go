package models

// Priority levels, ordered by urgency on the wire.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Task categories.
type Category string

const (
	CategoryPersonal Category = "PERSONAL"
	CategoryWork     Category = "WORK"
	CategoryStudy    Category = "STUDY"
	CategoryHealth   Category = "HEALTH"
	CategoryFinance  Category = "FINANCE"
	CategoryOther    Category = "OTHER"
)

// Priorities lists all priority values in ascending urgency.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Categories lists all category values.
var Categories = []Category{
	CategoryPersonal, CategoryWork, CategoryStudy,
	CategoryHealth, CategoryFinance, CategoryOther,
}

// Task mirrors the remote task resource. A zero ID marks a draft that
// has not been persisted yet; the server assigns the ID on create.
// Timestamp fields are kept as the server's strings and never parsed
// on this side.
type Task struct {
	ID          int64    `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TaskDate    Date     `json:"taskDate"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	CompletedAt string   `json:"completedAt,omitempty"`
	UserID      int64    `json:"userId,omitempty"`
	UserName    string   `json:"userName,omitempty"`
}

// IsDraft reports whether the task has not been persisted yet.
func (t Task) IsDraft() bool {
	return t.ID == 0
}

// TaskStats is the aggregate the server computes over all of the
// user's tasks. It is fetched, never derived from a loaded list: the
// list may reflect a narrower filter than the stats do.
type TaskStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
}
