package apiclient

import "github.com/taskpanel/taskpanel/internal/models"

// Static display tables for the enumerated task fields. They are
// total over the enum sets and have no remote dependency; callers
// must not feed them values outside the enums.

var priorityLabels = map[models.Priority]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
	models.PriorityUrgent: "Urgent",
}

var categoryLabels = map[models.Category]string{
	models.CategoryPersonal: "Personal",
	models.CategoryWork:     "Work",
	models.CategoryStudy:    "Study",
	models.CategoryHealth:   "Health",
	models.CategoryFinance:  "Finance",
	models.CategoryOther:    "Other",
}

var priorityColors = map[models.Priority]string{
	models.PriorityLow:    "#4CAF50",
	models.PriorityMedium: "#FF9800",
	models.PriorityHigh:   "#F44336",
	models.PriorityUrgent: "#9C27B0",
}

var categoryColors = map[models.Category]string{
	models.CategoryPersonal: "#2196F3",
	models.CategoryWork:     "#FF5722",
	models.CategoryStudy:    "#9C27B0",
	models.CategoryHealth:   "#4CAF50",
	models.CategoryFinance:  "#FF9800",
	models.CategoryOther:    "#607D8B",
}

// PriorityLabel returns the display name of a priority.
func PriorityLabel(p models.Priority) string {
	return priorityLabels[p]
}

// CategoryLabel returns the display name of a category.
func CategoryLabel(c models.Category) string {
	return categoryLabels[c]
}

// PriorityColor returns the hex color associated with a priority.
func PriorityColor(p models.Priority) string {
	return priorityColors[p]
}

// CategoryColor returns the hex color associated with a category.
func CategoryColor(c models.Category) string {
	return categoryColors[c]
}
