package models

// Task categories. Work and social tasks are the shareable subset visible in
// team schedule views.
type TaskCategory string

const (
	CategoryWork     TaskCategory = "work"
	CategorySocial   TaskCategory = "social"
	CategoryFamily   TaskCategory = "family"
	CategoryLearning TaskCategory = "learning"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c TaskCategory) bool {
	switch c {
	case CategoryWork, CategorySocial, CategoryFamily, CategoryLearning:
		return true
	}
	return false
}

// Shareable reports whether tasks of this category appear in team views.
func (c TaskCategory) Shareable() bool {
	return c == CategoryWork || c == CategorySocial
}

type TaskPriority string

const (
	PriorityHighest TaskPriority = "highest"
	PriorityHigh    TaskPriority = "high"
	PriorityMedium  TaskPriority = "medium"
	PriorityLow     TaskPriority = "low"
	PriorityLowest  TaskPriority = "lowest"
)

var priorityRanks = map[TaskPriority]int{
	PriorityHighest: 0,
	PriorityHigh:    1,
	PriorityMedium:  2,
	PriorityLow:     3,
	PriorityLowest:  4,
}

// Rank returns the sort rank of the priority, highest first. Unknown
// priorities rank after all known ones.
func (p TaskPriority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TaskPriority) bool {
	_, ok := priorityRanks[p]
	return ok
}

// Task is a user-owned, dated item of work.
//
// JSON tags match the legacy collection layout (camelCase, owner under
// "userEmail") so existing stored data keeps loading. Date is a plain
// "YYYY-MM-DD" calendar day with no time zone; Time is an optional "HH:MM".
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Category      TaskCategory `json:"category"`
	Priority      TaskPriority `json:"priority"`
	Date          string       `json:"date"`
	Time          string       `json:"time,omitempty"`
	Completed     bool         `json:"completed"`
	ReminderShown bool         `json:"reminderShown"`
	OwnerEmail    string       `json:"userEmail,omitempty"`
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
}

// TodaySummary is the "today's tasks" widget payload: the day's tasks plus a
// completed/total pair.
type TodaySummary struct {
	Tasks     []Task `json:"tasks"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}
