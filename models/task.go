package models

import "time"

// Priority levels in ascending severity. Sorting by priority follows this
// declaration order, not the alphabetical one.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the severity position of p, or -1 for an unknown value.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	}
	return -1
}

func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// ParsePriority maps a wire value onto the enum.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, p.Valid()
}

type Task struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	Priority    Priority   `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	// Tags is filled in by the read paths; an empty slice means the task
	// has no associations, never a missing field.
	Tags []Tag `json:"tags"`
}
