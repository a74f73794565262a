package models

// Stats summarizes a user's full task set at a single point in time.
type Stats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	Overdue        int            `json:"overdue"`
	DueToday       int            `json:"dueToday"`
	CompletionRate int            `json:"completionRate"`
	ByPriority     PriorityCounts `json:"byPriority"`
}

type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Urgent int `json:"urgent"`
}
