package store_test

import (
	"testing"
	"time"

	"donelist/models"
	"donelist/store"
)

func TestUpdateTaskParamsEmpty(t *testing.T) {
	title := "Renamed"
	description := "notes"
	completed := true
	priority := models.PriorityHigh
	due := time.Now()

	tests := []struct {
		name   string
		params store.UpdateTaskParams
		want   bool
	}{
		{
			name: "No fields is an empty patch",
			want: true,
		},
		{
			name:   "Title makes the patch non-empty",
			params: store.UpdateTaskParams{Title: &title},
		},
		{
			name:   "Description makes the patch non-empty",
			params: store.UpdateTaskParams{Description: &description},
		},
		{
			name:   "Completed makes the patch non-empty",
			params: store.UpdateTaskParams{Completed: &completed},
		},
		{
			name:   "Priority makes the patch non-empty",
			params: store.UpdateTaskParams{Priority: &priority},
		},
		{
			name:   "Due date makes the patch non-empty",
			params: store.UpdateTaskParams{DueDate: &due},
		},
		{
			name:   "Clearing the due date makes the patch non-empty",
			params: store.UpdateTaskParams{ClearDueDate: true},
		},
		{
			name:   "An explicit empty tag set makes the patch non-empty",
			params: store.UpdateTaskParams{TagIDs: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
