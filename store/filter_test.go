package store_test

import (
	"reflect"
	"testing"

	"donelist/models"
	"donelist/store"
)

func TestTaskFilterWhere(t *testing.T) {
	completed := true
	notCompleted := false
	high := models.PriorityHigh

	tests := []struct {
		name     string
		filter   store.TaskFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Owner scoping is always present",
			filter:   store.TaskFilter{OwnerID: "u1"},
			wantSQL:  "user_id = $1",
			wantArgs: []any{"u1"},
		},
		{
			name:     "Completed filter",
			filter:   store.TaskFilter{OwnerID: "u1", Completed: &completed},
			wantSQL:  "user_id = $1 AND completed = $2",
			wantArgs: []any{"u1", true},
		},
		{
			name:     "Pending filter",
			filter:   store.TaskFilter{OwnerID: "u1", Completed: &notCompleted},
			wantSQL:  "user_id = $1 AND completed = $2",
			wantArgs: []any{"u1", false},
		},
		{
			name:     "Priority filter",
			filter:   store.TaskFilter{OwnerID: "u1", Priority: &high},
			wantSQL:  "user_id = $1 AND priority = $2",
			wantArgs: []any{"u1", "high"},
		},
		{
			name:     "Search matches title or description",
			filter:   store.TaskFilter{OwnerID: "u1", Search: "proj"},
			wantSQL:  "user_id = $1 AND (title ILIKE $2 OR description ILIKE $3)",
			wantArgs: []any{"u1", "%proj%", "%proj%"},
		},
		{
			name:     "Search escapes LIKE metacharacters",
			filter:   store.TaskFilter{OwnerID: "u1", Search: `50%_a\b`},
			wantSQL:  "user_id = $1 AND (title ILIKE $2 OR description ILIKE $3)",
			wantArgs: []any{"u1", `%50\%\_a\\b%`, `%50\%\_a\\b%`},
		},
		{
			name:     "Tag membership filter",
			filter:   store.TaskFilter{OwnerID: "u1", TagID: "tag-1"},
			wantSQL:  "user_id = $1 AND id IN (SELECT task_id FROM task_tags WHERE tag_id = $2)",
			wantArgs: []any{"u1", "tag-1"},
		},
		{
			name: "All filters compose conjunctively",
			filter: store.TaskFilter{
				OwnerID:   "u1",
				Completed: &notCompleted,
				Priority:  &high,
				Search:    "milk",
				TagID:     "tag-1",
			},
			wantSQL: "user_id = $1 AND completed = $2 AND priority = $3" +
				" AND (title ILIKE $4 OR description ILIKE $5)" +
				" AND id IN (SELECT task_id FROM task_tags WHERE tag_id = $6)",
			wantArgs: []any{"u1", false, "high", "%milk%", "%milk%", "tag-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := tt.filter.Where()
			if gotSQL != tt.wantSQL {
				t.Errorf("Where() sql = %q, want %q", gotSQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("Where() args = %#v, want %#v", gotArgs, tt.wantArgs)
			}
		})
	}
}
