package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"donelist/models"
)

const taskColumns = "id, user_id, title, description, completed, priority, due_date, created_at, updated_at"

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTasks returns the caller's tasks matching the filter in the resolved
// order, each enriched with its tags.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter, key SortKey, order SortOrder) ([]models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where, args := f.Where()
	orderBy, ok := OrderBy(key, order)
	if !ok {
		return nil, fmt.Errorf("unknown sort %q %q", key, order)
	}

	stmt := "SELECT " + taskColumns + " FROM tasks WHERE " + where + " ORDER BY " + orderBy
	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	if err := s.attachTags(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one enriched task owned by userID.
func (s *Store) GetTask(ctx context.Context, userID, id string) (models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	stmt := "SELECT " + taskColumns + " FROM tasks WHERE id = $1 AND user_id = $2"
	t, err := scanTask(s.db.QueryRow(ctx, stmt, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}

	tasks := []models.Task{t}
	if err := s.attachTags(ctx, tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

// CreateTaskParams carries the validated input for a new task. A zero
// Priority falls back to medium.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	TagIDs      []string
}

// CreateTask inserts the task and its initial tag associations in one
// transaction. The returned task is not enriched.
func (s *Store) CreateTask(ctx context.Context, userID string, p CreateTaskParams) (models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	priority := p.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := `INSERT INTO tasks (id, user_id, title, description, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	t, err := scanTask(tx.QueryRow(ctx, stmt, uuid.NewString(), userID, p.Title, p.Description, string(priority), p.DueDate))
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}

	if len(p.TagIDs) > 0 {
		if err := replaceTaskTags(ctx, tx, userID, t.ID, p.TagIDs); err != nil {
			return models.Task{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}

	t.Tags = []models.Tag{}
	return t, nil
}

// UpdateTaskParams is a patch: nil fields are left untouched. ClearDueDate
// nulls the due date; TagIDs replaces the whole association set when
// non-nil, including the empty slice which clears it.
type UpdateTaskParams struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
	TagIDs       []string
}

// Empty reports whether the patch touches nothing: no fields, no due-date
// clear, no tag-set replacement.
func (p UpdateTaskParams) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate && p.TagIDs == nil
}

// UpdateTask applies the patch and the optional tag-set replacement
// atomically, refreshing updated_at. The returned task is enriched. An
// empty patch writes nothing — updated_at only moves on a mutation — and
// degenerates to a read.
func (s *Store) UpdateTask(ctx context.Context, userID, id string, p UpdateTaskParams) (models.Task, error) {
	if p.Empty() {
		return s.GetTask(ctx, userID, id)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sets := []string{"updated_at = now()"}
	args := []any{}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Completed != nil {
		set("completed", *p.Completed)
	}
	if p.Priority != nil {
		set("priority", string(*p.Priority))
	}
	if p.DueDate != nil {
		set("due_date", *p.DueDate)
	} else if p.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	}

	args = append(args, id, userID)
	stmt := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), taskColumns)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	t, err := scanTask(tx.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	if p.TagIDs != nil {
		if err := replaceTaskTags(ctx, tx, userID, t.ID, p.TagIDs); err != nil {
			return models.Task{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}

	tasks := []models.Task{t}
	if err := s.attachTags(ctx, tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

// ToggleTask flips the completed flag in a single conditional statement so
// ownership, existence and the write are checked atomically. The returned
// task is enriched.
func (s *Store) ToggleTask(ctx context.Context, userID, id string) (models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	stmt := `UPDATE tasks SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	t, err := scanTask(s.db.QueryRow(ctx, stmt, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, fmt.Errorf("toggle task: %w", err)
	}

	tasks := []models.Task{t}
	if err := s.attachTags(ctx, tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

// DeleteTask removes the task; task_tags rows go with it via the cascade.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ct, err := s.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}
