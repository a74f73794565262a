package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"donelist/models"
)

const tagColumns = "id, user_id, name, color, created_at"

func scanTag(row pgx.Row) (models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt)
	return t, err
}

// ListTags returns the caller's tags ordered by name.
func (s *Store) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	stmt := "SELECT " + tagColumns + " FROM tags WHERE user_id = $1 ORDER BY name ASC, id ASC"
	rows, err := s.db.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	return tags, nil
}

// CreateTag inserts a tag owned by the caller. Duplicate names are
// permitted.
func (s *Store) CreateTag(ctx context.Context, userID, name, color string) (models.Tag, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if color == "" {
		color = models.DefaultTagColor
	}

	stmt := `INSERT INTO tags (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + tagColumns
	t, err := scanTag(s.db.QueryRow(ctx, stmt, uuid.NewString(), userID, name, color))
	if err != nil {
		return models.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return t, nil
}

// DeleteTag removes the tag and, via the cascade, every association that
// referenced it.
func (s *Store) DeleteTag(ctx context.Context, userID, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ct, err := s.db.Exec(ctx, "DELETE FROM tags WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}

// attachTags resolves the tag associations for a batch of tasks in one
// query, preserving the tasks' order. Every task ends up with a non-nil
// Tags slice.
func (s *Store) attachTags(ctx context.Context, tasks []models.Task) error {
	byID := make(map[string]int, len(tasks))
	ids := make([]string, len(tasks))
	for i := range tasks {
		tasks[i].Tags = []models.Tag{}
		byID[tasks[i].ID] = i
		ids[i] = tasks[i].ID
	}
	if len(tasks) == 0 {
		return nil
	}

	stmt := `SELECT tt.task_id, t.id, t.user_id, t.name, t.color, t.created_at
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.task_id = ANY($1)
		ORDER BY t.name ASC, t.id ASC`
	rows, err := s.db.Query(ctx, stmt, ids)
	if err != nil {
		return fmt.Errorf("query task tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var tag models.Tag
		if err := rows.Scan(&taskID, &tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return fmt.Errorf("scan task tag: %w", err)
		}
		if i, ok := byID[taskID]; ok {
			tasks[i].Tags = append(tasks[i].Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read task tags: %w", err)
	}
	return nil
}

// replaceTaskTags swaps the task's entire association set inside the
// caller's transaction. Each supplied tag id must resolve under the
// caller's ownership; a foreign or unknown id fails the whole mutation.
func replaceTaskTags(ctx context.Context, tx pgx.Tx, userID, taskID string, tagIDs []string) error {
	if _, err := tx.Exec(ctx, "DELETE FROM task_tags WHERE task_id = $1", taskID); err != nil {
		return fmt.Errorf("clear task tags: %w", err)
	}

	tagIDs = uniqueStrings(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	var owned int
	err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM tags WHERE id = ANY($1) AND user_id = $2", tagIDs, userID).Scan(&owned)
	if err != nil {
		return fmt.Errorf("check tag ownership: %w", err)
	}
	if owned != len(tagIDs) {
		return fmt.Errorf("tag: %w", ErrNotFound)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, "INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2)", taskID, tagID); err != nil {
			return fmt.Errorf("insert task tag: %w", err)
		}
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
