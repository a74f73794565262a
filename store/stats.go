package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"donelist/models"
)

// GetStats summarizes the owner's full task set. One query gives a
// consistent snapshot; the figures are then derived in ComputeStats.
func (s *Store) GetStats(ctx context.Context, userID string) (models.Stats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, "SELECT completed, priority, due_date FROM tasks WHERE user_id = $1", userID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.Completed, &t.Priority, &t.DueDate); err != nil {
			return models.Stats{}, fmt.Errorf("scan stats row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return models.Stats{}, fmt.Errorf("read stats rows: %w", err)
	}

	return ComputeStats(tasks, time.Now()), nil
}

// ComputeStats derives the aggregate figures from a task snapshot. Due
// "today" means the same calendar date as now in now's location; overdue
// and dueToday only count incomplete tasks. The completion rate is a
// rounded integer percentage, zero for an empty set.
func ComputeStats(tasks []models.Task, now time.Time) models.Stats {
	st := models.Stats{Total: len(tasks)}

	y0, m0, d0 := now.Date()
	for _, t := range tasks {
		switch t.Priority {
		case models.PriorityLow:
			st.ByPriority.Low++
		case models.PriorityMedium:
			st.ByPriority.Medium++
		case models.PriorityHigh:
			st.ByPriority.High++
		case models.PriorityUrgent:
			st.ByPriority.Urgent++
		}

		if t.Completed {
			st.Completed++
			continue
		}
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.In(now.Location())
		if due.Before(now) {
			st.Overdue++
		}
		y, m, d := due.Date()
		if y == y0 && m == m0 && d == d0 {
			st.DueToday++
		}
	}

	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
