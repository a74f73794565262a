package store

import (
	"fmt"
	"strings"

	"donelist/models"
)

// TaskFilter describes which of a user's tasks a query should return. The
// zero value of each optional field means the filter is not applied;
// OwnerID is always required and always enforced.
type TaskFilter struct {
	OwnerID   string
	Completed *bool
	Priority  *models.Priority
	Search    string
	TagID     string
}

// whereBuilder accumulates conjuncts with positional placeholders. Each
// %s in an expression is replaced with the next $n argument slot.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(expr string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		b.args = append(b.args, a)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(expr, placeholders...))
}

// Where compiles the filter into a conjunctive WHERE clause (without the
// leading keyword) and its positional arguments, numbered from $1.
func (f TaskFilter) Where() (string, []any) {
	b := &whereBuilder{}

	b.add("user_id = %s", f.OwnerID)
	if f.Completed != nil {
		b.add("completed = %s", *f.Completed)
	}
	if f.Priority != nil {
		b.add("priority = %s", string(*f.Priority))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		b.add("(title ILIKE %s OR description ILIKE %s)", pattern, pattern)
	}
	if f.TagID != "" {
		b.add("id IN (SELECT task_id FROM task_tags WHERE tag_id = %s)", f.TagID)
	}

	return strings.Join(b.conds, " AND "), b.args
}

// escapeLike neutralizes LIKE metacharacters so user input matches
// literally inside the %...% pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
