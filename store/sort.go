package store

// SortKey is the closed set of columns a task listing may be ordered by.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
	SortByTitle     SortKey = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Priority is stored as text but ordered by severity, not collation.
const prioritySortExpr = "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 WHEN 'urgent' THEN 3 END"

var sortColumns = map[SortKey]string{
	SortByCreatedAt: "created_at",
	SortByDueDate:   "due_date",
	SortByPriority:  prioritySortExpr,
	SortByTitle:     "title",
}

// ParseSortKey maps a wire value onto the enum. The empty string selects
// the default, createdAt.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return SortByCreatedAt, true
	}
	k := SortKey(s)
	_, ok := sortColumns[k]
	return k, ok
}

// ParseSortOrder maps a wire value onto the enum. The empty string selects
// the default, descending.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return SortDesc, s == ""
}

// OrderBy resolves the key and direction to an ORDER BY expression. Ties
// always break on id ascending so orderings are deterministic, and undated
// tasks sort after dated ones under the dueDate key.
func OrderBy(key SortKey, order SortOrder) (string, bool) {
	column, ok := sortColumns[key]
	if !ok {
		return "", false
	}
	if order != SortAsc && order != SortDesc {
		return "", false
	}

	direction := "ASC"
	if order == SortDesc {
		direction = "DESC"
	}

	clause := column + " " + direction
	if key == SortByDueDate {
		clause += " NULLS LAST"
	}
	return clause + ", id ASC", true
}
