package storage

import (
	"strings"
)

const selectAlarms = "SELECT id, time, days, description, is_active FROM alarms"

// likeEscape is the escape character used in LIKE patterns.
const likeEscape = `\`

// AlarmQuery describes a listing: an optional substring predicate over time,
// days and description, and an optional is_active predicate. The zero value
// lists every alarm.
type AlarmQuery struct {
	Text   string
	Active *bool
}

// Build renders the query as SQL and its positional arguments.
// Rows come back in id order, which is insertion order.
func (q AlarmQuery) Build() (string, []any) {
	var (
		where []string
		args  []any
	)

	if q.Text != "" {
		pattern := "%" + escapeLike(q.Text) + "%"
		where = append(where,
			`(time LIKE ? ESCAPE '\' OR days LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if q.Active != nil {
		where = append(where, "is_active = ?")
		args = append(args, *q.Active)
	}

	var sb strings.Builder
	sb.WriteString(selectAlarms)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY id")

	return sb.String(), args
}

// escapeLike makes %, _ and the escape character match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}

// compact collapses whitespace so statements log on one line.
func compact(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}
