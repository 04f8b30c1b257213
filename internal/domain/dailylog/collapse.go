package dailylog

import "github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"

// Collapse folds append-only rows into one log per (employee, date).
// Rows are applied in write order and each later row overrides the non-empty
// columns it carries, so the result is the latest value of every column.
// Output keeps the order in which keys first appeared.
func Collapse(rows []record.Row) []DailyLog {
	merged := make(map[Key]record.Row, len(rows))
	order := make([]Key, 0, len(rows))

	for _, row := range rows {
		key := Key{EmployeeName: row.Get(ColEmployeeName), Date: row.Get(ColDate)}
		current, ok := merged[key]
		if !ok {
			merged[key] = row.Clone()
			order = append(order, key)
			continue
		}
		current.Overlay(row)
	}

	logs := make([]DailyLog, 0, len(order))
	for _, key := range order {
		logs = append(logs, FromRow(merged[key]))
	}
	return logs
}
