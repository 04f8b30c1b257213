package record

import (
	"context"
	"io"
)

// RecordService exposes the stored tables as rows keyed by wire column names.
type RecordService interface {
	// DailyLogs returns one row per (employee, date), or every stored row when raw is set.
	DailyLogs(ctx context.Context, raw bool) ([]Row, error)
	Tasks(ctx context.Context) ([]Row, error)
	// Export writes both tables as an xlsx workbook.
	Export(ctx context.Context, w io.Writer) error
}
