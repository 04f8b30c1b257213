package record

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
)

const (
	SheetDailyLogs = "Daily Logs"
	SheetTasks     = "Tasks"
)

type RecordServiceImpl struct {
	logs   dailylog.DailyLogRepository
	loader *view.Loader
}

func NewRecordService(logs dailylog.DailyLogRepository, loader *view.Loader) record.RecordService {
	return &RecordServiceImpl{logs: logs, loader: loader}
}

// DailyLogs implements record.RecordService.
func (s *RecordServiceImpl) DailyLogs(ctx context.Context, raw bool) ([]record.Row, error) {
	if raw {
		rows, err := s.logs.ListRaw(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list raw daily logs: %w", err)
		}
		return rows, nil
	}

	logs, err := s.loader.Logs(ctx)
	if err != nil {
		return nil, err
	}
	return logRows(logs), nil
}

// Tasks implements record.RecordService.
func (s *RecordServiceImpl) Tasks(ctx context.Context) ([]record.Row, error) {
	tasks, err := s.loader.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return taskRows(tasks), nil
}

// Export implements record.RecordService.
func (s *RecordServiceImpl) Export(ctx context.Context, w io.Writer) error {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	return export.WriteWorkbook(w,
		export.Sheet{Name: SheetDailyLogs, Columns: dailylog.Columns, Rows: logRows(snap.Logs)},
		export.Sheet{Name: SheetTasks, Columns: task.Columns, Rows: taskRows(snap.Tasks)},
	)
}

func logRows(logs []dailylog.DailyLog) []record.Row {
	rows := make([]record.Row, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, l.Row())
	}
	return rows
}

func taskRows(tasks []task.Task) []record.Row {
	rows := make([]record.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, t.Row())
	}
	return rows
}
