package postgresql

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
)

const (
	resourceLogs  = "daily_logs"
	resourceTasks = "tasks"
)

type dailyLogRepositoryImpl struct {
	db      *database.DB
	metrics *metrics.Metrics
}

func NewDailyLogRepository(db *database.DB, m *metrics.Metrics) dailylog.DailyLogRepository {
	return &dailyLogRepositoryImpl{db: db, metrics: m}
}

// List implements dailylog.DailyLogRepository. Rows are already unique per key.
func (r *dailyLogRepositoryImpl) List(ctx context.Context) (logs []dailylog.DailyLog, err error) {
	started := time.Now()
	defer func() { observe(r.metrics, resourceLogs, "select", started, err) }()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT log_date, employee_name, email, department, check_in, check_out, total_hours,
			   leave_applied, leave_dates, reason, leave_status, team_lead_approval, hr_approval, status
		FROM daily_logs
		ORDER BY first_seq
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, storeError(resourceLogs, "select", err)
	}
	defer rows.Close()

	logs = []dailylog.DailyLog{}
	for rows.Next() {
		var l dailylog.DailyLog
		var leaveStatus, tlApproval, hrApproval, status string
		if err := rows.Scan(
			&l.Date,
			&l.EmployeeName,
			&l.Email,
			&l.Department,
			&l.CheckIn,
			&l.CheckOut,
			&l.TotalHours,
			&l.LeaveApplied,
			&l.LeaveDates,
			&l.Reason,
			&leaveStatus,
			&tlApproval,
			&hrApproval,
			&status,
		); err != nil {
			return nil, storeError(resourceLogs, "select", err)
		}
		l.LeaveStatus = dailylog.LeaveStatus(leaveStatus)
		l.TeamLeadApproval = dailylog.Approval(tlApproval)
		l.HRApproval = dailylog.Approval(hrApproval)
		l.Status = dailylog.Status(status)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(resourceLogs, "select", err)
	}

	return logs, nil
}

// ListRaw implements dailylog.DailyLogRepository by replaying the revision journal.
func (r *dailyLogRepositoryImpl) ListRaw(ctx context.Context) (out []record.Row, err error) {
	started := time.Now()
	defer func() { observe(r.metrics, "daily_log_revisions", "select", started, err) }()

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT row_data FROM daily_log_revisions ORDER BY seq`)
	if err != nil {
		return nil, storeError(resourceLogs, "select", err)
	}
	defer rows.Close()

	out = []record.Row{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, storeError(resourceLogs, "select", err)
		}
		var row record.Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, storeError(resourceLogs, "select", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(resourceLogs, "select", err)
	}

	return out, nil
}

// Save implements dailylog.DailyLogRepository. The record is upserted by
// (employee_name, log_date) and journaled in one transaction.
func (r *dailyLogRepositoryImpl) Save(ctx context.Context, log dailylog.DailyLog) (err error) {
	started := time.Now()
	defer func() { observe(r.metrics, resourceLogs, "upsert", started, err) }()

	journal, err := json.Marshal(log.Row())
	if err != nil {
		return storeError(resourceLogs, "upsert", err)
	}

	err = WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		upsertQuery := `
			INSERT INTO daily_logs (
				employee_name, log_date, email, department, check_in, check_out, total_hours,
				leave_applied, leave_dates, reason, leave_status, team_lead_approval, hr_approval, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (employee_name, log_date) DO UPDATE SET
				email = EXCLUDED.email,
				department = EXCLUDED.department,
				check_in = EXCLUDED.check_in,
				check_out = EXCLUDED.check_out,
				total_hours = EXCLUDED.total_hours,
				leave_applied = EXCLUDED.leave_applied,
				leave_dates = EXCLUDED.leave_dates,
				reason = EXCLUDED.reason,
				leave_status = EXCLUDED.leave_status,
				team_lead_approval = EXCLUDED.team_lead_approval,
				hr_approval = EXCLUDED.hr_approval,
				status = EXCLUDED.status,
				updated_at = NOW()
		`
		if _, err := q.Exec(txCtx, upsertQuery,
			log.EmployeeName,
			log.Date,
			log.Email,
			log.Department,
			log.CheckIn,
			log.CheckOut,
			log.TotalHours,
			log.LeaveApplied,
			log.LeaveDates,
			log.Reason,
			string(log.LeaveStatus),
			string(log.TeamLeadApproval),
			string(log.HRApproval),
			string(log.Status),
		); err != nil {
			return err
		}

		_, err := q.Exec(txCtx, `INSERT INTO daily_log_revisions (row_data) VALUES ($1)`, journal)
		return err
	})
	if err != nil {
		return storeError(resourceLogs, "upsert", err)
	}
	return nil
}

func storeError(resource, op string, err error) error {
	return &record.StoreError{Resource: resource, Op: op, Err: err}
}

func observe(m *metrics.Metrics, resource, op string, started time.Time, err error) {
	m.ObserveStore(resource, op, started, err)
	if err != nil {
		slog.Error("record store call failed", "resource", resource, "op", op, "error", err)
	}
}
