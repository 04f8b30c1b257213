package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method        string
	Path          string
	RawPath       string
	Authorization string
	Body          map[string]interface{}
}

type fakeSheet struct {
	mu       sync.Mutex
	requests []capturedRequest
	logs     string
	tasks    string
	status   int
}

func (f *fakeSheet) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured := capturedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawPath:       r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
		}
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &captured.Body))
		}

		f.mu.Lock()
		f.requests = append(f.requests, captured)
		f.mu.Unlock()

		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/logs":
			_, _ = io.WriteString(w, f.logs)
		case r.Method == http.MethodGet && r.URL.Path == "/tasks":
			_, _ = io.WriteString(w, f.tasks)
		case r.Method == http.MethodPost:
			_, _ = io.WriteString(w, `{"created":1}`)
		default:
			_, _ = io.WriteString(w, `{"updated":1}`)
		}
	})
}

func newTestClient(t *testing.T, fake *fakeSheet, token string) *Client {
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	return NewClient(context.Background(), Config{
		LogsURL:  srv.URL + "/logs",
		TasksURL: srv.URL + "/tasks/",
		APIToken: token,
		Timeout:  5 * time.Second,
	}, metrics.New())
}

func TestDailyLogRepository_ListCollapsesRows(t *testing.T) {
	fake := &fakeSheet{logs: `[
		{"Date":"2024-01-20","Employee Name":"Harika","Department":"App Development","Leave Applied?":"Yes","Leave Status":"Pending","Team Lead Approval":"Pending","HR Approval":"Pending","Status":"Leave Request"},
		{"Date":"2024-01-20","Employee Name":"Harika","Team Lead Approval":"Approved","Leave Status":"Forwarded to HR","Status":"Pending HR Approval"},
		{"Date":"2024-01-19","Employee Name":"Ravi","Check-In":"09:00:00","Total Hours":9.5,"Status":"Checked Out"}
	]`}
	repo := NewDailyLogRepository(newTestClient(t, fake, ""))

	logs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, dailylog.LeaveStatusForwardedToHR, logs[0].LeaveStatus)
	assert.Equal(t, dailylog.ApprovalApproved, logs[0].TeamLeadApproval)
	assert.Equal(t, "App Development", logs[0].Department)
	assert.Equal(t, "9.5", logs[1].TotalHours)

	raw, err := repo.ListRaw(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, 3)
}

func TestDailyLogRepository_SavePostsDataEnvelope(t *testing.T) {
	fake := &fakeSheet{}
	repo := NewDailyLogRepository(newTestClient(t, fake, ""))

	err := repo.Save(context.Background(), dailylog.DailyLog{
		Date: "2024-01-20", EmployeeName: "Harika", CheckIn: "09:00:00", Status: dailylog.StatusCheckedIn,
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	got := fake.requests[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/logs", got.Path)

	data, ok := got.Body["data"].(map[string]interface{})
	require.True(t, ok, "body must be wrapped in data")
	assert.Equal(t, "Harika", data["Employee Name"])
	assert.Equal(t, "09:00:00", data["Check-In"])
	assert.Equal(t, "No", data["Leave Applied?"])
	assert.Equal(t, "Checked In", data["Status"])
}

func TestTaskRepository_ListParsesDefensively(t *testing.T) {
	fake := &fakeSheet{tasks: `[
		{"Task ID":"TSK-1","Task Title":"Mobile App Development","Assigned By":"HR","Progress (%)":"40"},
		{"Task ID":"TSK-2","Progress (%)":100},
		{"Task ID":"TSK-3","Progress (%)":"n/a"},
		{"Task ID":"","Task Title":"blank row"}
	]`}
	repo := NewTaskRepository(newTestClient(t, fake, ""))

	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, 40, tasks[0].Progress)
	assert.Equal(t, task.StatusInProgress, tasks[0].Status)
	assert.Equal(t, task.StatusCompleted, tasks[1].Status)
	assert.Equal(t, 0, tasks[2].Progress)
	assert.Equal(t, task.StatusAssigned, tasks[2].Status)
}

func TestTaskRepository_UpdateProgressPatchesByTaskID(t *testing.T) {
	fake := &fakeSheet{}
	repo := NewTaskRepository(newTestClient(t, fake, "secret-token"))

	err := repo.UpdateProgress(context.Background(), "TSK-42", task.NewProgressUpdate(100, "done"))
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	got := fake.requests[0]
	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "/tasks/Task ID/TSK-42", got.Path)
	assert.Equal(t, "/tasks/Task%20ID/TSK-42", got.RawPath)
	assert.Equal(t, "Bearer secret-token", got.Authorization)
	assert.Equal(t, map[string]interface{}{
		"Progress (%)": "100",
		"Status":       "Completed",
		"Comments":     "done",
	}, got.Body)
}

func TestTaskRepository_UpdateProgressOmitsEmptyComments(t *testing.T) {
	fake := &fakeSheet{}
	repo := NewTaskRepository(newTestClient(t, fake, ""))

	require.NoError(t, repo.UpdateProgress(context.Background(), "TSK-1", task.NewProgressUpdate(0, "")))
	assert.Equal(t, map[string]interface{}{
		"Progress (%)": "0",
		"Status":       "Assigned",
	}, fake.requests[0].Body)
	assert.Empty(t, fake.requests[0].Authorization)
}

func TestClient_NonSuccessIsStoreUnavailable(t *testing.T) {
	fake := &fakeSheet{status: http.StatusInternalServerError}
	client := newTestClient(t, fake, "")

	_, err := NewTaskRepository(client).List(context.Background())
	assert.ErrorIs(t, err, record.ErrStoreUnavailable)

	err = NewDailyLogRepository(client).Save(context.Background(), dailylog.DailyLog{EmployeeName: "x"})
	assert.ErrorIs(t, err, record.ErrStoreUnavailable)

	var storeErr *record.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusInternalServerError, storeErr.StatusCode)
	assert.Equal(t, ResourceLogs, storeErr.Resource)
}

func TestClient_UnreachableIsStoreUnavailable(t *testing.T) {
	client := NewClient(context.Background(), Config{
		LogsURL:  "http://127.0.0.1:1/logs",
		TasksURL: "http://127.0.0.1:1/tasks",
		Timeout:  time.Second,
	}, nil)

	_, err := NewDailyLogRepository(client).List(context.Background())
	assert.ErrorIs(t, err, record.ErrStoreUnavailable)
}

func TestClient_MalformedBodyIsStoreUnavailable(t *testing.T) {
	fake := &fakeSheet{logs: `{"not":"an array"}`}
	_, err := NewDailyLogRepository(newTestClient(t, fake, "")).List(context.Background())
	assert.ErrorIs(t, err, record.ErrStoreUnavailable)
}
