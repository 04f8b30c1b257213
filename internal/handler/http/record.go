package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/export"
)

// RecordHandler exposes the raw stored tables to HR.
type RecordHandler interface {
	DailyLogs(w http.ResponseWriter, r *http.Request)
	Tasks(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type recordHandlerImpl struct {
	recordService record.RecordService
}

func NewRecordHandler(recordService record.RecordService) RecordHandler {
	return &recordHandlerImpl{recordService: recordService}
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// DailyLogs handles GET /records/daily-logs?raw=
func (h *recordHandlerImpl) DailyLogs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.recordService.DailyLogs(r.Context(), getBoolQueryParam(r, "raw", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Tasks handles GET /records/tasks
func (h *recordHandlerImpl) Tasks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.recordService.Tasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Export handles GET /records/export. The workbook is buffered so a store
// failure still produces a JSON error instead of a truncated download.
func (h *recordHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.recordService.Export(r.Context(), &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("teamdesk-records-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Export write error", "error", err)
	}
}
