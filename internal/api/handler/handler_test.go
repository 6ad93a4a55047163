package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ferhat00/PillPal/internal/dto"
	"github.com/ferhat00/PillPal/internal/service"
	"github.com/ferhat00/PillPal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errTest = errors.New("内部错误")

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ScheduleService ──

type mockScheduleService struct {
	getResult    *dto.ScheduleResponse
	getErr       error
	updateResult *dto.ScheduleResponse
	updateErr    error
}

func (m *mockScheduleService) Get(_ context.Context) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) Update(_ context.Context, _ string, _ *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) EnsureDefault(_ context.Context) error {
	return nil
}

// ── Mock LogService ──

type mockLogService struct {
	listResult []dto.LogResponse
	listErr    error
	markResult *dto.LogResponse
	markErr    error
}

func (m *mockLogService) ListByDate(_ context.Context, _ string) ([]dto.LogResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockLogService) MarkTaken(_ context.Context, _ *dto.CreateLogRequest) (*dto.LogResponse, error) {
	return m.markResult, m.markErr
}

// ── Mock ReminderService ──

type mockReminderService struct {
	statusResult *dto.ReminderStatusResponse
	statusErr    error
}

func (m *mockReminderService) CurrentStatus(_ context.Context) (*dto.ReminderStatusResponse, error) {
	return m.statusResult, m.statusErr
}

// ── Mock ExportService ──

type mockExportService struct {
	logsBuf      *bytes.Buffer
	logsFilename string
	logsErr      error
	calBuf       *bytes.Buffer
	calFilename  string
	calErr       error
}

func (m *mockExportService) ExportMonthlyLogs(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.logsBuf, m.logsFilename, m.logsErr
}
func (m *mockExportService) ExportCalendar(_ context.Context) (*bytes.Buffer, string, error) {
	return m.calBuf, m.calFilename, m.calErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, path string, body io.Reader, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r := gin.New()
	register(r)
	r.ServeHTTP(w, req)
	return w
}

func sampleSchedule() *dto.ScheduleResponse {
	morning := "08:00"
	return &dto.ScheduleResponse{
		ID:             "sched-001",
		Name:           "每日用药",
		MorningTime:    &morning,
		MorningEnabled: true,
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_GetSchedule_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{getResult: sampleSchedule()})

	w := serve("GET", "/schedule", nil, func(r *gin.Engine) {
		r.GET("/schedule", h.GetSchedule)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestScheduleHandler_GetSchedule_NotFound(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{getErr: service.ErrScheduleNotFound})

	w := serve("GET", "/schedule", nil, func(r *gin.Engine) {
		r.GET("/schedule", h.GetSchedule)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12101 {
		t.Errorf("expected error code 12101, got %d", resp.Code)
	}
}

func TestScheduleHandler_UpdateSchedule_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{updateResult: sampleSchedule()})

	name := "调整后的计划"
	w := serve("PATCH", "/schedule/sched-001", jsonBody(dto.UpdateScheduleRequest{Name: &name}), func(r *gin.Engine) {
		r.PATCH("/schedule/:id", h.UpdateSchedule)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_UpdateSchedule_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := serve("PATCH", "/schedule/sched-001", bytes.NewReader([]byte("invalid json")), func(r *gin.Engine) {
		r.PATCH("/schedule/:id", h.UpdateSchedule)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestScheduleHandler_UpdateSchedule_InvalidTime(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{updateErr: service.ErrInvalidTimeFormat})

	bad := "25:00"
	w := serve("PATCH", "/schedule/sched-001", jsonBody(dto.UpdateScheduleRequest{MorningTime: &bad}), func(r *gin.Engine) {
		r.PATCH("/schedule/:id", h.UpdateSchedule)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12102 {
		t.Errorf("expected error code 12102, got %d", resp.Code)
	}
}

func TestScheduleHandler_UpdateSchedule_NotFound(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{updateErr: service.ErrScheduleNotFound})

	name := "x"
	w := serve("PATCH", "/schedule/no-such-id", jsonBody(dto.UpdateScheduleRequest{Name: &name}), func(r *gin.Engine) {
		r.PATCH("/schedule/:id", h.UpdateSchedule)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LogHandler Tests
// ═══════════════════════════════════════════════════════════

func validLogRequest() dto.CreateLogRequest {
	return dto.CreateLogRequest{
		ScheduleID:  "d3b07384-d9a0-4c2a-9c58-7a1e1f2a3b4c",
		Compartment: "morning",
		Date:        "2026-08-15",
		TakenAt:     time.Date(2026, 8, 15, 8, 5, 0, 0, time.UTC),
	}
}

func TestLogHandler_ListLogs_Success(t *testing.T) {
	h := NewLogHandler(&mockLogService{listResult: []dto.LogResponse{
		{ID: "log-001", Compartment: "morning", Date: "2026-08-15"},
	}})

	w := serve("GET", "/logs/2026-08-15", nil, func(r *gin.Engine) {
		r.GET("/logs/:date", h.ListLogs)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLogHandler_ListLogs_InvalidDate(t *testing.T) {
	h := NewLogHandler(&mockLogService{listErr: service.ErrInvalidDate})

	w := serve("GET", "/logs/not-a-date", nil, func(r *gin.Engine) {
		r.GET("/logs/:date", h.ListLogs)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13103 {
		t.Errorf("expected error code 13103, got %d", resp.Code)
	}
}

func TestLogHandler_MarkTaken_Created(t *testing.T) {
	h := NewLogHandler(&mockLogService{markResult: &dto.LogResponse{
		ID:          "log-001",
		Compartment: "morning",
		Date:        "2026-08-15",
	}})

	w := serve("POST", "/logs", jsonBody(validLogRequest()), func(r *gin.Engine) {
		r.POST("/logs", h.MarkTaken)
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestLogHandler_MarkTaken_Duplicate(t *testing.T) {
	h := NewLogHandler(&mockLogService{markErr: service.ErrLogAlreadyTaken})

	w := serve("POST", "/logs", jsonBody(validLogRequest()), func(r *gin.Engine) {
		r.POST("/logs", h.MarkTaken)
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13101 {
		t.Errorf("expected error code 13101, got %d", resp.Code)
	}
}

func TestLogHandler_MarkTaken_InvalidCompartment(t *testing.T) {
	h := NewLogHandler(&mockLogService{markErr: service.ErrInvalidCompartment})

	req := validLogRequest()
	req.Compartment = "midnight"
	w := serve("POST", "/logs", jsonBody(req), func(r *gin.Engine) {
		r.POST("/logs", h.MarkTaken)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13102 {
		t.Errorf("expected error code 13102, got %d", resp.Code)
	}
}

func TestLogHandler_MarkTaken_MissingFields(t *testing.T) {
	h := NewLogHandler(&mockLogService{})

	w := serve("POST", "/logs", jsonBody(map[string]string{}), func(r *gin.Engine) {
		r.POST("/logs", h.MarkTaken)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReminderHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReminderHandler_Current_Success(t *testing.T) {
	active := "morning"
	next := "Afternoon at 2:00 PM"
	h := NewReminderHandler(&mockReminderService{statusResult: &dto.ReminderStatusResponse{
		Date:               "2026-08-15",
		ActiveCompartment:  &active,
		NextMedicationTime: &next,
		Progress:           dto.ProgressResponse{Completed: 1, EnabledTotal: 4},
	}})

	w := serve("GET", "/reminders/current", nil, func(r *gin.Engine) {
		r.GET("/reminders/current", h.Current)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"active_compartment":"morning"`) {
		t.Error("响应应包含 active_compartment=morning")
	}
}

func TestReminderHandler_Current_ServiceError(t *testing.T) {
	h := NewReminderHandler(&mockReminderService{statusErr: errTest})

	w := serve("GET", "/reminders/current", nil, func(r *gin.Engine) {
		r.GET("/reminders/current", h.Current)
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 50000 {
		t.Errorf("expected error code 50000, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportLogs_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		logsBuf:      bytes.NewBufferString("PK-fake-xlsx"),
		logsFilename: "服药记录_2026-08.xlsx",
	})

	w := serve("GET", "/export/logs?month=2026-08", nil, func(r *gin.Engine) {
		r.GET("/export/logs", h.ExportLogs)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("expected xlsx content type, got %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") {
		t.Errorf("expected attachment disposition, got %s", cd)
	}
}

func TestExportHandler_ExportLogs_MissingMonth(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := serve("GET", "/export/logs", nil, func(r *gin.Engine) {
		r.GET("/export/logs", h.ExportLogs)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestExportHandler_ExportLogs_InvalidMonth(t *testing.T) {
	h := NewExportHandler(&mockExportService{logsErr: service.ErrInvalidMonth})

	w := serve("GET", "/export/logs?month=bad", nil, func(r *gin.Engine) {
		r.GET("/export/logs", h.ExportLogs)
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16103 {
		t.Errorf("expected error code 16103, got %d", resp.Code)
	}
}

func TestExportHandler_ExportLogs_NoLogs(t *testing.T) {
	h := NewExportHandler(&mockExportService{logsErr: service.ErrExportNoLogs})

	w := serve("GET", "/export/logs?month=2026-07", nil, func(r *gin.Engine) {
		r.GET("/export/logs", h.ExportLogs)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16101 {
		t.Errorf("expected error code 16101, got %d", resp.Code)
	}
}

func TestExportHandler_ExportCalendar_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		calBuf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		calFilename: "用药提醒.ics",
	})

	w := serve("GET", "/export/calendar", nil, func(r *gin.Engine) {
		r.GET("/export/calendar", h.ExportCalendar)
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/calendar") {
		t.Errorf("expected text/calendar content type, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("响应体应包含 BEGIN:VCALENDAR")
	}
}

func TestExportHandler_ExportCalendar_NoSlots(t *testing.T) {
	h := NewExportHandler(&mockExportService{calErr: service.ErrCalendarNoSlots})

	w := serve("GET", "/export/calendar", nil, func(r *gin.Engine) {
		r.GET("/export/calendar", h.ExportCalendar)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16102 {
		t.Errorf("expected error code 16102, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
