package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
	"github.com/techcorp/payroll-engine/internal/storage"
	"github.com/techcorp/payroll-engine/internal/worker"
)

type stubPipeline struct{}

func (p *stubPipeline) Process(_ context.Context, path string) *models.PipelineState {
	state := models.NewPipelineState(path)
	state.ExtractionStatus = models.StageSuccess
	state.Timesheet = &models.TimesheetData{
		Employee: models.EmployeeIdentity{EmployeeID: "EMP001", Name: "John Smith"},
	}
	state.Hours = &models.HoursSummary{}
	state.CalculationStatus = models.StageSuccess
	state.Calculation = &models.PayrollResult{EmployeeID: "EMP001", NetSalary: 5951.81}
	state.GenerationStatus = models.StageSuccess
	state.PayslipPath = "slip.pdf"
	state.WorkflowStatus = models.WorkflowCompleted
	return state
}

func newTestServer(t *testing.T) (*Server, string, string) {
	t.Helper()
	logger := zap.NewNop()
	timesheetDir := t.TempDir()
	payslipDir := t.TempDir()

	timesheets := storage.NewTimesheetStore(timesheetDir, logger)
	payslips := storage.NewPayslipLibrary(payslipDir, logger)
	batch := worker.NewBatchProcessor(&stubPipeline{}, 2, logger)

	server := NewServer(DefaultServerConfig(), timesheets, payslips, batch, logger)
	return server, timesheetDir, payslipDir
}

func doRequest(t *testing.T, server *Server, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestUploadTimesheet(t *testing.T) {
	server, timesheetDir, _ := newTestServer(t)

	buf, contentType := multipartUpload(t, "EMP001_Timesheet.xlsx", []byte("workbook"))
	req := httptest.NewRequest(http.MethodPost, "/api/timesheets", buf)
	req.Header.Set("Content-Type", contentType)

	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.FileExists(t, filepath.Join(timesheetDir, "EMP001_Timesheet.xlsx"))
}

func TestUploadTimesheet_RejectsNonExcel(t *testing.T) {
	server, _, _ := newTestServer(t)

	buf, contentType := multipartUpload(t, "timesheet.pdf", []byte("pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/timesheets", buf)
	req.Header.Set("Content-Type", contentType)

	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, ".xlsx")
}

func TestUploadTimesheet_MissingFileField(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/timesheets", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, body.Success)
}

func TestProcessTimesheets(t *testing.T) {
	server, timesheetDir, _ := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(timesheetDir, "emp001.xlsx"), []byte("x"), 0644))

	req := httptest.NewRequest(http.MethodPost, "/api/process", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var report worker.Report
	require.NoError(t, json.Unmarshal(raw, &report))

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Succeeded)
	assert.NotEmpty(t, report.RunID)
}

func TestProcessTimesheets_NothingToDo(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/process", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
}

func TestListPayslips(t *testing.T) {
	server, _, payslipDir := newTestServer(t)
	name := "EMP001_John_Smith_SalarySlip_20251031.pdf"
	require.NoError(t, os.WriteFile(filepath.Join(payslipDir, name), []byte("pdf"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/payslips", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var slips []storage.PayslipInfo
	require.NoError(t, json.Unmarshal(raw, &slips))
	require.Len(t, slips, 1)
	assert.Equal(t, "EMP001", slips[0].EmployeeID)
}

func TestDownloadPayslip_NotFound(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/payslips/absent.pdf", nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
}

func TestDeletePayslip(t *testing.T) {
	server, _, payslipDir := newTestServer(t)
	name := "EMP001_John_Smith_SalarySlip_20251031.pdf"
	path := filepath.Join(payslipDir, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0644))

	req := httptest.NewRequest(http.MethodDelete, "/api/payslips/"+name, nil)
	rec, body := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
