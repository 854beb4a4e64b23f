package api

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/storage"
	"github.com/techcorp/payroll-engine/internal/worker"
)

// maxUploadBytes caps a single timesheet upload at 10 MB.
const maxUploadBytes = 10 << 20

// Handlers contains all HTTP request handlers
type Handlers struct {
	timesheets *storage.TimesheetStore
	payslips   *storage.PayslipLibrary
	batch      *worker.BatchProcessor
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	timesheets *storage.TimesheetStore,
	payslips *storage.PayslipLibrary,
	batch *worker.BatchProcessor,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		timesheets: timesheets,
		payslips:   payslips,
		batch:      batch,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// UploadResponse represents a stored timesheet in API responses
type UploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// UploadTimesheet handles POST /api/timesheets
func (h *Handlers) UploadTimesheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "multipart form must contain a \"file\" field",
		})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   "timesheet upload exceeds size limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}

	path, err := h.timesheets.SaveUpload(fileHeader.Filename, content)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data: UploadResponse{
			Filename: filepath.Base(path),
			Path:     path,
			Size:     fileHeader.Size,
		},
	})
}

// ListTimesheets handles GET /api/timesheets
func (h *Handlers) ListTimesheets(c *gin.Context) {
	paths, err := h.timesheets.ListWorkbooks()
	if err != nil {
		h.logger.Error("Failed to list timesheets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list timesheets",
		})
		return
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    names,
	})
}

// ProcessTimesheets handles POST /api/process. It runs every stored
// timesheet through the pipeline and returns the batch report; per-document
// failures are reported inside the batch, not as an HTTP error.
func (h *Handlers) ProcessTimesheets(c *gin.Context) {
	files, err := h.timesheets.ListWorkbooks()
	if err != nil {
		h.logger.Error("Failed to list timesheets for processing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list timesheets",
		})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "no timesheets to process",
		})
		return
	}

	report := h.batch.ProcessFiles(c.Request.Context(), files)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

// ListPayslips handles GET /api/payslips
func (h *Handlers) ListPayslips(c *gin.Context) {
	slips, err := h.payslips.List()
	if err != nil {
		h.logger.Error("Failed to list payslips", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list payslips",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    slips,
	})
}

// DownloadPayslip handles GET /api/payslips/:filename
func (h *Handlers) DownloadPayslip(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.payslips.Resolve(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "payslip not found",
		})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// DeletePayslip handles DELETE /api/payslips/:filename
func (h *Handlers) DeletePayslip(c *gin.Context) {
	filename := c.Param("filename")
	if err := h.payslips.Delete(filename); err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "payslip not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
	})
}
