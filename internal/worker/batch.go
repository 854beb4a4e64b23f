package worker

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/techcorp/payroll-engine/internal/models"
)

// Pipeline runs one timesheet document end to end.
type Pipeline interface {
	Process(ctx context.Context, path string) *models.PipelineState
}

// DocumentResult summarizes one document's run inside a batch.
type DocumentResult struct {
	File         string                `json:"file"`
	Status       models.WorkflowStatus `json:"status"`
	Error        string                `json:"error,omitempty"`
	EmployeeName string                `json:"employee_name,omitempty"`
	NetSalary    float64               `json:"net_salary,omitempty"`
	PayslipPath  string                `json:"payslip_path,omitempty"`
}

// Report aggregates a batch run.
type Report struct {
	RunID       string           `json:"run_id"`
	Total       int              `json:"total"`
	Succeeded   int              `json:"succeeded"`
	Failed      int              `json:"failed"`
	TotalNetPay float64          `json:"total_net_pay"`
	Results     []DocumentResult `json:"results"`
}

// BatchProcessor runs a set of timesheet documents through the pipeline in
// parallel. Each document owns its own PipelineState and output filename, so
// no locking is needed beyond collecting results.
type BatchProcessor struct {
	pipeline    Pipeline
	concurrency int
	logger      *zap.Logger
}

// NewBatchProcessor creates a batch processor with the given parallelism.
func NewBatchProcessor(pipeline Pipeline, concurrency int, logger *zap.Logger) *BatchProcessor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchProcessor{pipeline: pipeline, concurrency: concurrency, logger: logger}
}

// ProcessDir runs every .xlsx workbook found in dir.
func (p *BatchProcessor) ProcessDir(ctx context.Context, dir string) (*Report, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return p.ProcessFiles(ctx, files), nil
}

// ProcessFiles runs the given workbooks with bounded parallelism and
// collects a batch report. A document failure never aborts the batch.
func (p *BatchProcessor) ProcessFiles(ctx context.Context, files []string) *Report {
	report := &Report{
		RunID: uuid.NewString(),
		Total: len(files),
	}

	p.logger.Info("Batch run started",
		zap.String("run_id", report.RunID),
		zap.Int("documents", len(files)),
		zap.Int("concurrency", p.concurrency))

	var mu sync.Mutex
	results := make([]DocumentResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			state := p.pipeline.Process(ctx, file)
			results[i] = toResult(file, state)
			if state.WorkflowStatus == models.WorkflowCompleted {
				mu.Lock()
				report.Succeeded++
				report.TotalNetPay += state.Calculation.NetSalary
				mu.Unlock()
			} else {
				mu.Lock()
				report.Failed++
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; failures live in the per-document states.
	_ = g.Wait()

	report.Results = results

	p.logger.Info("Batch run finished",
		zap.String("run_id", report.RunID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Float64("total_net_pay", report.TotalNetPay))

	return report
}

func toResult(file string, state *models.PipelineState) DocumentResult {
	result := DocumentResult{
		File:   filepath.Base(file),
		Status: state.WorkflowStatus,
	}
	if state.Timesheet != nil {
		result.EmployeeName = state.Timesheet.Employee.Name
	}
	if state.Calculation != nil {
		result.NetSalary = state.Calculation.NetSalary
	}
	result.PayslipPath = state.PayslipPath

	switch {
	case state.ExtractionError != "":
		result.Error = state.ExtractionError
	case state.CalculationError != "":
		result.Error = state.CalculationError
	case state.GenerationError != "":
		result.Error = state.GenerationError
	}
	return result
}
