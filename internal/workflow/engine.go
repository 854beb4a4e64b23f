package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
	"github.com/techcorp/payroll-engine/internal/timesheet"
)

// Extractor produces typed timesheet records from a document path.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (*models.TimesheetData, error)
}

// Calculator derives a payroll result from an hours summary and rate card.
type Calculator interface {
	Calculate(employeeID string, hours models.HoursSummary, rates models.RateCard) (*models.PayrollResult, error)
}

// Renderer formats a finished payroll result into a payslip document and
// returns the path it wrote. Filename convention is the renderer's concern.
type Renderer interface {
	Render(ctx context.Context, data *models.PayslipData) (string, error)
}

// Engine sequences the three pipeline stages for one document: extraction,
// calculation, and hand-off to the renderer. Once a stage fails, every
// downstream stage is marked skipped and never attempted. Failure is
// terminal per document; the caller may resubmit the document wholesale.
type Engine struct {
	extractor      Extractor
	calculator     Calculator
	renderer       Renderer
	companyName    string
	companyAddress string
	logger         *zap.Logger
}

// NewEngine creates a pipeline engine.
func NewEngine(extractor Extractor, calculator Calculator, renderer Renderer, companyName, companyAddress string, logger *zap.Logger) *Engine {
	return &Engine{
		extractor:      extractor,
		calculator:     calculator,
		renderer:       renderer,
		companyName:    companyName,
		companyAddress: companyAddress,
		logger:         logger,
	}
}

// Process runs one timesheet document through the full pipeline and returns
// its terminal PipelineState. Stage errors are absorbed into the state; no
// failure escapes a stage boundary as a panic or returned error.
func (e *Engine) Process(ctx context.Context, path string) *models.PipelineState {
	state := models.NewPipelineState(path)

	e.logger.Info("Pipeline started", zap.String("timesheet", path))

	e.runExtraction(ctx, state)
	e.runCalculation(state)
	e.runHandoff(ctx, state)

	e.logger.Info("Pipeline finished",
		zap.String("timesheet", path),
		zap.String("workflow_status", string(state.WorkflowStatus)))

	return state
}

// runExtraction performs the extraction stage and derives the hours summary
// from the extracted daily records.
func (e *Engine) runExtraction(ctx context.Context, state *models.PipelineState) {
	data, err := e.extractor.ExtractFile(ctx, state.TimesheetPath)
	if err != nil {
		state.ExtractionStatus = models.StageFailed
		state.ExtractionError = err.Error()
		state.WorkflowStatus = models.WorkflowFailedAtParsing
		e.logger.Warn("Extraction stage failed",
			zap.String("timesheet", state.TimesheetPath),
			zap.Error(err))
		return
	}

	hours := timesheet.Aggregate(data.Days)
	state.Timesheet = data
	state.Hours = &hours
	state.ExtractionStatus = models.StageSuccess
}

func (e *Engine) runCalculation(state *models.PipelineState) {
	if state.ExtractionStatus != models.StageSuccess {
		state.CalculationStatus = models.StageSkipped
		return
	}

	result, err := e.calculator.Calculate(state.Timesheet.Employee.EmployeeID, *state.Hours, state.Timesheet.Rates)
	if err != nil {
		state.CalculationStatus = models.StageFailed
		state.CalculationError = err.Error()
		state.WorkflowStatus = models.WorkflowFailedAtCalculation
		e.logger.Warn("Calculation stage failed",
			zap.String("timesheet", state.TimesheetPath),
			zap.Error(err))
		return
	}

	state.Calculation = result
	state.CalculationStatus = models.StageSuccess
}

// runHandoff packages the fully-computed result for the renderer. It only
// runs on a valid result; no partial PayrollResult is ever exposed.
func (e *Engine) runHandoff(ctx context.Context, state *models.PipelineState) {
	if state.CalculationStatus != models.StageSuccess {
		state.GenerationStatus = models.StageSkipped
		return
	}

	slip := &models.PayslipData{
		Employee:       state.Timesheet.Employee,
		Period:         state.Timesheet.Period,
		Hours:          *state.Hours,
		Salary:         state.Calculation,
		CompanyName:    e.companyName,
		CompanyAddress: e.companyAddress,
	}

	path, err := e.renderer.Render(ctx, slip)
	if err != nil {
		state.GenerationStatus = models.StageFailed
		state.GenerationError = err.Error()
		state.WorkflowStatus = models.WorkflowFailedAtGeneration
		e.logger.Warn("Handoff stage failed",
			zap.String("timesheet", state.TimesheetPath),
			zap.Error(err))
		return
	}

	state.PayslipPath = path
	state.GenerationStatus = models.StageSuccess
	state.WorkflowStatus = models.WorkflowCompleted
}
