package models

// StageStatus is the status of one pipeline stage.
type StageStatus string

const (
	StagePending StageStatus = "pending"
	StageSuccess StageStatus = "success"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

// WorkflowStatus is the overall status of a pipeline run.
type WorkflowStatus string

const (
	WorkflowStarted             WorkflowStatus = "started"
	WorkflowCompleted           WorkflowStatus = "completed"
	WorkflowFailedAtParsing     WorkflowStatus = "failed_at_parsing"
	WorkflowFailedAtCalculation WorkflowStatus = "failed_at_calculation"
	WorkflowFailedAtGeneration  WorkflowStatus = "failed_at_generation"
)

// IsTerminal returns true once the run has either completed or failed.
func (s WorkflowStatus) IsTerminal() bool {
	return s != WorkflowStarted
}

// PipelineState records the outcome of one document's pipeline run. Each
// document owns its own state; nothing is shared between runs.
type PipelineState struct {
	TimesheetPath string `json:"timesheet_path"`

	Timesheet        *TimesheetData `json:"timesheet_data,omitempty"`
	Hours            *HoursSummary  `json:"hours,omitempty"`
	ExtractionStatus StageStatus    `json:"extraction_status"`
	ExtractionError  string         `json:"extraction_error,omitempty"`

	Calculation       *PayrollResult `json:"salary_calculation,omitempty"`
	CalculationStatus StageStatus    `json:"calculation_status"`
	CalculationError  string         `json:"calculation_error,omitempty"`

	PayslipPath      string      `json:"payslip_path,omitempty"`
	GenerationStatus StageStatus `json:"generation_status"`
	GenerationError  string      `json:"generation_error,omitempty"`

	WorkflowStatus WorkflowStatus `json:"workflow_status"`
}

// NewPipelineState initializes a run with all stages pending.
func NewPipelineState(timesheetPath string) *PipelineState {
	return &PipelineState{
		TimesheetPath:     timesheetPath,
		ExtractionStatus:  StagePending,
		CalculationStatus: StagePending,
		GenerationStatus:  StagePending,
		WorkflowStatus:    WorkflowStarted,
	}
}
