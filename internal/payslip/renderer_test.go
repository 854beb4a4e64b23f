package payslip

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
)

func samplePayslip() *models.PayslipData {
	return &models.PayslipData{
		Employee: models.EmployeeIdentity{
			EmployeeID:  "EMP001",
			Name:        "John Smith",
			Department:  "Engineering",
			Designation: "Senior Software Engineer",
			Email:       "john.smith@company.com",
			BankAccount: "1234567890",
		},
		Period: models.PayPeriod{StartDate: "2025-10-01", EndDate: "2025-10-31"},
		Hours:  models.HoursSummary{RegularHours: 160, OvertimeHours: 12, LeaveDays: 2, HolidayWorkHours: 8},
		Salary: &models.PayrollResult{
			EmployeeID: "EMP001",
			GrossSalary: models.GrossPayBreakdown{
				BasePay: 7200, OvertimePay: 810, Allowances: 680, Bonuses: 200, TotalGross: 8890,
			},
			Deductions: models.DeductionBreakdown{
				IncomeTax: 1713.60, SocialSecurity: 680.09, Insurance: 100, ProvidentFund: 444.50,
				TotalDeductions: 2938.19,
			},
			NetSalary:       5951.81,
			CalculationDate: "2025-11-01",
		},
		CompanyName:    "TechCorp Industries Inc.",
		CompanyAddress: "123 Business Avenue, San Francisco, CA 94102",
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		employee string
		period   string
		expected string
	}{
		{
			name:     "standard convention",
			id:       "EMP001",
			employee: "John Smith",
			period:   "2025-10-31",
			expected: "EMP001_John_Smith_SalarySlip_20251031.pdf",
		},
		{
			name:     "special characters stripped",
			id:       "EMP/002",
			employee: "Sarah O'Brien",
			period:   "2025-10-31",
			expected: "EMP002_Sarah_OBrien_SalarySlip_20251031.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.id, tt.employee, tt.period))
		})
	}
}

func TestRender_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(Config{OutputDir: dir}, zap.NewNop())

	path, err := renderer.Render(context.Background(), samplePayslip())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "EMP001_John_Smith_SalarySlip_20251031.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// PDF magic header.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestRender_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "salary_slips")
	renderer := NewRenderer(Config{OutputDir: dir}, zap.NewNop())

	path, err := renderer.Render(context.Background(), samplePayslip())
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.FileExists(t, path)
}

func TestRender_RequiresSalary(t *testing.T) {
	renderer := NewRenderer(Config{OutputDir: t.TempDir()}, zap.NewNop())

	data := samplePayslip()
	data.Salary = nil

	_, err := renderer.Render(context.Background(), data)
	assert.Error(t, err)
}
