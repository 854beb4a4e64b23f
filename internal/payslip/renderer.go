package payslip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
)

// Config holds renderer settings.
type Config struct {
	OutputDir string
}

// Renderer produces salary-slip PDF documents from finished payroll results.
// It owns the filename convention: {employee_id}_{name}_SalarySlip_{period_end}.pdf.
type Renderer struct {
	outputDir string
	logger    *zap.Logger
}

// NewRenderer creates a payslip renderer writing into cfg.OutputDir.
func NewRenderer(cfg Config, logger *zap.Logger) *Renderer {
	return &Renderer{outputDir: cfg.OutputDir, logger: logger}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// Filename derives the payslip filename for an employee and period end. The
// employee name is underscored and sanitized so the result is filesystem and
// path-traversal safe; the period end drops its date separators.
func Filename(employeeID, employeeName, periodEnd string) string {
	id := unsafeNameChars.ReplaceAllString(employeeID, "")
	name := unsafeNameChars.ReplaceAllString(strings.ReplaceAll(employeeName, " ", "_"), "")
	period := strings.ReplaceAll(periodEnd, "-", "")
	return fmt.Sprintf("%s_%s_SalarySlip_%s.pdf", id, name, period)
}

// Render writes the salary slip PDF and returns its path.
func (r *Renderer) Render(_ context.Context, data *models.PayslipData) (string, error) {
	if data.Salary == nil {
		return "", fmt.Errorf("payslip data has no salary calculation")
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create payslip output directory: %w", err)
	}

	outputPath := filepath.Join(r.outputDir, Filename(data.Employee.EmployeeID, data.Employee.Name, data.Period.EndDate))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	r.writeHeader(pdf, data)
	r.writeEmployeeBlock(pdf, data)
	r.writeHoursBlock(pdf, data)
	r.writeEarningsBlock(pdf, data)
	r.writeDeductionsBlock(pdf, data)
	r.writeNetBlock(pdf, data)
	r.writeFooter(pdf)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write payslip PDF: %w", err)
	}

	r.logger.Info("Payslip generated",
		zap.String("employee_id", data.Employee.EmployeeID),
		zap.String("path", outputPath))

	return outputPath, nil
}

func (r *Renderer) writeHeader(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SALARY SLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.CompanyName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, data.CompanyAddress, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Pay Period: %s to %s", data.Period.StartDate, data.Period.EndDate), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) writeEmployeeBlock(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	r.sectionTitle(pdf, "EMPLOYEE INFORMATION")
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Employee ID", data.Employee.EmployeeID},
		{"Name", data.Employee.Name},
		{"Department", data.Employee.Department},
		{"Designation", data.Employee.Designation},
		{"Email", data.Employee.Email},
		{"Bank Account", data.Employee.BankAccount},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) writeHoursBlock(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	r.sectionTitle(pdf, "WORKING HOURS SUMMARY")
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Regular Hours", fmt.Sprintf("%.1f hrs", data.Hours.RegularHours)},
		{"Overtime Hours", fmt.Sprintf("%.1f hrs", data.Hours.OvertimeHours)},
		{"Leave Days", fmt.Sprintf("%d days", data.Hours.LeaveDays)},
		{"Holiday Work Hours", fmt.Sprintf("%.1f hrs", data.Hours.HolidayWorkHours)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) writeEarningsBlock(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	gross := data.Salary.GrossSalary
	r.sectionTitle(pdf, "EARNINGS")
	r.amountRows(pdf, [][2]string{
		{"Base Pay", money(gross.BasePay)},
		{"Overtime Pay", money(gross.OvertimePay)},
		{"Allowances", money(gross.Allowances)},
		{"Bonuses", money(gross.Bonuses)},
	})
	r.totalRow(pdf, "GROSS SALARY", money(gross.TotalGross))
	pdf.Ln(4)
}

func (r *Renderer) writeDeductionsBlock(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	ded := data.Salary.Deductions
	r.sectionTitle(pdf, "DEDUCTIONS")
	r.amountRows(pdf, [][2]string{
		{"Income Tax", money(ded.IncomeTax)},
		{"Social Security & Medicare", money(ded.SocialSecurity)},
		{"Insurance", money(ded.Insurance)},
		{"Provident Fund", money(ded.ProvidentFund)},
		{"Other Deductions", money(ded.OtherDeductions)},
	})
	r.totalRow(pdf, "TOTAL DEDUCTIONS", money(ded.TotalDeductions))
	pdf.Ln(4)
}

func (r *Renderer) writeNetBlock(pdf *gofpdf.Fpdf, data *models.PayslipData) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(26, 54, 93)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 12, "NET SALARY (TAKE HOME)", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 12, money(data.Salary.NetSalary), "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

func (r *Renderer) writeFooter(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(113, 128, 150)
	pdf.CellFormat(0, 5, "This is a computer-generated salary slip and does not require a signature.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on: %s", time.Now().Format("January 2, 2006 at 3:04 PM")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "For any queries, please contact the HR Department.", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(45, 55, 72)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(170, 8, title, "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) amountRows(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(110, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
}

func (r *Renderer) totalRow(pdf *gofpdf.Fpdf, label, amount string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(237, 242, 247)
	pdf.CellFormat(110, 8, label, "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, amount, "1", 1, "R", true, 0, "")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
