package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PayslipInfo describes one generated payslip, with metadata recovered from
// the renderer's filename convention:
// {employee_id}_{employee_name}_SalarySlip_{period_end}.pdf.
type PayslipInfo struct {
	Filename     string    `json:"filename"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	CreatedAt    time.Time `json:"created_at"`
	Size         int64     `json:"size"`
}

// PayslipLibrary manages the directory of generated payslip PDFs.
type PayslipLibrary struct {
	baseDir string
	logger  *zap.Logger
}

// NewPayslipLibrary creates a PayslipLibrary rooted at baseDir.
func NewPayslipLibrary(baseDir string, logger *zap.Logger) *PayslipLibrary {
	return &PayslipLibrary{baseDir: baseDir, logger: logger}
}

// Dir returns the library's base directory.
func (l *PayslipLibrary) Dir() string {
	return l.baseDir
}

// List returns all payslips in the library, newest first.
func (l *PayslipLibrary) List() ([]PayslipInfo, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read payslip directory: %w", err)
	}

	var slips []PayslipInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		id, name := ParsePayslipName(entry.Name())
		slips = append(slips, PayslipInfo{
			Filename:     entry.Name(),
			EmployeeID:   id,
			EmployeeName: name,
			CreatedAt:    info.ModTime(),
			Size:         info.Size(),
		})
	}

	sort.Slice(slips, func(i, j int) bool {
		return slips[i].CreatedAt.After(slips[j].CreatedAt)
	})
	return slips, nil
}

// Resolve maps a payslip filename to its on-disk path, rejecting names that
// would escape the library directory or that are not PDFs.
func (l *PayslipLibrary) Resolve(filename string) (string, error) {
	safeName := SanitizeFilename(filename)
	if safeName == "" || safeName != filename {
		return "", fmt.Errorf("invalid payslip filename: %q", filename)
	}
	if !strings.EqualFold(filepath.Ext(safeName), ".pdf") {
		return "", fmt.Errorf("not a payslip file: %q", filename)
	}

	fullPath := filepath.Join(l.baseDir, safeName)
	if err := validateWithin(l.baseDir, fullPath); err != nil {
		return "", err
	}
	if _, err := os.Stat(fullPath); err != nil {
		return "", fmt.Errorf("payslip not found: %s", filename)
	}
	return fullPath, nil
}

// Delete removes a payslip from the library.
func (l *PayslipLibrary) Delete(filename string) error {
	fullPath, err := l.Resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	l.logger.Info("Payslip deleted", zap.String("filename", filename))
	return nil
}

// ParsePayslipName recovers the employee ID and name from a payslip
// filename. Unknown layouts yield empty fields rather than an error.
func ParsePayslipName(filename string) (employeeID, employeeName string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	if len(parts) < 4 {
		return "", ""
	}
	// {id}_{name parts...}_SalarySlip_{period}
	return parts[0], strings.Join(parts[1:len(parts)-2], " ")
}
