package timesheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/techcorp/payroll-engine/internal/models"
)

// Builder row positions, mirroring the layout the extractor reads. The daily
// header lands at row 12 (1-indexed) with two visual spacer rows around each
// block, the way hand-maintained sheets are laid out.
const (
	builderPeriodRow = 9
	builderDailyRow  = 12
)

// WriteWorkbook renders a TimesheetData into a workbook laid out per the
// timesheet document contract. The summary block is derived from the daily
// records, never taken from the input.
func WriteWorkbook(data *models.TimesheetData) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", preferredSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Identity block, rows 1-6.
	identity := [][2]interface{}{
		{fieldEmployeeID, data.Employee.EmployeeID},
		{fieldName, data.Employee.Name},
		{fieldDepartment, data.Employee.Department},
		{fieldDesignation, data.Employee.Designation},
		{fieldEmail, data.Employee.Email},
		{fieldBankAccount, data.Employee.BankAccount},
	}
	for i, pair := range identity {
		if err := setPair(f, i+1, pair[0], pair[1]); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Pay period block, rows 9-10.
	if err := setPair(f, builderPeriodRow, "Pay Period Start", data.Period.StartDate); err != nil {
		f.Close()
		return nil, err
	}
	if err := setPair(f, builderPeriodRow+1, "Pay Period End", data.Period.EndDate); err != nil {
		f.Close()
		return nil, err
	}

	// Daily records table with its promoted header row.
	header := []interface{}{colDate, colDay, colStatus, colHours, colOvertime, colNotes}
	if err := f.SetSheetRow(preferredSheet, cellRef(builderDailyRow), &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write daily header: %w", err)
	}
	for i, d := range data.Days {
		row := []interface{}{d.Date, d.Day, string(d.Status), d.HoursWorked, d.OvertimeHours, d.Notes}
		if err := f.SetSheetRow(preferredSheet, cellRef(builderDailyRow+1+i), &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write daily row %d: %w", i, err)
		}
	}

	// Rate summary block, anchored by its first label.
	hours := Aggregate(data.Days)
	summaryRow := builderDailyRow + 1 + len(data.Days) + 2
	summary := [][2]interface{}{
		{summaryAnchor, hours.RegularHours},
		{"Total Overtime Hours", hours.OvertimeHours},
		{"Total Leave Days", hours.LeaveDays},
		{"Holiday Work Hours", hours.HolidayWorkHours},
		{"Hourly Rate ($)", data.Rates.HourlyRate},
		{"Overtime Rate ($)", data.Rates.OvertimeRate},
	}
	for i, pair := range summary {
		if err := setPair(f, summaryRow+i, pair[0], pair[1]); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// WriteFile renders a TimesheetData workbook and saves it to path.
func WriteFile(data *models.TimesheetData, path string) error {
	f, err := WriteWorkbook(data)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save timesheet %s: %w", path, err)
	}
	return nil
}

func setPair(f *excelize.File, row int, label, value interface{}) error {
	pair := []interface{}{label, value}
	if err := f.SetSheetRow(preferredSheet, cellRef(row), &pair); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func cellRef(row int) string {
	name, _ := excelize.CoordinatesToCellName(1, row)
	return name
}
