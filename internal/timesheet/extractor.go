package timesheet

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
)

// Document layout contract. The identity and period blocks sit at fixed row
// positions; the daily-records and rate-summary blocks are located by
// scanning for anchor rows.
const (
	identityRows   = 6
	periodStartRow = 8
	periodEndRow   = 9

	dailyAnchor = "date"
	// A header row plus at most 31 data rows (longest month).
	dailyBlockRows = 32

	summaryAnchor      = "Total Regular Hours"
	summaryBlockRows   = 6
	hourlyRateOffset   = 4
	overtimeRateOffset = 5
)

// Identity field labels in the fixed header block.
const (
	fieldEmployeeID  = "Employee ID"
	fieldName        = "Name"
	fieldDepartment  = "Department"
	fieldDesignation = "Designation"
	fieldEmail       = "Email"
	fieldBankAccount = "Bank Account"
)

// Required daily-table columns, matched against the promoted header row.
const (
	colDate     = "date"
	colDay      = "day"
	colStatus   = "status"
	colHours    = "hours_worked"
	colOvertime = "overtime_hours"
	colNotes    = "notes"
)

// Extractor scans a positional tabular document for the identity block, the
// daily-records block, and the rate-summary block, and yields typed records.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new timesheet extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractFile opens an .xlsx timesheet and extracts its records.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*models.TimesheetData, error) {
	src, err := OpenExcelSource(path)
	if err != nil {
		return nil, err
	}
	data, err := e.Extract(ctx, src)
	if err != nil {
		e.logger.Warn("Timesheet extraction failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}
	e.logger.Info("Timesheet extracted",
		zap.String("path", path),
		zap.String("employee_id", data.Employee.EmployeeID),
		zap.String("employee_name", data.Employee.Name),
		zap.Int("daily_records", len(data.Days)))
	return data, nil
}

// Extract reads all three document regions from a TabularSource. The scans
// are single forward passes; the first matching anchor row wins.
func (e *Extractor) Extract(_ context.Context, src TabularSource) (*models.TimesheetData, error) {
	employee, err := e.readIdentity(src)
	if err != nil {
		return nil, err
	}

	period, err := e.readPeriod(src)
	if err != nil {
		return nil, err
	}

	days, err := e.readDailyRecords(src)
	if err != nil {
		return nil, err
	}

	rates, err := e.readRates(src)
	if err != nil {
		return nil, err
	}

	return &models.TimesheetData{
		Employee: employee,
		Period:   period,
		Days:     days,
		Rates:    rates,
	}, nil
}

// readIdentity reads the fixed field→value pairs in rows 0-5.
func (e *Extractor) readIdentity(src TabularSource) (models.EmployeeIdentity, error) {
	fields := make(map[string]string, identityRows)
	for row := 0; row < identityRows; row++ {
		field := src.Cell(row, 0)
		value := src.Cell(row, 1)
		if field != "" && value != "" {
			fields[field] = value
		}
	}

	employee, err := models.NewEmployeeIdentity(
		fields[fieldEmployeeID],
		fields[fieldName],
		fields[fieldDepartment],
		fields[fieldDesignation],
		fields[fieldEmail],
		fields[fieldBankAccount],
	)
	if err != nil {
		return models.EmployeeIdentity{}, validationErrorf("identity block: %v", err)
	}
	return employee, nil
}

// readPeriod reads the pay-period start and end from the fixed rows 8-9.
func (e *Extractor) readPeriod(src TabularSource) (models.PayPeriod, error) {
	start := src.Cell(periodStartRow, 1)
	end := src.Cell(periodEndRow, 1)
	period, err := models.NewPayPeriod(start, end)
	if err != nil {
		return models.PayPeriod{}, validationErrorf("pay period block: %v", err)
	}
	return period, nil
}

// readDailyRecords locates the daily-records block by scanning for the first
// row whose first cell equals "date" (case-insensitive), promotes it to a
// header, and reads up to 31 data rows, stopping early if the rate-summary
// anchor appears. Blank-date rows are visual spacers and are dropped.
func (e *Extractor) readDailyRecords(src TabularSource) ([]models.DailyAttendanceRecord, error) {
	headerRow := -1
	for row := 0; row < src.RowCount(); row++ {
		if strings.EqualFold(src.Cell(row, 0), dailyAnchor) {
			headerRow = row
			break
		}
	}
	if headerRow < 0 {
		return nil, structuralErrorf("daily attendance records not found: no row with %q header", dailyAnchor)
	}

	columns := e.readHeader(src, headerRow)
	for _, required := range []string{colDate, colStatus, colHours, colOvertime} {
		if _, ok := columns[required]; !ok {
			return nil, structuralErrorf("daily records table is missing column %q (found: %s)",
				required, columnNames(columns))
		}
	}

	var days []models.DailyAttendanceRecord
	for offset := 1; offset < dailyBlockRows; offset++ {
		row := headerRow + offset
		if row >= src.RowCount() {
			break
		}
		// The rate-summary block ends the daily table early in short months.
		if strings.HasPrefix(src.Cell(row, 0), summaryAnchor) {
			break
		}
		date := src.Cell(row, columns[colDate])
		if date == "" {
			continue
		}

		status, err := models.ParseAttendanceStatus(src.Cell(row, columns[colStatus]))
		if err != nil {
			return nil, validationErrorf("daily record %s: %v", date, err)
		}
		hours, err := e.readNumericCell(src, row, columns, colHours, date)
		if err != nil {
			return nil, err
		}
		overtime, err := e.readNumericCell(src, row, columns, colOvertime, date)
		if err != nil {
			return nil, err
		}

		day := ""
		if col, ok := columns[colDay]; ok {
			day = src.Cell(row, col)
		}
		notes := ""
		if col, ok := columns[colNotes]; ok {
			notes = src.Cell(row, col)
		}

		record, err := models.NewDailyAttendanceRecord(date, day, status, hours, overtime, notes)
		if err != nil {
			return nil, validationErrorf("daily record %s: %v", date, err)
		}
		days = append(days, record)
	}

	return days, nil
}

// readHeader maps lowercased header-cell values to their column indexes.
func (e *Extractor) readHeader(src TabularSource, headerRow int) map[string]int {
	columns := make(map[string]int)
	for col := 0; ; col++ {
		name := strings.ToLower(src.Cell(headerRow, col))
		if name == "" {
			break
		}
		if _, seen := columns[name]; !seen {
			columns[name] = col
		}
	}
	return columns
}

// readNumericCell coerces an hours cell to float64. A blank cell reads as
// zero; anything else that fails to parse is a validation error.
func (e *Extractor) readNumericCell(src TabularSource, row int, columns map[string]int, column, date string) (float64, error) {
	raw := src.Cell(row, columns[column])
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validationErrorf("daily record %s: non-numeric %s value %q", date, column, raw)
	}
	return v, nil
}

// readRates locates the rate-summary block by scanning for the first row
// whose first cell starts with "Total Regular Hours". The block spans six
// rows counting the anchor; the hourly and overtime rates sit at offsets 4
// and 5, column 1.
func (e *Extractor) readRates(src TabularSource) (models.RateCard, error) {
	anchorRow := -1
	for row := 0; row < src.RowCount(); row++ {
		if strings.HasPrefix(src.Cell(row, 0), summaryAnchor) {
			anchorRow = row
			break
		}
	}
	if anchorRow < 0 {
		return models.RateCard{}, structuralErrorf("rate summary block not found: no row starting with %q", summaryAnchor)
	}

	hourly, err := e.readRateCell(src, anchorRow+hourlyRateOffset, "hourly rate")
	if err != nil {
		return models.RateCard{}, err
	}
	overtime, err := e.readRateCell(src, anchorRow+overtimeRateOffset, "overtime rate")
	if err != nil {
		return models.RateCard{}, err
	}

	rates, err := models.NewRateCard(hourly, overtime)
	if err != nil {
		return models.RateCard{}, validationErrorf("rate summary block: %v", err)
	}
	return rates, nil
}

func (e *Extractor) readRateCell(src TabularSource, row int, label string) (float64, error) {
	raw := src.Cell(row, 1)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validationErrorf("rate summary block: non-numeric %s value %q", label, raw)
	}
	return v, nil
}

func columnNames(columns map[string]int) string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
