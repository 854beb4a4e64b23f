// Command gen-timesheets writes a set of sample timesheet workbooks so the
// pipeline can be exercised end to end without real HR data.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/techcorp/payroll-engine/internal/models"
	"github.com/techcorp/payroll-engine/internal/timesheet"
)

type sampleEmployee struct {
	id           string
	name         string
	department   string
	designation  string
	hourlyRate   float64
	overtimeRate float64
}

var sampleEmployees = []sampleEmployee{
	{"EMP001", "John Smith", "Engineering", "Senior Software Engineer", 45.00, 67.50},
	{"EMP002", "Sarah Johnson", "Marketing", "Marketing Manager", 42.00, 63.00},
	{"EMP003", "Michael Chen", "Engineering", "DevOps Engineer", 48.00, 72.00},
	{"EMP004", "Emily Davis", "Human Resources", "HR Specialist", 35.00, 52.50},
	{"EMP005", "David Martinez", "Sales", "Sales Executive", 38.00, 57.00},
	{"EMP006", "Jessica Taylor", "Finance", "Financial Analyst", 40.00, 60.00},
	{"EMP007", "Robert Anderson", "Engineering", "Junior Developer", 32.00, 48.00},
	{"EMP008", "Lisa Wong", "Operations", "Operations Manager", 44.00, 66.00},
	{"EMP009", "James Brown", "Customer Support", "Support Specialist", 30.00, 45.00},
	{"EMP010", "Maria Garcia", "Design", "UI/UX Designer", 41.00, 61.50},
}

func main() {
	outDir := flag.String("out", "timesheets/excel", "output directory for generated workbooks")
	seed := flag.Int64("seed", 1, "random seed for attendance scenarios")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	periodStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	for _, emp := range sampleEmployees {
		data, err := buildTimesheet(emp, periodStart, periodEnd, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build timesheet for %s: %v\n", emp.id, err)
			os.Exit(1)
		}

		filename := fmt.Sprintf("%s_%s_Timesheet_%s.xlsx",
			emp.id,
			strings.ReplaceAll(emp.name, " ", "_"),
			periodStart.Format("Jan2006"))
		path := filepath.Join(*outDir, filename)

		if err := timesheet.WriteFile(data, path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}

func buildTimesheet(emp sampleEmployee, start, end time.Time, rng *rand.Rand) (*models.TimesheetData, error) {
	employee, err := models.NewEmployeeIdentity(
		emp.id,
		emp.name,
		emp.department,
		emp.designation,
		strings.ToLower(strings.ReplaceAll(emp.name, " ", "."))+"@company.com",
		fmt.Sprintf("%010d", rng.Int63n(1e10)),
	)
	if err != nil {
		return nil, err
	}

	period, err := models.NewPayPeriod(start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}

	rates, err := models.NewRateCard(emp.hourlyRate, emp.overtimeRate)
	if err != nil {
		return nil, err
	}

	var days []models.DailyAttendanceRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		record, err := dailyRecord(d, rng)
		if err != nil {
			return nil, err
		}
		days = append(days, record)
	}

	return &models.TimesheetData{
		Employee: employee,
		Period:   period,
		Days:     days,
		Rates:    rates,
	}, nil
}

func dailyRecord(d time.Time, rng *rand.Rand) (models.DailyAttendanceRecord, error) {
	date := d.Format(models.DateLayout)
	day := d.Weekday().String()

	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return models.NewDailyAttendanceRecord(date, day, models.StatusWeekend, 0, 0, "")
	}

	// Scenario mix roughly matching a real month: mostly normal days with
	// occasional overtime, half days, leave, and holiday work.
	switch roll := rng.Intn(100); {
	case roll < 70:
		return models.NewDailyAttendanceRecord(date, day, models.StatusPresent, 8, 0, "")
	case roll < 85:
		overtime := float64(1 + rng.Intn(4))
		return models.NewDailyAttendanceRecord(date, day, models.StatusPresent, 8, overtime,
			fmt.Sprintf("Overtime: %.0fh", overtime))
	case roll < 90:
		return models.NewDailyAttendanceRecord(date, day, models.StatusHalfDay, 4, 0, "Personal work")
	case roll < 98:
		return models.NewDailyAttendanceRecord(date, day, models.StatusLeave, 0, 0, "Sick Leave")
	default:
		return models.NewDailyAttendanceRecord(date, day, models.StatusHolidayWork, 8, 0, "Public Holiday - Extra Pay")
	}
}
