package models

import (
	"fmt"
	"time"
)

// AttendanceStatus classifies a single day in the daily-records table.
type AttendanceStatus string

const (
	StatusPresent     AttendanceStatus = "Present"
	StatusHalfDay     AttendanceStatus = "Half Day"
	StatusLeave       AttendanceStatus = "Leave"
	StatusHolidayWork AttendanceStatus = "Holiday Work"
	StatusWeekend     AttendanceStatus = "Weekend"
)

var validStatuses = map[AttendanceStatus]bool{
	StatusPresent:     true,
	StatusHalfDay:     true,
	StatusLeave:       true,
	StatusHolidayWork: true,
	StatusWeekend:     true,
}

// IsValid returns true if the status is one of the known attendance statuses.
func (s AttendanceStatus) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status.
func (s AttendanceStatus) String() string {
	return string(s)
}

// ParseAttendanceStatus converts a raw cell value into an AttendanceStatus.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	s := AttendanceStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown attendance status: %q", raw)
	}
	return s, nil
}

// EmployeeIdentity identifies the employee being paid.
type EmployeeIdentity struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	BankAccount string `json:"bank_account"`
}

// NewEmployeeIdentity builds an EmployeeIdentity, requiring a non-empty
// employee ID and name.
func NewEmployeeIdentity(id, name, department, designation, email, bankAccount string) (EmployeeIdentity, error) {
	if id == "" {
		return EmployeeIdentity{}, fmt.Errorf("employee ID is required")
	}
	if name == "" {
		return EmployeeIdentity{}, fmt.Errorf("employee name is required")
	}
	return EmployeeIdentity{
		EmployeeID:  id,
		Name:        name,
		Department:  department,
		Designation: designation,
		Email:       email,
		BankAccount: bankAccount,
	}, nil
}

// DateLayout is the calendar-date format used throughout timesheet documents.
const DateLayout = "2006-01-02"

// PayPeriod is the billing window a timesheet covers.
type PayPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewPayPeriod builds a PayPeriod, validating that both dates parse and that
// the start does not come after the end.
func NewPayPeriod(start, end string) (PayPeriod, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return PayPeriod{}, fmt.Errorf("invalid pay period start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return PayPeriod{}, fmt.Errorf("invalid pay period end date %q: %w", end, err)
	}
	if s.After(e) {
		return PayPeriod{}, fmt.Errorf("pay period start %s is after end %s", start, end)
	}
	return PayPeriod{StartDate: start, EndDate: end}, nil
}

// DailyAttendanceRecord is one calendar day's status in the timesheet.
type DailyAttendanceRecord struct {
	Date          string           `json:"date"`
	Day           string           `json:"day,omitempty"`
	Status        AttendanceStatus `json:"status"`
	HoursWorked   float64          `json:"hours_worked"`
	OvertimeHours float64          `json:"overtime_hours"`
	Notes         string           `json:"notes,omitempty"`
}

// NewDailyAttendanceRecord builds a DailyAttendanceRecord, rejecting negative
// hours and unknown statuses.
func NewDailyAttendanceRecord(date, day string, status AttendanceStatus, hoursWorked, overtimeHours float64, notes string) (DailyAttendanceRecord, error) {
	if date == "" {
		return DailyAttendanceRecord{}, fmt.Errorf("attendance record date is required")
	}
	if !status.IsValid() {
		return DailyAttendanceRecord{}, fmt.Errorf("unknown attendance status: %q", status)
	}
	if hoursWorked < 0 {
		return DailyAttendanceRecord{}, fmt.Errorf("negative hours worked on %s: %v", date, hoursWorked)
	}
	if overtimeHours < 0 {
		return DailyAttendanceRecord{}, fmt.Errorf("negative overtime hours on %s: %v", date, overtimeHours)
	}
	return DailyAttendanceRecord{
		Date:          date,
		Day:           day,
		Status:        status,
		HoursWorked:   hoursWorked,
		OvertimeHours: overtimeHours,
		Notes:         notes,
	}, nil
}

// HoursSummary is the monthly rollup derived from the daily records. It is
// always computed, never hand-entered.
type HoursSummary struct {
	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	LeaveDays        int     `json:"leave_days"`
	HolidayWorkHours float64 `json:"holiday_work_hours"`
}

// RateCard holds the employee's pay rates.
type RateCard struct {
	HourlyRate   float64 `json:"hourly_rate"`
	OvertimeRate float64 `json:"overtime_rate"`
}

// NewRateCard builds a RateCard, requiring both rates to be positive. The
// overtime rate is conventionally at least the hourly rate but that is not
// enforced.
func NewRateCard(hourly, overtime float64) (RateCard, error) {
	if hourly <= 0 {
		return RateCard{}, fmt.Errorf("hourly rate must be positive, got %v", hourly)
	}
	if overtime <= 0 {
		return RateCard{}, fmt.Errorf("overtime rate must be positive, got %v", overtime)
	}
	return RateCard{HourlyRate: hourly, OvertimeRate: overtime}, nil
}

// TimesheetData is the complete typed record set extracted from one document.
type TimesheetData struct {
	Employee EmployeeIdentity        `json:"employee"`
	Period   PayPeriod               `json:"period"`
	Days     []DailyAttendanceRecord `json:"days"`
	Rates    RateCard                `json:"rates"`
}
