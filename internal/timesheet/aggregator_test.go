package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techcorp/payroll-engine/internal/models"
)

func day(date string, status models.AttendanceStatus, hours, overtime float64) models.DailyAttendanceRecord {
	return models.DailyAttendanceRecord{
		Date:          date,
		Status:        status,
		HoursWorked:   hours,
		OvertimeHours: overtime,
	}
}

func TestAggregate_FullMonth(t *testing.T) {
	var days []models.DailyAttendanceRecord

	// 20 regular days, 2 half days, 3 leave days, 1 holiday worked.
	for i := 0; i < 20; i++ {
		days = append(days, day("2025-10-01", models.StatusPresent, 8, 0))
	}
	days = append(days,
		day("2025-10-21", models.StatusHalfDay, 4, 0),
		day("2025-10-22", models.StatusHalfDay, 4, 0),
		day("2025-10-23", models.StatusLeave, 0, 0),
		day("2025-10-24", models.StatusLeave, 0, 0),
		day("2025-10-27", models.StatusLeave, 0, 0),
		day("2025-10-28", models.StatusHolidayWork, 8, 0),
	)

	summary := Aggregate(days)

	assert.InDelta(t, 168.0, summary.RegularHours, 0.001)
	assert.Equal(t, 3, summary.LeaveDays)
	assert.InDelta(t, 8.0, summary.HolidayWorkHours, 0.001)
	assert.Zero(t, summary.OvertimeHours)
}

func TestAggregate_OvertimeCountsRegardlessOfStatus(t *testing.T) {
	days := []models.DailyAttendanceRecord{
		day("2025-10-01", models.StatusPresent, 8, 2),
		day("2025-10-02", models.StatusHalfDay, 4, 1),
		day("2025-10-04", models.StatusWeekend, 0, 3),
		day("2025-10-06", models.StatusHolidayWork, 8, 1.5),
	}

	summary := Aggregate(days)

	assert.InDelta(t, 7.5, summary.OvertimeHours, 0.001)
	assert.InDelta(t, 12.0, summary.RegularHours, 0.001)
	assert.InDelta(t, 8.0, summary.HolidayWorkHours, 0.001)
}

func TestAggregate_WeekendContributesNothing(t *testing.T) {
	days := []models.DailyAttendanceRecord{
		day("2025-10-04", models.StatusWeekend, 0, 0),
		day("2025-10-05", models.StatusWeekend, 0, 0),
	}

	summary := Aggregate(days)
	assert.Equal(t, models.HoursSummary{}, summary)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, models.HoursSummary{}, Aggregate(nil))
}
