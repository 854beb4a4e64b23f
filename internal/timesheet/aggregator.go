package timesheet

import "github.com/techcorp/payroll-engine/internal/models"

// Aggregate reduces the ordered daily attendance records into an hours
// summary. The rules are order-independent, so a single pass suffices:
//
//   - regular hours accumulate for Present and Half Day records
//   - overtime hours accumulate for every record regardless of status
//   - each Leave record counts one leave day
//   - holiday-work hours accumulate for Holiday Work records
//
// Weekend records carry zero hours at source and contribute nothing. An
// empty record set yields a zero summary.
func Aggregate(days []models.DailyAttendanceRecord) models.HoursSummary {
	var summary models.HoursSummary
	for _, d := range days {
		switch d.Status {
		case models.StatusPresent, models.StatusHalfDay:
			summary.RegularHours += d.HoursWorked
		case models.StatusLeave:
			summary.LeaveDays++
		case models.StatusHolidayWork:
			summary.HolidayWorkHours += d.HoursWorked
		}
		summary.OvertimeHours += d.OvertimeHours
	}
	return summary
}
