package payroll

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/models"
)

// Default pay policy. Rates are monthly-payroll simplifications of US
// federal withholding.
const (
	DefaultAllowance          = 500.0
	DefaultFullMonthBonus     = 200.0
	DefaultFullMonthHours     = 160.0
	DefaultHolidayPremiumRate = 0.5
	DefaultSocialSecurityRate = 0.062
	DefaultMedicareRate       = 0.0145
	DefaultInsuranceFlat      = 100.0
	DefaultProvidentFundRate  = 0.05
)

// CalculationError reports invalid numeric inputs reaching the calculator.
type CalculationError struct {
	msg string
}

func (e *CalculationError) Error() string { return e.msg }

func calculationErrorf(format string, args ...interface{}) *CalculationError {
	return &CalculationError{msg: fmt.Sprintf(format, args...)}
}

// Config holds the pay policy: fixed amounts, statutory percentages, and the
// progressive tax bracket table.
type Config struct {
	Allowance          float64
	FullMonthBonus     float64
	FullMonthHours     float64
	HolidayPremiumRate float64
	SocialSecurityRate float64
	MedicareRate       float64
	InsuranceFlat      float64
	ProvidentFundRate  float64
	Brackets           []Bracket
}

// DefaultConfig returns the standard pay policy with the default bracket
// table.
func DefaultConfig() Config {
	return Config{
		Allowance:          DefaultAllowance,
		FullMonthBonus:     DefaultFullMonthBonus,
		FullMonthHours:     DefaultFullMonthHours,
		HolidayPremiumRate: DefaultHolidayPremiumRate,
		SocialSecurityRate: DefaultSocialSecurityRate,
		MedicareRate:       DefaultMedicareRate,
		InsuranceFlat:      DefaultInsuranceFlat,
		ProvidentFundRate:  DefaultProvidentFundRate,
		Brackets:           DefaultBrackets(),
	}
}

// Calculator maps an hours summary and rate card into a complete payroll
// result. Pure and deterministic: no I/O, same inputs yield the same result.
type Calculator struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewCalculator creates a Calculator after validating the pay policy.
func NewCalculator(cfg Config, logger *zap.Logger) (*Calculator, error) {
	if len(cfg.Brackets) == 0 {
		return nil, fmt.Errorf("tax bracket table is empty")
	}
	if err := validateBrackets(cfg.Brackets); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg, logger: logger, now: time.Now}, nil
}

// Calculate derives the gross breakdown, deduction breakdown, and net pay
// for one employee and period.
func (c *Calculator) Calculate(employeeID string, hours models.HoursSummary, rates models.RateCard) (*models.PayrollResult, error) {
	gross, err := c.GrossPay(hours, rates)
	if err != nil {
		return nil, err
	}
	deductions := c.Deductions(gross.TotalGross)
	net := round2(gross.TotalGross - deductions.TotalDeductions)

	c.logger.Debug("Payroll calculated",
		zap.String("employee_id", employeeID),
		zap.Float64("total_gross", gross.TotalGross),
		zap.Float64("total_deductions", deductions.TotalDeductions),
		zap.Float64("net_salary", net))

	return &models.PayrollResult{
		EmployeeID:      employeeID,
		GrossSalary:     gross,
		Deductions:      deductions,
		NetSalary:       net,
		CalculationDate: c.now().Format(models.DateLayout),
	}, nil
}

// GrossPay computes the earnings breakdown. The holiday premium (half the
// hourly rate on hours already paid at the regular computation) folds into
// the allowances figure together with the fixed stipend. Each intermediate
// is rounded to two decimal places before summation.
func (c *Calculator) GrossPay(hours models.HoursSummary, rates models.RateCard) (models.GrossPayBreakdown, error) {
	if hours.RegularHours < 0 || hours.OvertimeHours < 0 || hours.HolidayWorkHours < 0 {
		return models.GrossPayBreakdown{}, calculationErrorf("negative hours in summary: %+v", hours)
	}
	if rates.HourlyRate <= 0 || rates.OvertimeRate <= 0 {
		return models.GrossPayBreakdown{}, calculationErrorf("non-positive rate in rate card: %+v", rates)
	}

	basePay := round2(hours.RegularHours * rates.HourlyRate)
	overtimePay := round2(hours.OvertimeHours * rates.OvertimeRate)
	holidayPremium := round2(hours.HolidayWorkHours * rates.HourlyRate * c.cfg.HolidayPremiumRate)
	allowances := round2(c.cfg.Allowance + holidayPremium)

	bonuses := 0.0
	if hours.RegularHours >= c.cfg.FullMonthHours {
		bonuses = round2(c.cfg.FullMonthBonus)
	}

	return models.GrossPayBreakdown{
		BasePay:     basePay,
		OvertimePay: overtimePay,
		Allowances:  allowances,
		Bonuses:     bonuses,
		TotalGross:  round2(basePay + overtimePay + allowances + bonuses),
	}, nil
}

// Deductions computes all withholdings from total gross pay: progressive
// income tax, the combined social-security and medicare statutory figure,
// flat insurance, the provident-fund percentage, and the "other" extension
// point which defaults to zero.
func (c *Calculator) Deductions(totalGross float64) models.DeductionBreakdown {
	incomeTax := c.ProgressiveTax(totalGross)
	statutory := round2(totalGross*c.cfg.SocialSecurityRate + totalGross*c.cfg.MedicareRate)
	insurance := round2(c.cfg.InsuranceFlat)
	providentFund := round2(totalGross * c.cfg.ProvidentFundRate)
	other := 0.0

	return models.DeductionBreakdown{
		IncomeTax:       incomeTax,
		SocialSecurity:  statutory,
		Insurance:       insurance,
		ProvidentFund:   providentFund,
		OtherDeductions: other,
		TotalDeductions: round2(incomeTax + statutory + insurance + providentFund + other),
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
