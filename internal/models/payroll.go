package models

// GrossPayBreakdown itemizes earnings before deductions. All amounts are
// rounded to two decimal places.
type GrossPayBreakdown struct {
	BasePay     float64 `json:"base_pay"`
	OvertimePay float64 `json:"overtime_pay"`
	Allowances  float64 `json:"allowances"`
	Bonuses     float64 `json:"bonuses"`
	TotalGross  float64 `json:"total_gross"`
}

// DeductionBreakdown itemizes withholdings. SocialSecurity combines the
// social-security and medicare percentages into one statutory figure.
type DeductionBreakdown struct {
	IncomeTax       float64 `json:"income_tax"`
	SocialSecurity  float64 `json:"social_security"`
	Insurance       float64 `json:"insurance"`
	ProvidentFund   float64 `json:"provident_fund"`
	OtherDeductions float64 `json:"other_deductions"`
	TotalDeductions float64 `json:"total_deductions"`
}

// PayrollResult is the finished wage calculation for one employee and period.
type PayrollResult struct {
	EmployeeID      string             `json:"employee_id"`
	GrossSalary     GrossPayBreakdown  `json:"gross_salary"`
	Deductions      DeductionBreakdown `json:"deductions"`
	NetSalary       float64            `json:"net_salary"`
	CalculationDate string             `json:"calculation_date"`
}

// PayslipData bundles everything the renderer needs to produce a salary slip.
type PayslipData struct {
	Employee       EmployeeIdentity `json:"employee"`
	Period         PayPeriod        `json:"period"`
	Hours          HoursSummary     `json:"hours"`
	Salary         *PayrollResult   `json:"salary"`
	CompanyName    string           `json:"company_name"`
	CompanyAddress string           `json:"company_address"`
}
