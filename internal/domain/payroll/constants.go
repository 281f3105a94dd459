package payroll

const (
	WeeksPerYear = 52
	PeriodDays   = 7

	AnnualLeaveAccrualRate = 0.0154
	SickLeaveAccrualRate   = 0.0385

	// SickLeaveAccrualDivisor spreads an annual rate over months but is applied every week.
	SickLeaveAccrualDivisor = 12

	DefaultSuperRatePercent = 11
	DefaultLeaveBalances    = "0,0"
	DefaultDateLayout       = "02/01/2006"
	InputDateLayout         = "2006-01-02"

	PayslipTitle        = "EMPLOYEE PAYSLIP"
	PayslipNamePattern  = "Payslip_Week%d.pdf"
	ArchiveNamePattern  = "%s_Payslips_Year.zip"
	RegisterNamePattern = "%s_Payroll_Register.xlsx"
	ConfirmationMessage = "52 weekly payslips generated and downloaded as ZIP!"
)
