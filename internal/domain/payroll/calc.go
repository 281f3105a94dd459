package payroll

type Pay struct {
	Gross float64
	Super float64
	PAYG  float64
	Net   float64
}

// ComputeGross is the same every week because hours and rates are entered once per run.
func ComputeGross(in Input) float64 {
	return in.HoursWorked*in.HourlyRate + in.OvertimeHours*in.OvertimeRate
}

func ComputePay(in Input) Pay {
	gross := ComputeGross(in)
	superAmount := gross * in.SuperRate
	payg := WeeklyWithholding(gross)
	return Pay{
		Gross: gross,
		Super: superAmount,
		PAYG:  payg,
		Net:   gross - superAmount - payg,
	}
}

// AccrueLeave adds one week of accrual to the running balances.
func AccrueLeave(balances LeaveBalances, gross float64) LeaveBalances {
	balances.Annual += gross * AnnualLeaveAccrualRate
	balances.Sick += (gross * SickLeaveAccrualRate) / SickLeaveAccrualDivisor
	return balances
}
