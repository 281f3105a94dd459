package payroll

import "math"

// Validate guards the sequencer against values that would poison every period.
// Form.Input already applies the same rules; this covers inputs built in code.
func (in Input) Validate() error {
	issues := &ValidationError{}
	if in.Employee.Name == "" {
		issues.add("empName", "is required")
	}
	checks := []struct {
		field string
		value float64
	}{
		{"superRate", in.SuperRate},
		{"hourlyRate", in.HourlyRate},
		{"hoursWorked", in.HoursWorked},
		{"overtimeHours", in.OvertimeHours},
		{"overtimeRate", in.OvertimeRate},
		{"leaveBalances", in.Leave.Annual},
		{"leaveBalances", in.Leave.Sick},
	}
	for _, c := range checks {
		if issues.has(c.field) {
			continue
		}
		switch {
		case math.IsNaN(c.value) || math.IsInf(c.value, 0):
			issues.add(c.field, "must be a finite number")
		case c.value < 0:
			issues.add(c.field, "must not be negative")
		}
	}
	if in.StartDate.IsZero() {
		issues.add("startDate", "is required")
	}
	if err := issues.orNil(); err != nil {
		return err
	}
	pay := ComputePay(in)
	for _, v := range []float64{pay.Gross, pay.Gross * WeeksPerYear, pay.Super, pay.PAYG, pay.Net} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues.add("hourlyRate", "produces a gross pay that is out of range")
			break
		}
	}
	return issues.orNil()
}
