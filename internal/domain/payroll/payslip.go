package payroll

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const lineX = 20

// PayslipLines lays out one week's payslip. Amounts are rounded here and nowhere else.
func PayslipLines(in Input, p Period, dateLayout string) []Line {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	rows := []struct {
		y    float64
		text string
	}{
		{20, PayslipTitle},
		{30, "Company: " + in.Company.Name},
		{36, "ABN: " + in.Company.TaxID},
		{42, "Address: " + in.Company.Address},
		{54, fmt.Sprintf("Employee: %s (ID: %s)", in.Employee.Name, in.Employee.ID)},
		{60, fmt.Sprintf("Pay Period: %s - %s", p.Start.Format(dateLayout), p.End.Format(dateLayout))},
		{72, "Hours Worked: " + number(in.HoursWorked)},
		{78, "Hourly Rate: " + money(in.HourlyRate)},
		{84, fmt.Sprintf("Overtime: %s @ %s", number(in.OvertimeHours), money(in.OvertimeRate))},
		{96, "Gross Pay: " + money(p.Gross)},
		{102, "PAYG: " + money(p.PAYG)},
		{108, fmt.Sprintf("Super (%s%%): %s", fixed(in.SuperRate*100, 1), money(p.Super))},
		{114, "Net Pay: " + money(p.Net)},
		{126, "Annual Leave Balance: " + money(p.AnnualLeave)},
		{132, "Sick Leave Balance: " + money(p.SickLeave)},
	}
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, Line{X: lineX, Y: row.y, Text: row.text})
	}
	return lines
}

func money(v float64) string {
	return "$" + fixed(v, 2)
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
