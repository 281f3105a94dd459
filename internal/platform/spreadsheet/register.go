package spreadsheet

import (
	"github.com/xuri/excelize/v2"

	"payslips/internal/domain/payroll"
)

const (
	registerSheet = "Register"
	headerRow     = 4
)

var registerColumns = []string{
	"Week", "Period Start", "Period End", "Gross Pay", "PAYG", "Super", "Net Pay",
	"Annual Leave Balance", "Sick Leave Balance",
}

// RegisterExporter writes every period of a run as one spreadsheet row with a totals row beneath.
type RegisterExporter struct {
	dateLayout string
}

func NewRegisterExporter(dateLayout string) *RegisterExporter {
	if dateLayout == "" {
		dateLayout = payroll.DefaultDateLayout
	}
	return &RegisterExporter{dateLayout: dateLayout}
}

func (e *RegisterExporter) Export(in payroll.Input, periods []payroll.Period) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}

	preamble := [][]any{
		{"Company", in.Company.Name, "ABN", in.Company.TaxID},
		{"Employee", in.Employee.Name, "ID", in.Employee.ID},
	}
	for i, row := range preamble {
		if err := setRow(f, i+1, row); err != nil {
			return nil, err
		}
	}

	header := make([]any, len(registerColumns))
	for i, col := range registerColumns {
		header[i] = col
	}
	if err := setRow(f, headerRow, header); err != nil {
		return nil, err
	}

	var totals payroll.Pay
	for i, p := range periods {
		row := []any{
			p.Week,
			p.Start.Format(e.dateLayout),
			p.End.Format(e.dateLayout),
			p.Gross, p.PAYG, p.Super, p.Net,
			p.AnnualLeave, p.SickLeave,
		}
		if err := setRow(f, headerRow+1+i, row); err != nil {
			return nil, err
		}
		totals.Gross += p.Gross
		totals.PAYG += p.PAYG
		totals.Super += p.Super
		totals.Net += p.Net
	}

	totalRow := headerRow + 1 + len(periods)
	if err := setRow(f, totalRow, []any{"Total", "", "", totals.Gross, totals.PAYG, totals.Super, totals.Net}); err != nil {
		return nil, err
	}

	if err := e.applyStyles(f, totalRow); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *RegisterExporter) applyStyles(f *excelize.File, lastRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(registerColumns), headerRow)
	if err := f.SetCellStyle(registerSheet, first, last, bold); err != nil {
		return err
	}
	amountsFrom, _ := excelize.CoordinatesToCellName(4, headerRow+1)
	amountsTo, _ := excelize.CoordinatesToCellName(len(registerColumns), lastRow)
	if err := f.SetCellStyle(registerSheet, amountsFrom, amountsTo, money); err != nil {
		return err
	}
	return f.SetColWidth(registerSheet, "A", "I", 18)
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(registerSheet, cell, &values)
}
