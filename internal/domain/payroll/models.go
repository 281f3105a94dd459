package payroll

import "time"

type Company struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId"`
	Address string `json:"address"`
}

type Employee struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// LeaveBalances are currency amounts, not hours.
type LeaveBalances struct {
	Annual float64 `json:"annual"`
	Sick   float64 `json:"sick"`
}

// Input is everything a 52-week run needs. Build it once with Form.Input.
type Input struct {
	Company       Company       `json:"company"`
	SuperRate     float64       `json:"superRate"`
	Employee      Employee      `json:"employee"`
	HourlyRate    float64       `json:"hourlyRate"`
	HoursWorked   float64       `json:"hoursWorked"`
	OvertimeHours float64       `json:"overtimeHours"`
	OvertimeRate  float64       `json:"overtimeRate"`
	Leave         LeaveBalances `json:"leave"`
	StartDate     time.Time     `json:"startDate"`
}

type Period struct {
	Week        int       `json:"week"`
	Start       time.Time `json:"startDate"`
	End         time.Time `json:"endDate"`
	Gross       float64   `json:"gross"`
	PAYG        float64   `json:"payg"`
	Super       float64   `json:"super"`
	Net         float64   `json:"net"`
	AnnualLeave float64   `json:"annualLeaveBalance"`
	SickLeave   float64   `json:"sickLeaveBalance"`
}

// Line is one piece of text placed on a page, in millimetres from the top-left corner.
type Line struct {
	X    float64
	Y    float64
	Text string
}

type Bundle struct {
	Name      string
	Data      []byte
	Documents int
}
