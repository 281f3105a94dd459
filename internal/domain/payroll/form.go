package payroll

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form mirrors the labelled input fields one to one. Every value stays raw text
// until Input parses it.
type Form struct {
	CompanyName   string `json:"companyName" validate:"required"`
	ABN           string `json:"abn" validate:"required"`
	Address       string `json:"address" validate:"required"`
	SuperRate     string `json:"superRate" validate:"omitempty,numeric"`
	EmpName       string `json:"empName" validate:"required"`
	EmpID         string `json:"empID" validate:"required"`
	HourlyRate    string `json:"hourlyRate" validate:"required,numeric"`
	HoursWorked   string `json:"hoursWorked" validate:"required,numeric"`
	OvertimeHours string `json:"overtimeHours" validate:"omitempty,numeric"`
	OvertimeRate  string `json:"overtimeRate" validate:"omitempty,numeric"`
	LeaveBalances string `json:"leaveBalances"`
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`

	// DeliverTo optionally names an address the finished archive is emailed to.
	DeliverTo string `json:"deliverTo" validate:"omitempty,email"`
}

// FormFields lists the field names in form order.
var FormFields = []string{
	"companyName", "abn", "address", "superRate",
	"empName", "empID", "hourlyRate", "hoursWorked",
	"overtimeHours", "overtimeRate", "leaveBalances", "startDate",
	"deliverTo",
}

// FormFromValues builds a Form from any key lookup, such as url.Values.Get.
func FormFromValues(get func(string) string) Form {
	return Form{
		CompanyName:   get("companyName"),
		ABN:           get("abn"),
		Address:       get("address"),
		SuperRate:     get("superRate"),
		EmpName:       get("empName"),
		EmpID:         get("empID"),
		HourlyRate:    get("hourlyRate"),
		HoursWorked:   get("hoursWorked"),
		OvertimeHours: get("overtimeHours"),
		OvertimeRate:  get("overtimeRate"),
		LeaveBalances: get("leaveBalances"),
		StartDate:     get("startDate"),
		DeliverTo:     get("deliverTo"),
	}
}

// UnmarshalJSON accepts numbers as well as strings so API clients need not quote amounts.
func (f *Form) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			values[key] = v
		case json.Number:
			values[key] = v.String()
		case nil:
		default:
			return fmt.Errorf("field %s: unsupported value %v", key, v)
		}
	}
	*f = FormFromValues(func(key string) string { return values[key] })
	return nil
}

var (
	formValidatorOnce sync.Once
	formValidator     *validator.Validate
)

func getFormValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		formValidator = v
	})
	return formValidator
}

func (f Form) trimmed() Form {
	v := reflect.ValueOf(&f).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		field.SetString(strings.TrimSpace(field.String()))
	}
	return f
}

// Input validates the form and converts it. All problems are reported together
// in a *ValidationError; nothing is computed when it is non-nil.
func (f Form) Input() (Input, error) {
	f = f.trimmed()
	issues := &ValidationError{}

	if err := getFormValidator().Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		for _, fe := range fieldErrs {
			issues.add(fe.Field(), reasonFor(fe))
		}
	}

	in := Input{
		Company:  Company{Name: f.CompanyName, TaxID: f.ABN, Address: f.Address},
		Employee: Employee{Name: f.EmpName, ID: f.EmpID},
	}
	in.SuperRate = issues.amount("superRate", f.SuperRate, DefaultSuperRatePercent) / 100
	in.HourlyRate = issues.amount("hourlyRate", f.HourlyRate, 0)
	in.HoursWorked = issues.amount("hoursWorked", f.HoursWorked, 0)
	in.OvertimeHours = issues.amount("overtimeHours", f.OvertimeHours, 0)
	in.OvertimeRate = issues.amount("overtimeRate", f.OvertimeRate, 0)
	in.Leave = issues.leave("leaveBalances", f.LeaveBalances)
	if !issues.has("startDate") {
		start, err := time.Parse(InputDateLayout, f.StartDate)
		if err != nil {
			issues.add("startDate", "must be a valid date in YYYY-MM-DD format")
		}
		in.StartDate = start
	}

	if err := issues.orNil(); err != nil {
		return Input{}, err
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be a number"
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

func (e *ValidationError) has(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// amount parses a non-negative number, falling back when the field was left blank.
func (e *ValidationError) amount(field, raw string, fallback float64) float64 {
	if e.has(field) {
		return 0
	}
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		e.add(field, "must be a number")
		return 0
	}
	if value < 0 {
		e.add(field, "must not be negative")
		return 0
	}
	return value
}

// leave parses "annual,sick". A blank value means both balances start at zero.
func (e *ValidationError) leave(field, raw string) LeaveBalances {
	if raw == "" {
		raw = DefaultLeaveBalances
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		e.add(field, "must be two comma-separated numbers (annual,sick)")
		return LeaveBalances{}
	}
	values := [2]float64{}
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			e.add(field, "must be two comma-separated numbers (annual,sick)")
			return LeaveBalances{}
		}
		if value < 0 {
			e.add(field, "must not contain negative balances")
			return LeaveBalances{}
		}
		values[i] = value
	}
	return LeaveBalances{Annual: values[0], Sick: values[1]}
}
