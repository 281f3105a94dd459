package shared

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"payslips/internal/domain/payroll"
	"payslips/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Label:  FieldLabel(field),
		Reason: reason,
	})
}

// AddError folds a domain validation error into the collected issues. It reports
// false for any other error so the caller can map it differently.
func (v *Validator) AddError(err error) bool {
	var verr *payroll.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, issue := range verr.Issues {
		v.Add(issue.Field, issue.Reason)
	}
	return true
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

var labelOverrides = map[string]string{
	"abn":     "ABN",
	"empID":   "Employee ID",
	"empName": "Employee Name",
}

// FieldLabel turns a camelCase field name into the words shown next to the input.
func FieldLabel(field string) string {
	if label, ok := labelOverrides[field]; ok {
		return label
	}
	var words strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			words.WriteByte(' ')
		}
		words.WriteRune(r)
	}
	return cases.Title(language.English).String(words.String())
}
