package payroll

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput   = errors.New("invalid payroll input")
	ErrRenderFailed   = errors.New("payslip render failed")
	ErrArchiveFailed  = errors.New("payslip archive failed")
	ErrExportFailed   = errors.New("payroll register export failed")
	ErrDeliveryFailed = errors.New("payslip delivery failed")
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field problem found in one pass.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Reason)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}
