package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"payslips/internal/domain/payroll"
)

func TestFieldLabel(t *testing.T) {
	tests := map[string]string{
		"hourlyRate":    "Hourly Rate",
		"leaveBalances": "Leave Balances",
		"abn":           "ABN",
		"empID":         "Employee ID",
		"startDate":     "Start Date",
	}
	for field, want := range tests {
		if got := FieldLabel(field); got != want {
			t.Fatalf("FieldLabel(%q): expected %q, got %q", field, want, got)
		}
	}
}

func TestValidatorAddError(t *testing.T) {
	v := NewValidator()
	_, err := payroll.Form{}.Input()
	if !v.AddError(err) {
		t.Fatalf("expected domain validation error to be accepted, got %v", err)
	}
	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	for i := 1; i < len(issues); i++ {
		if issues[i-1].Field > issues[i].Field {
			t.Fatalf("expected issues sorted by field, got %+v", issues)
		}
	}

	if NewValidator().AddError(errors.New("other")) {
		t.Fatal("expected non-validation error to be refused")
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("expected no rejection without issues")
	}

	v.Add("hourlyRate", "is required")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Error.Code != "validation_error" || body.RequestID != "req-1" {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if len(body.Error.Details.Fields) != 1 || body.Error.Details.Fields[0].Label != "Hourly Rate" {
		t.Fatalf("unexpected field issues %+v", body.Error.Details.Fields)
	}
}
