package pdf

import (
	"bytes"
	"testing"

	"payslips/internal/domain/payroll"
)

func TestRenderProducesPDF(t *testing.T) {
	lines := []payroll.Line{
		{X: 20, Y: 20, Text: payroll.PayslipTitle},
		{X: 20, Y: 30, Text: "Company: Acme Pty Ltd"},
	}

	data, err := NewRenderer(WithCompression(false)).Render(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", data[:8])
	}
	if !bytes.Contains(data, []byte("EMPLOYEE PAYSLIP")) {
		t.Fatal("expected title text in page content")
	}
	if !bytes.Contains(data, []byte("Company: Acme Pty Ltd")) {
		t.Fatal("expected company line in page content")
	}
}

func TestRenderAcceptsAccentedText(t *testing.T) {
	lines := []payroll.Line{{X: 20, Y: 54, Text: "Employee: Zoë Ångström (ID: 9)"}}
	if _, err := NewRenderer().Render(lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderRejectsUnknownFont(t *testing.T) {
	_, err := NewRenderer(WithFont("NoSuchFont", 12)).Render([]payroll.Line{{X: 20, Y: 20, Text: "x"}})
	if err == nil {
		t.Fatal("expected error for unknown font")
	}
}
