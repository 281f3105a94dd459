package payroll

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeExporter struct {
	periods []Period
	err     error
}

func (e *fakeExporter) Export(in Input, periods []Period) ([]byte, error) {
	e.periods = periods
	if e.err != nil {
		return nil, e.err
	}
	return []byte("xlsx"), nil
}

type fakeMailer struct {
	to, subject, filename string
	data                  []byte
	err                   error
}

func (m *fakeMailer) SendAttachment(ctx context.Context, to, subject, body, filename string, data []byte) error {
	m.to, m.subject, m.filename, m.data = to, subject, filename, data
	return m.err
}

type fakeEncryptor struct{}

func (fakeEncryptor) Configured() bool { return true }

func (fakeEncryptor) Encrypt(plain []byte) ([]byte, error) {
	return append([]byte("sealed:"), plain...), nil
}

func newTestService(exporter RegisterExporter, mailer Mailer, crypto Encryptor) *Service {
	seq := NewSequencer(&fakeRenderer{}, func() Archive { return &fakeArchive{} })
	return NewService(seq, exporter, mailer, crypto, nil)
}

func TestServiceRegister(t *testing.T) {
	exporter := &fakeExporter{}
	bundle, err := newTestService(exporter, nil, nil).Register(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exporter.periods) != WeeksPerYear {
		t.Fatalf("expected exporter to receive 52 periods, got %d", len(exporter.periods))
	}
	if bundle.Name != "Jane Citizen_Payroll_Register.xlsx" || string(bundle.Data) != "xlsx" {
		t.Fatalf("unexpected bundle %+v", bundle)
	}
}

func TestServiceRegisterWrapsExportErrors(t *testing.T) {
	exporter := &fakeExporter{err: errors.New("boom")}
	_, err := newTestService(exporter, nil, nil).Register(context.Background(), testInput())
	if !errors.Is(err, ErrExportFailed) {
		t.Fatalf("expected export failure, got %v", err)
	}
}

func TestServicePreviewRejectsInvalidInput(t *testing.T) {
	periods, err := newTestService(nil, nil, nil).Preview(testInput())
	if err != nil || len(periods) != WeeksPerYear {
		t.Fatalf("expected 52 periods, got %d (%v)", len(periods), err)
	}
	in := testInput()
	in.HoursWorked = -2
	if _, err := newTestService(nil, nil, nil).Preview(in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestServiceSavePlain(t *testing.T) {
	dir := t.TempDir()
	path, err := newTestService(nil, nil, nil).Save(dir, Bundle{Name: "Jane_Payslips_Year.zip", Data: []byte("zip")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "Jane_Payslips_Year.zip") {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved archive: %v", err)
	}
	if string(data) != "zip" {
		t.Fatalf("unexpected saved data %q", data)
	}
}

func TestServiceSaveEncrypted(t *testing.T) {
	dir := t.TempDir()
	path, err := newTestService(nil, nil, fakeEncryptor{}).Save(dir, Bundle{Name: "../Jane_Payslips_Year.zip", Data: []byte("zip")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".enc" {
		t.Fatalf("expected sealed file inside %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sealed archive: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("sealed:")) {
		t.Fatalf("expected encrypted payload, got %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "_Jane_Payslips_Year.zip")); !os.IsNotExist(err) {
		t.Fatalf("expected no plain copy on disk, got %v", err)
	}
}

func TestServiceEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(nil, mailer, nil)
	bundle := Bundle{Name: "Jane Citizen_Payslips_Year.zip", Data: []byte("zip"), Documents: 52}

	if err := svc.Email(context.Background(), " jane@example.com ", testInput(), bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.to != "jane@example.com" || mailer.filename != bundle.Name || string(mailer.data) != "zip" {
		t.Fatalf("unexpected mail %+v", mailer)
	}
	if mailer.subject != "Payslips for Jane Citizen" {
		t.Fatalf("unexpected subject %q", mailer.subject)
	}

	mailer.err = errors.New("smtp down")
	if err := svc.Email(context.Background(), "jane@example.com", testInput(), bundle); !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected delivery failure, got %v", err)
	}
}

func TestServiceEmailSkipsWithoutRecipient(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("should not be called")}
	if err := newTestService(nil, mailer, nil).Email(context.Background(), "", testInput(), Bundle{}); err != nil {
		t.Fatalf("expected no delivery attempt, got %v", err)
	}
}

func TestSafeFileName(t *testing.T) {
	tests := map[string]string{
		"Jane Citizen_Payslips_Year.zip": "Jane Citizen_Payslips_Year.zip",
		"../a/b":                         "_a_b",
		"a:b*c?.zip":                     "a_b_c_.zip",
		"  ":                             "payslips",
	}
	for in, want := range tests {
		if got := SafeFileName(in); got != want {
			t.Fatalf("SafeFileName(%q): expected %q, got %q", in, want, got)
		}
	}
}
