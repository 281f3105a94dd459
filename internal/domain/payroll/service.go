package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// RegisterExporter writes the year's periods as a single spreadsheet.
type RegisterExporter interface {
	Export(in Input, periods []Period) ([]byte, error)
}

type Mailer interface {
	SendAttachment(ctx context.Context, to, subject, body, filename string, data []byte) error
}

type Encryptor interface {
	Configured() bool
	Encrypt(plain []byte) ([]byte, error)
}

type Service struct {
	sequencer *Sequencer
	exporter  RegisterExporter
	mailer    Mailer
	crypto    Encryptor
	log       *zap.Logger
}

func NewService(sequencer *Sequencer, exporter RegisterExporter, mailer Mailer, crypto Encryptor, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{sequencer: sequencer, exporter: exporter, mailer: mailer, crypto: crypto, log: log}
}

func (s *Service) Generate(ctx context.Context, in Input) (Bundle, error) {
	return s.sequencer.Run(ctx, in)
}

func (s *Service) Preview(in Input) ([]Period, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return Periods(in), nil
}

func (s *Service) Register(ctx context.Context, in Input) (Bundle, error) {
	if err := in.Validate(); err != nil {
		return Bundle{}, err
	}
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}
	periods := Periods(in)
	data, err := s.exporter.Export(in, periods)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return Bundle{Name: RegisterName(in.Employee.Name), Data: data, Documents: len(periods)}, nil
}

// Save writes the bundle under dir and returns the written path. With an
// encryption key configured only the sealed copy (".enc") is kept on disk.
func (s *Service) Save(dir string, b Bundle) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, SafeFileName(b.Name))

	if s.crypto != nil && s.crypto.Configured() {
		encrypted, err := s.crypto.Encrypt(b.Data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		s.log.Info("payslip archive saved", zap.String("path", encryptedPath), zap.Bool("encrypted", true))
		return encryptedPath, nil
	}

	if err := os.WriteFile(filePath, b.Data, 0o600); err != nil {
		return "", err
	}
	s.log.Info("payslip archive saved", zap.String("path", filePath), zap.Bool("encrypted", false))
	return filePath, nil
}

func (s *Service) Email(ctx context.Context, to string, in Input, b Bundle) error {
	to = strings.TrimSpace(to)
	if to == "" || s.mailer == nil {
		return nil
	}
	subject := fmt.Sprintf("Payslips for %s", in.Employee.Name)
	body := fmt.Sprintf("Attached are %d weekly payslips for %s (ID: %s) issued by %s.",
		b.Documents, in.Employee.Name, in.Employee.ID, in.Company.Name)
	if err := s.mailer.SendAttachment(ctx, to, subject, body, b.Name, b.Data); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	s.log.Info("payslip archive emailed", zap.String("employeeId", in.Employee.ID), zap.Int("documents", b.Documents))
	return nil
}

// SafeFileName keeps a user-supplied name inside its directory.
func SafeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return "payslips"
	}
	return cleaned
}
