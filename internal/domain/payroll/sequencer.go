package payroll

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Renderer turns one payslip's positioned lines into a document.
type Renderer interface {
	Render(lines []Line) ([]byte, error)
}

// Archive collects named documents and produces a single blob once finalized.
type Archive interface {
	AddEntry(name string, data []byte) error
	Finalize(ctx context.Context) ([]byte, error)
}

type ArchiveFactory func() Archive

type SequencerOption func(*Sequencer)

func WithDateLayout(layout string) SequencerOption {
	return func(s *Sequencer) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

func WithLogger(log *zap.Logger) SequencerOption {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

type Sequencer struct {
	renderer   Renderer
	newArchive ArchiveFactory
	dateLayout string
	log        *zap.Logger
}

func NewSequencer(renderer Renderer, newArchive ArchiveFactory, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		renderer:   renderer,
		newArchive: newArchive,
		dateLayout: DefaultDateLayout,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run renders one payslip per week into a fresh archive. Any failure discards
// the archive; the caller gets either all 52 documents or an error.
func (s *Sequencer) Run(ctx context.Context, in Input) (Bundle, error) {
	if err := in.Validate(); err != nil {
		return Bundle{}, err
	}

	archive := s.newArchive()
	l := newLedger(in)
	for !l.done() {
		if err := ctx.Err(); err != nil {
			return Bundle{}, err
		}
		period := l.next()
		doc, err := s.renderer.Render(PayslipLines(in, period, s.dateLayout))
		if err != nil {
			s.log.Warn("payslip render failed", zap.Int("week", period.Week), zap.Error(err))
			return Bundle{}, fmt.Errorf("%w: week %d: %w", ErrRenderFailed, period.Week, err)
		}
		if err := archive.AddEntry(PayslipName(period.Week), doc); err != nil {
			s.log.Warn("payslip archive entry failed", zap.Int("week", period.Week), zap.Error(err))
			return Bundle{}, fmt.Errorf("%w: week %d: %w", ErrArchiveFailed, period.Week, err)
		}
	}

	data, err := archive.Finalize(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: finalize: %w", ErrArchiveFailed, err)
	}

	s.log.Info("payslips generated",
		zap.String("employeeId", in.Employee.ID),
		zap.Int("documents", l.week),
		zap.Int("archiveBytes", len(data)),
	)
	return Bundle{Name: ArchiveName(in.Employee.Name), Data: data, Documents: l.week}, nil
}

// Periods returns the full year without rendering anything.
func Periods(in Input) []Period {
	out := make([]Period, 0, WeeksPerYear)
	l := newLedger(in)
	for !l.done() {
		out = append(out, l.next())
	}
	return out
}

func PayslipName(week int) string {
	return fmt.Sprintf(PayslipNamePattern, week)
}

func ArchiveName(employeeName string) string {
	return fmt.Sprintf(ArchiveNamePattern, employeeName)
}

func RegisterName(employeeName string) string {
	return fmt.Sprintf(RegisterNamePattern, employeeName)
}

// ledger owns the running leave balances and period dates for one run.
type ledger struct {
	in       Input
	start    time.Time
	balances LeaveBalances
	week     int
}

func newLedger(in Input) *ledger {
	return &ledger{
		in:       in,
		start:    calendarDate(in.StartDate),
		balances: in.Leave,
	}
}

func (l *ledger) done() bool {
	return l.week >= WeeksPerYear
}

func (l *ledger) next() Period {
	l.week++
	pay := ComputePay(l.in)
	l.balances = AccrueLeave(l.balances, pay.Gross)

	period := Period{
		Week:        l.week,
		Start:       l.start,
		End:         l.start.AddDate(0, 0, PeriodDays-1),
		Gross:       pay.Gross,
		PAYG:        pay.PAYG,
		Super:       pay.Super,
		Net:         pay.Net,
		AnnualLeave: l.balances.Annual,
		SickLeave:   l.balances.Sick,
	}
	l.start = l.start.AddDate(0, 0, PeriodDays)
	return period
}

// calendarDate drops the clock so day arithmetic never crosses a DST shift.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
