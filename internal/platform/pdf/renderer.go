package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"payslips/internal/domain/payroll"
)

type Option func(*Renderer)

func WithFont(family string, size float64) Option {
	return func(r *Renderer) {
		if family != "" {
			r.fontFamily = family
		}
		if size > 0 {
			r.fontSize = size
		}
	}
}

// WithCompression toggles stream compression; tests turn it off to read page text.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// Renderer draws positioned lines onto a single A4 page.
type Renderer struct {
	fontFamily string
	fontSize   float64
	compress   bool
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{fontFamily: "Helvetica", fontSize: 12, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(lines []payroll.Line) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetTitle(payroll.PayslipTitle, true)
	doc.SetCreator("payslips", true)
	doc.AddPage()
	doc.SetFont(r.fontFamily, "", r.fontSize)

	// Core fonts are cp1252; names with accents need translating first.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines {
		doc.Text(line.X, line.Y, tr(line.Text))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
