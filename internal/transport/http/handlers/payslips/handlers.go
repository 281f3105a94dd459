package payslipshandler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"payslips/internal/domain/payroll"
	"payslips/internal/platform/jobs"
	"payslips/internal/platform/metrics"
	"payslips/internal/transport/http/api"
	"payslips/internal/transport/http/middleware"
	"payslips/internal/transport/http/shared"
)

const (
	zipContentType  = "application/zip"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

//go:embed web/index.html web/payslips.js
var web embed.FS

type Service interface {
	Generate(ctx context.Context, in payroll.Input) (payroll.Bundle, error)
	Preview(in payroll.Input) ([]payroll.Period, error)
	Register(ctx context.Context, in payroll.Input) (payroll.Bundle, error)
	Email(ctx context.Context, to string, in payroll.Input, b payroll.Bundle) error
}

// Dispatcher runs work after the response has been written.
type Dispatcher interface {
	Enqueue(jobType, key string, run func(context.Context) error) bool
}

type Handler struct {
	svc        Service
	metrics    *metrics.Collector
	log        *zap.Logger
	dispatcher Dispatcher
}

type HandlerOption func(*Handler)

// WithDispatcher moves email delivery off the request path.
func WithDispatcher(d Dispatcher) HandlerOption {
	return func(h *Handler) {
		h.dispatcher = d
	}
}

func NewHandler(svc Service, collector *metrics.Collector, log *zap.Logger, opts ...HandlerOption) *Handler {
	if collector == nil {
		collector = metrics.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{svc: svc, metrics: collector, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Post("/", h.handleGenerate)
		r.Post("/preview", h.handlePreview)
		r.Post("/register", h.handleRegister)
	})
}

// RegisterPages mounts the input form and its script.
func (h *Handler) RegisterPages(r chi.Router) {
	r.Get("/", h.serveAsset("web/index.html", "text/html; charset=utf-8"))
	r.Get("/assets/payslips.js", h.serveAsset("web/payslips.js", "text/javascript; charset=utf-8"))
}

type previewResponse struct {
	Employee payroll.Employee `json:"employee"`
	Periods  []payroll.Period `json:"periods"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	form, in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	bundle, err := h.svc.Generate(r.Context(), in)
	h.metrics.RecordRun(bundle.Documents, err)
	if err != nil {
		h.failRun(w, r, err, "payslip_generation_failed", "failed to generate payslips")
		return
	}

	if form.DeliverTo != "" {
		w.Header().Set("X-Payslips-Delivery", h.deliver(r.Context(), reqID, form.DeliverTo, in, bundle))
	}

	w.Header().Set("X-Payslips-Count", strconv.Itoa(bundle.Documents))
	w.Header().Set("X-Payslips-Confirmation", payroll.ConfirmationMessage)
	api.Attachment(w, zipContentType, bundle.Name, bundle.Data)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, in, ok := h.readInput(w, r)
	if !ok {
		return
	}
	periods, err := h.svc.Preview(in)
	if err != nil {
		h.failRun(w, r, err, "payslip_preview_failed", "failed to preview payslips")
		return
	}
	api.Success(w, previewResponse{Employee: in.Employee, Periods: periods}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	_, in, ok := h.readInput(w, r)
	if !ok {
		return
	}
	bundle, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.failRun(w, r, err, "register_export_failed", "failed to export payroll register")
		return
	}
	api.Attachment(w, xlsxContentType, bundle.Name, bundle.Data)
}

func (h *Handler) deliver(ctx context.Context, reqID, to string, in payroll.Input, bundle payroll.Bundle) string {
	if h.dispatcher != nil {
		queued := h.dispatcher.Enqueue(jobs.JobEmailDelivery, reqID, func(ctx context.Context) error {
			return h.svc.Email(ctx, to, in, bundle)
		})
		if !queued {
			return "skipped"
		}
		return "queued"
	}
	if err := h.svc.Email(ctx, to, in, bundle); err != nil {
		h.log.Warn("payslip email failed", zap.String("requestId", reqID), zap.Error(err))
		return "failed"
	}
	return "sent"
}

// readInput decodes and validates the submitted form, writing the failure response itself.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (payroll.Form, payroll.Input, bool) {
	reqID := middleware.GetRequestID(r.Context())
	form, err := decodeForm(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return payroll.Form{}, payroll.Input{}, false
	}

	in, err := form.Input()
	if err != nil {
		v := shared.NewValidator()
		if v.AddError(err) {
			v.Reject(w, reqID)
		} else {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		}
		return payroll.Form{}, payroll.Input{}, false
	}
	return form, in, true
}

func (h *Handler) failRun(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	switch {
	case v.AddError(err):
		v.Reject(w, reqID)
	case errors.Is(err, context.Canceled):
		h.log.Info("payslip request abandoned", zap.String("requestId", reqID))
	default:
		h.log.Error(message, zap.String("requestId", reqID), zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}

func decodeForm(r *http.Request) (payroll.Form, error) {
	var form payroll.Form
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return payroll.Form{}, err
		}
		return form, nil
	}
	if err := r.ParseForm(); err != nil {
		return payroll.Form{}, err
	}
	return payroll.FormFromValues(r.PostForm.Get), nil
}

func (h *Handler) serveAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := web.ReadFile(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}
