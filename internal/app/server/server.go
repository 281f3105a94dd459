package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"payslips/internal/domain/payroll"
	"payslips/internal/platform/archive"
	"payslips/internal/platform/config"
	"payslips/internal/platform/crypto"
	"payslips/internal/platform/email"
	"payslips/internal/platform/jobs"
	"payslips/internal/platform/logging"
	"payslips/internal/platform/metrics"
	"payslips/internal/platform/pdf"
	"payslips/internal/platform/spreadsheet"
	"payslips/internal/transport/http/api"
	payslipshandler "payslips/internal/transport/http/handlers/payslips"
	"payslips/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Log     *zap.Logger
	Service *payroll.Service
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Router  http.Handler
}

// NewService assembles the payslip service from configuration. The CLI uses it directly.
func NewService(cfg config.Config, log *zap.Logger) (*payroll.Service, error) {
	sealer, err := crypto.New(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	seq := payroll.NewSequencer(
		pdf.NewRenderer(pdf.WithFont(cfg.PDFFontFamily, cfg.PDFFontSize)),
		func() payroll.Archive { return archive.NewZip() },
		payroll.WithDateLayout(cfg.DateLayout),
		payroll.WithLogger(log),
	)
	exporter := spreadsheet.NewRegisterExporter(cfg.DateLayout)
	return payroll.NewService(seq, exporter, email.New(cfg), sealer, log), nil
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	svc, err := NewService(cfg, log)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Log:     log,
		Service: svc,
		Metrics: metrics.New(),
		Jobs:    jobs.New(64, log),
	}
	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	handler := payslipshandler.NewHandler(a.Service, a.Metrics, a.Log, payslipshandler.WithDispatcher(a.Jobs))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Log, a.Metrics))
	router.Use(middleware.Recoverer(a.Log))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithRateLimitLogger(a.Log)))
		handler.RegisterRoutes(r)
	})

	handler.RegisterPages(router)
	return router
}

func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	app, err := New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Jobs.Start(context.Background())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("payslip server listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			app.Jobs.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
	app.Jobs.Stop()
	return nil
}
