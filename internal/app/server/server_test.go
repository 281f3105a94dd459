package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"payslips/internal/platform/config"
)

func testConfig() config.Config {
	return config.Config{
		Addr:               ":0",
		Environment:        "test",
		MaxBodyBytes:       65536,
		RateLimitPerMinute: 30,
		MetricsEnabled:     true,
		DateLayout:         "02/01/2006",
		PDFFontFamily:      "Helvetica",
		PDFFontSize:        12,
		OutputDir:          "",
	}
}

func TestHealthz(t *testing.T) {
	app, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestMetricsToggle(t *testing.T) {
	app, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "payslipsTotal") {
		t.Fatalf("unexpected metrics response %d %s", rec.Code, rec.Body.String())
	}

	cfg := testConfig()
	cfg.MetricsEnabled = false
	app, err = New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code == http.StatusOK {
		t.Fatal("expected metrics to be unavailable when disabled")
	}
}

func TestNewRejectsBadEncryptionKey(t *testing.T) {
	cfg := testConfig()
	cfg.EncryptionKey = "short"
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for a key that is not 32 bytes")
	}
}

func TestPayslipRoutesAreRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	app, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/preview", strings.NewReader(url.Values{}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := post(); code != http.StatusBadRequest {
		t.Fatalf("expected first request to reach validation, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", code)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected form page outside the limit, got %d", rec.Code)
	}
}

func TestConfiguredFontReachesRenderer(t *testing.T) {
	values := url.Values{
		"companyName": {"Acme"}, "abn": {"1"}, "address": {"Sydney"},
		"empName": {"Jane"}, "empID": {"E1"}, "hourlyRate": {"30"},
		"hoursWorked": {"38"}, "startDate": {"2025-07-01"},
	}
	generate := func(family string) *httptest.ResponseRecorder {
		cfg := testConfig()
		cfg.PDFFontFamily = family
		app, err := New(cfg, nil)
		if err != nil {
			t.Fatalf("new app: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec
	}

	if rec := generate("Courier"); rec.Code != http.StatusOK {
		t.Fatalf("expected core font to render, got %d: %s", rec.Code, rec.Body.String())
	}
	rec := generate("NoSuchFont")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "payslip_generation_failed") {
		t.Fatalf("expected unknown font to fail generation, got %d: %s", rec.Code, rec.Body.String())
	}
}
