package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/internal/infrastructure"
	"github.com/JaimeStill/bizz/pkg/database"
	"github.com/JaimeStill/bizz/pkg/pagination"
	"github.com/JaimeStill/bizz/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=bizzstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/bizzstore;"

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "bizz",
			User:            "bizz",
			Password:        "bizz",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "listings",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "10MB",
			Pagination:    pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		},
	}
	if err := cfg.Site.Finalize(nil); err != nil {
		t.Fatalf("site finalize: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		t.Fatalf("NewModules() error = %v", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)
	return wrapRouter(router, infra, cfg)
}

func TestRouting(t *testing.T) {
	h := testHandler(t)

	tests := []struct {
		name   string
		path   string
		status int
		header string
		value  string
	}{
		{"health", "/healthz", http.StatusOK, "X-AI-Agent-Optimized", "true"},
		{"readiness before startup", "/readyz", http.StatusServiceUnavailable, "", ""},
		{"site page", "/about-us", http.StatusOK, "Content-Type", "text/html; charset=utf-8"},
		{"site 404", "/nowhere/at/all", http.StatusNotFound, "", ""},
		{"api route", "/api/listings/not-a-uuid", http.StatusBadRequest, "X-Robots-Tag", "noindex, nofollow"},
		{"robots", "/robots.txt", http.StatusOK, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.header != "" && rec.Header().Get(tt.header) != tt.value {
				t.Errorf("%s: got %q, want %q", tt.header, rec.Header().Get(tt.header), tt.value)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := testHandler(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/about-us", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bizz_http_request_duration_seconds") {
		t.Errorf("request histogram missing from metrics output")
	}
}
