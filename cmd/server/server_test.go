package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/survey/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Oracle:   config.OracleConfig{Provider: config.ProviderAnthropic, Model: "claude-sonnet-4-5"},
		Taxonomy: config.TaxonomyConfig{MaxCategories: 12, Concurrency: 2},
		Version:  "0.1.0",
	}
}

func TestReadyz(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.ContainerName = "survey"

	tests := []struct {
		name   string
		ready  bool
		status int
		want   healthStatus
	}{
		{
			name:   "not ready",
			ready:  false,
			status: http.StatusServiceUnavailable,
			want:   healthStatus{Status: "not ready", Oracle: "anthropic", Model: "claude-sonnet-4-5", Container: "survey"},
		},
		{
			name:   "ready",
			ready:  true,
			status: http.StatusOK,
			want:   healthStatus{Status: "ready", Oracle: "anthropic", Model: "claude-sonnet-4-5", Container: "survey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := buildRouter(newHealth(cfg, func() bool { return tt.ready }))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			var got healthStatus
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	router := buildRouter(newHealth(testConfig(), func() bool { return false }))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got healthStatus
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(healthStatus{Status: "ok"}, got); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestStartupAttrs(t *testing.T) {
	attrs := startupAttrs(testConfig())
	if len(attrs)%2 != 0 {
		t.Fatalf("attrs must be key/value pairs, got %d entries", len(attrs))
	}

	got := make(map[string]any, len(attrs)/2)
	for i := 0; i < len(attrs); i += 2 {
		got[attrs[i].(string)] = attrs[i+1]
	}

	want := map[string]any{
		"addr":            "127.0.0.1:8080",
		"version":         "0.1.0",
		"oracle_provider": "anthropic",
		"oracle_model":    "claude-sonnet-4-5",
		"max_categories":  12,
		"concurrency":     2,
		"container":       "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}
