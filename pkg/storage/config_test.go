package storage_test

import (
	"net/http"
	"testing"

	"github.com/JaimeStill/survey/pkg/storage"
)

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults container", func(t *testing.T) {
		cfg := storage.Config{AccountURL: "https://acct.blob.core.windows.net"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if cfg.ContainerName != "survey" {
			t.Errorf("ContainerName = %q, want survey", cfg.ContainerName)
		}
	})

	t.Run("requires credentials source", func(t *testing.T) {
		cfg := storage.Config{}
		if err := cfg.Finalize(nil); err == nil {
			t.Fatal("Finalize succeeded without connection string or account url")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_CONN", "UseDevelopmentStorage=true")
		cfg := storage.Config{}
		if err := cfg.Finalize(&storage.Env{ConnectionString: "TEST_STORAGE_CONN"}); err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if cfg.ConnectionString != "UseDevelopmentStorage=true" {
			t.Errorf("ConnectionString = %q", cfg.ConnectionString)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrEmptyKey, http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := storage.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRunKey(t *testing.T) {
	if got := storage.RunKey("abc"); got != "runs/abc/corpus.json" {
		t.Errorf("RunKey = %q", got)
	}
}
