package oracle_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/oracle"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type messagesRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func messagesServer(t *testing.T, texts []string, got *messagesRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		content := make([]map[string]string, 0, len(texts))
		for _, text := range texts {
			content = append(content, map[string]string{"type": "text", "text": text})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         got.Model,
			"content":       content,
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"usage":         map[string]int{"input_tokens": 12, "output_tokens": 8},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicComplete(t *testing.T) {
	var req messagesRequest
	srv := messagesServer(t, []string{`{"Kaggle": "Public dataset"}`}, &req)

	cfg := &config.OracleConfig{
		Provider:  config.ProviderAnthropic,
		Model:     "claude-test",
		BaseURL:   srv.URL,
		Token:     "test-key",
		MaxTokens: 512,
	}

	o, err := oracle.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := o.Complete(context.Background(), "label these values")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if out != `{"Kaggle": "Public dataset"}` {
		t.Errorf("response = %q", out)
	}
	if req.Model != "claude-test" {
		t.Errorf("model = %q, want claude-test", req.Model)
	}
	if req.MaxTokens != 512 {
		t.Errorf("max_tokens = %d, want 512", req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v, want one user message", req.Messages)
	}
	if text := req.Messages[0].Content[0].Text; text != "label these values" {
		t.Errorf("prompt = %q", text)
	}
}

func TestAnthropicEmptyResponse(t *testing.T) {
	var req messagesRequest
	srv := messagesServer(t, []string{"  "}, &req)

	cfg := &config.OracleConfig{
		Provider:  config.ProviderAnthropic,
		Model:     "claude-test",
		BaseURL:   srv.URL,
		Token:     "test-key",
		MaxTokens: 512,
		Timeout:   "5s",
	}

	o, err := oracle.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := o.Complete(context.Background(), "prompt"); !errors.Is(err, oracle.ErrEmptyResponse) {
		t.Errorf("Complete error = %v, want ErrEmptyResponse", err)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := oracle.New(&config.OracleConfig{Provider: "bard"}, discardLogger())
	if !errors.Is(err, oracle.ErrUnknownProvider) {
		t.Errorf("New error = %v, want ErrUnknownProvider", err)
	}
}
