package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casefolio/backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestConfigured(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want bool
	}{
		{"no key", "", false},
		{"placeholder key", "sk-test-key", false},
		{"real key", "sk-live-abc", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.key)
			c := NewClient(testLogger(t))
			if got := c.Configured(); got != tc.want {
				t.Errorf("Configured() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGenerateText(t *testing.T) {
	var gotReq struct {
		Model       string `json:"model"`
		Temperature float64
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-live-abc" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "# Draft"}},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "sk-live-abc")
	t.Setenv("OPENAI_BASE_URL", srv.URL)
	c := NewClient(testLogger(t))

	got, err := c.GenerateText(context.Background(), "be an editor", "write a case study")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "# Draft" {
		t.Errorf("content = %q", got)
	}

	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.4 {
		t.Errorf("temperature = %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "sk-live-abc")
	t.Setenv("OPENAI_BASE_URL", srv.URL)
	c := NewClient(testLogger(t))

	_, err := c.GenerateText(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if genErr.HTTPStatusCode() != http.StatusTooManyRequests {
		t.Errorf("status = %d", genErr.StatusCode)
	}
	if genErr.Body == "" {
		t.Error("body should carry the upstream payload")
	}
}

func TestGenerateTextUnconfigured(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient(testLogger(t))
	if _, err := c.GenerateText(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error when no key is configured")
	}
}
