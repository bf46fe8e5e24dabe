package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz_ai_backend/internal/config"
	"quiz_ai_backend/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	// 测试环境下不走文件日志
	logger.Log = zap.NewNop()
}

func newTestAIService(t *testing.T, handler http.HandlerFunc) (*AIService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewAIService(config.GeminiConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		MaxRetries: 1,
	})
	return svc, server
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPath string
	svc, _ := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello from model"}]}}]}`))
	})

	text, err := svc.Generate("questions", "say hello")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "hello from model" {
		t.Errorf("got text %q, want %q", text, "hello from model")
	}
	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("got path %q, want %q", gotPath, "/models/test-model:generateContent")
	}
}

func TestGenerateSendsPromptBody(t *testing.T) {
	var gotBody []byte
	svc, _ := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	if _, err := svc.Generate("questions", "the prompt text"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	want := `{"contents":[{"parts":[{"text":"the prompt text"}]}]}`
	if string(gotBody) != want {
		t.Errorf("got request body %s, want %s", gotBody, want)
	}
}

func TestGenerateFailsOnClientError(t *testing.T) {
	calls := 0
	svc, _ := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"code":400,"message":"bad request"}}`, http.StatusBadRequest)
	})

	if _, err := svc.Generate("questions", "prompt"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	// 客户端错误不应重试
	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestGenerateFailsOnEmptyCandidates(t *testing.T) {
	svc, _ := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := svc.Generate("questions", "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGenerateRetriesServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"recovered"}]}}]}`))
	}))
	defer server.Close()

	svc := NewAIService(config.GeminiConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		MaxRetries: 2,
	})

	text, err := svc.Generate("questions", "prompt")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "recovered" {
		t.Errorf("got text %q, want %q", text, "recovered")
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
}
