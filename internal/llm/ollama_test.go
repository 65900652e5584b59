package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Streaming should be disabled")
		}
		if req.Model != "llama3.1" {
			t.Errorf("Unexpected model: %s", req.Model)
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.1",
			Response:        `{"claims": []}`,
			Done:            true,
			PromptEvalCount: 400,
			EvalCount:       80,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Extract(context.Background(), ExtractRequest{Prompt: "extract"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if resp.Text != `{"claims": []}` {
		t.Errorf("Unexpected response text: %s", resp.Text)
	}
	if resp.InputTokens != 400 || resp.OutputTokens != 80 {
		t.Errorf("Unexpected token usage: %d/%d", resp.InputTokens, resp.OutputTokens)
	}
}

func TestOllamaProvider_Extract_DocumentTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if !strings.Contains(req.Prompt, "SOURCE DOCUMENT TEXT") {
			t.Error("Prompt should include the extracted document text")
		}
		if !strings.Contains(req.Prompt, "Past performance is no guarantee") {
			t.Error("Prompt should carry the page text itself")
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "{}", Done: true})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Extract(context.Background(), ExtractRequest{
		Prompt:       "extract",
		Document:     []byte("%PDF-1.4"),
		DocumentText: "Past performance is no guarantee of future results.",
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
}

func TestOllamaProvider_Extract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Extract(context.Background(), ExtractRequest{Prompt: "extract"}); err == nil {
		t.Fatal("Expected error for API failure")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("Provider should report available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Provider should report unavailable after server shutdown")
	}
}
