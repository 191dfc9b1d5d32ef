package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
)

func streamChunk(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion.chunk",
		"model":   "test-model",
		"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": content}}},
	}
	data, _ := json.Marshal(payload)
	return fmt.Sprintf("data: %s\n\n", data)
}

func TestCompleter_StreamsFragments(t *testing.T) {
	var gotReq struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p"`
		Seed        *int    `json:"seed"`
		Stream      bool    `json:"stream"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, streamChunk("점밀도 기준은 "))
		io.WriteString(w, streamChunk("400pts 이상입니다."))
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	completer := NewCompleter(&CompleterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	stream, err := completer.Complete(context.Background(), "시스템 프롬프트", "사용자 질문")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	defer stream.Close()

	var collected string
	for {
		fragment, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			t.Fatalf("Recv: %v", recvErr)
		}
		collected += fragment
	}

	if collected != "점밀도 기준은 400pts 이상입니다." {
		t.Errorf("collected = %q", collected)
	}

	// Deterministic decoding settings must survive marshaling.
	if gotReq.Temperature <= 0 || gotReq.Temperature > 1e-6 {
		t.Errorf("temperature = %g, want effectively-zero positive value", gotReq.Temperature)
	}
	if gotReq.TopP != 0.1 {
		t.Errorf("top_p = %g, want 0.1", gotReq.TopP)
	}
	if gotReq.Seed == nil || *gotReq.Seed != defaultSeed {
		t.Errorf("seed = %v, want %d", gotReq.Seed, defaultSeed)
	}
	if !gotReq.Stream {
		t.Error("stream flag not set")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestCompleter_OpenFailureWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	completer := NewCompleter(&CompleterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	_, err := completer.Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionProvider) {
		t.Errorf("error does not wrap ErrCompletionProvider: %v", err)
	}
	// The upstream failure detail must survive the sentinel wrapping.
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error lost upstream detail: %v", err)
	}
}
