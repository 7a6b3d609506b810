package venice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestChatMessageHelpers(t *testing.T) {
	if m := SystemMessage("be brief"); m.Role != ChatRoleSystem || m.Content != "be brief" {
		t.Errorf("SystemMessage = %+v", m)
	}
	if m := UserMessage("hi"); m.Role != ChatRoleUser {
		t.Errorf("UserMessage role = %q", m.Role)
	}
	if m := AssistantMessage("hello"); m.Role != ChatRoleAssistant {
		t.Errorf("AssistantMessage role = %q", m.Role)
	}
}

func TestCreateChatCompletion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("non-streaming call must send stream=false")
		}
		if req.Model != "llama-3.3-70b" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:    "cmpl-1",
			Model: req.Model,
			Choices: []ChatChoice{{
				Message:      AssistantMessage("Hello there."),
				FinishReason: "stop",
			}},
			Usage: &Usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14},
		})
	})

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "llama-3.3-70b",
		Messages: []ChatMessage{UserMessage("hi")},
		Stream:   true, // must be overridden
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion = %v", err)
	}
	if resp.FirstContent() != "Hello there." {
		t.Errorf("FirstContent = %q", resp.FirstContent())
	}
	if resp.Usage.TotalTokens != 14 {
		t.Errorf("TotalTokens = %d, want 14", resp.Usage.TotalTokens)
	}
}

func TestCreateChatCompletion_Validation(t *testing.T) {
	client, err := New("test-key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		req  ChatCompletionRequest
	}{
		{"missing model", ChatCompletionRequest{Messages: []ChatMessage{UserMessage("hi")}}},
		{"missing messages", ChatCompletionRequest{Model: "llama-3.3-70b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateChatCompletion(context.Background(), tt.req)
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("got %v, want *InvalidInputError", err)
			}
		})
	}
}

func TestCreateChatCompletionStream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if !req.Stream {
			t.Error("streaming call must send stream=true")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, content := range []string{"Hel", "lo", "!"} {
			fmt.Fprintf(w, "data: {\"id\":\"c1\",\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", content)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stream, err := client.CreateChatCompletionStream(context.Background(), ChatCompletionRequest{
		Model:    "llama-3.3-70b",
		Messages: []ChatMessage{UserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletionStream = %v", err)
	}
	defer stream.Close()

	var full string
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next = %v", err)
		}
		full += chunk.FirstContent()
	}
	if full != "Hello!" {
		t.Errorf("assembled content = %q, want %q", full, "Hello!")
	}
}

func TestCreateChatCompletionStream_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"unauthorized","message":"bad key"}}`))
	})

	_, err := client.CreateChatCompletionStream(context.Background(), ChatCompletionRequest{
		Model:    "llama-3.3-70b",
		Messages: []ChatMessage{UserMessage("hi")},
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Code != "unauthorized" {
		t.Errorf("Code = %q", apiErr.Code)
	}
}

func TestGetModelFeatureSuffixes(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/model_feature_suffix" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"object": "list",
			"data": [{
				"id": "web_search",
				"description": "Enables web search",
				"example": "llama-3.3-70b:web_search",
				"supported_models": ["llama-3.3-70b", "qwen-2.5-coder-32b"]
			}]
		}`))
	})

	resp, err := client.GetModelFeatureSuffixes(context.Background(), "llama-3.3-70b")
	if err != nil {
		t.Fatalf("GetModelFeatureSuffixes = %v", err)
	}
	if gotQuery != "model=llama-3.3-70b" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d suffixes, want 1", len(resp.Data))
	}
	suffix := resp.Data[0]
	if suffix.ID != "web_search" || suffix.Example != "llama-3.3-70b:web_search" {
		t.Errorf("suffix = %+v", suffix)
	}
	if len(suffix.SupportedModels) != 2 || suffix.SupportedModels[0] != "llama-3.3-70b" {
		t.Errorf("SupportedModels = %v", suffix.SupportedModels)
	}

	// No filter, no query.
	if _, err := client.GetModelFeatureSuffixes(context.Background(), ""); err != nil {
		t.Fatalf("GetModelFeatureSuffixes(\"\") = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("unfiltered query = %q, want empty", gotQuery)
	}
}
