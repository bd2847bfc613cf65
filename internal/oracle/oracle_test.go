package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIGenerate(t *testing.T) {
	var got struct {
		Model          string `json:"model"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" {\"pts\":27} "},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIOptions{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"}, nil)
	text, err := o.Generate(context.Background(), Prompt{System: "analyst", Text: "predict", JSON: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != `{"pts":27}` {
		t.Errorf("text = %q", text)
	}
	if got.Model != "gpt-4o-mini" || got.ResponseFormat.Type != "json_object" {
		t.Errorf("request model/format = %q/%q", got.Model, got.ResponseFormat.Type)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "predict" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIOptions{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"}, nil)
	if _, err := o.Generate(context.Background(), Prompt{Text: "p"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer srv.Close()

	o := NewOpenAI(OpenAIOptions{APIKey: "k", Model: "m", BaseURL: srv.URL + "/v1"}, nil)
	if _, err := o.Generate(context.Background(), Prompt{Text: "p"}); err == nil {
		t.Fatal("expected error")
	}
}
