package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatResponseBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestParseChatContent(t *testing.T) {
	got, err := ParseChatContent([]byte(chatResponseBody("A new scene.")))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if got != "A new scene." {
		t.Errorf("Expected %q, got %q", "A new scene.", got)
	}
}

func TestParseChatContentStripsFences(t *testing.T) {
	got, err := ParseChatContent([]byte(chatResponseBody("```\nA fenced scene.\n```")))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if got != "A fenced scene." {
		t.Errorf("Expected fences stripped, got %q", got)
	}
}

func TestParseChatContentErrors(t *testing.T) {
	cases := map[string]string{
		"backend error": `{"error":{"message":"rate limited"}}`,
		"no choices":    `{"choices":[]}`,
		"malformed":     `{"choices":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseChatContent([]byte(body)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestChatCompletionGenerate(t *testing.T) {
	var gotReq ChatRequest
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Write([]byte(chatResponseBody("The road goes ever on.")))
	}))
	defer ts.Close()

	client := NewChatCompletion(ts.URL, "test-key", "")
	got, err := client.Generate(context.Background(), "be a gm", "continue")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "The road goes ever on." {
		t.Errorf("Expected scene text, got %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != DefaultChatModel {
		t.Errorf("Expected default model, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 ||
		gotReq.Messages[0] != (ChatMessage{Role: "system", Content: "be a gm"}) ||
		gotReq.Messages[1] != (ChatMessage{Role: "user", Content: "continue"}) {
		t.Errorf("Unexpected messages: %+v", gotReq.Messages)
	}
}

func TestChatCompletionGenerateUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewChatCompletion(ts.URL, "test-key", "")
	if _, err := client.Generate(context.Background(), "sys", "prompt"); err == nil {
		t.Error("Expected an error on a non-200 status")
	} else if !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected the status in the error, got %v", err)
	}
}

func TestProxyClientGenerate(t *testing.T) {
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Write([]byte(chatResponseBody("Past the proxy.")))
	}))
	defer ts.Close()

	client := NewProxyClient(ts.URL)
	got, err := client.Generate(context.Background(), "be a gm", "continue")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "Past the proxy." {
		t.Errorf("Expected scene text, got %q", got)
	}
	if gotBody["system"] != "be a gm" || gotBody["prompt"] != "continue" {
		t.Errorf("Unexpected proxy body: %v", gotBody)
	}
}
