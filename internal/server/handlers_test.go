package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/models"
	"github.com/laicwew/LexiQuest/internal/narrative"
	"github.com/laicwew/LexiQuest/internal/storage"
)

func newTestServer(t *testing.T, apiKey, baseURL string) *Server {
	t.Helper()
	store, err := game.NewStore(storage.NewMemStore())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return New(store, nil, apiKey, baseURL, "")
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return payload["error"]
}

func TestGenerateRejectsNonPOST(t *testing.T) {
	srv := newTestServer(t, "secret", "")

	rec := doRequest(srv, http.MethodGet, "/api/generate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Method not allowed" {
		t.Errorf("Expected %q, got %q", "Method not allowed", msg)
	}
}

func TestGenerateOptionsPreflight(t *testing.T) {
	srv := newTestServer(t, "secret", "")

	rec := doRequest(srv, http.MethodOptions, "/api/generate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Expected permissive CORS origin, got %q", origin)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
		t.Errorf("Expected POST in allowed methods, got %q", methods)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	srv := newTestServer(t, "", "")

	rec := doRequest(srv, http.MethodPost, "/api/generate", `{"system":"s","prompt":"p"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "API key not configured on server" {
		t.Errorf("Expected %q, got %q", "API key not configured on server", msg)
	}
}

func TestGenerateForwardsUpstreamVerbatim(t *testing.T) {
	var gotReq narrative.ChatRequest
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode upstream request: %v", err)
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"custom":"payload"}`))
	}))
	defer upstream.Close()

	srv := newTestServer(t, "secret", upstream.URL)
	rec := doRequest(srv, http.MethodPost, "/api/generate", `{"system":"be a gm","prompt":"continue"}`)

	// Status and body are relayed untouched, including upstream errors.
	if rec.Code != http.StatusTeapot {
		t.Errorf("Expected upstream status relayed, got %d", rec.Code)
	}
	if rec.Body.String() != `{"custom":"payload"}` {
		t.Errorf("Expected upstream body relayed, got %q", rec.Body.String())
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth upstream, got %q", gotAuth)
	}
	if gotReq.Model != narrative.DefaultChatModel {
		t.Errorf("Expected default model, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 ||
		gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "be a gm" ||
		gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "continue" {
		t.Errorf("Unexpected upstream messages: %+v", gotReq.Messages)
	}
}

func TestStateEndpoint(t *testing.T) {
	srv := newTestServer(t, "secret", "")

	rec := doRequest(srv, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var state models.SaveState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Character.Name != "Adventurer" || state.Character.Level != 1 {
		t.Errorf("Unexpected character: %+v", state.Character)
	}
}

func TestWordAndActionEndpoints(t *testing.T) {
	srv := newTestServer(t, "secret", "")

	rec := doRequest(srv, http.MethodPost, "/api/word", `{"word":"apple"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from word select, got %d", rec.Code)
	}
	var state models.SaveState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Vocabulary.SelectedWord != "apple" {
		t.Errorf("Expected apple selected, got %q", state.Vocabulary.SelectedWord)
	}

	rec = doRequest(srv, http.MethodPost, "/api/action", `{"action":"imitate"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from action, got %d", rec.Code)
	}
	var result struct {
		Result string           `json:"result"`
		State  models.SaveState `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode action response: %v", err)
	}
	if result.Result == "" {
		t.Error("Expected a narrative response")
	}
	if result.State.Progress.ActionsTaken != 1 {
		t.Errorf("Expected 1 action taken, got %d", result.State.Progress.ActionsTaken)
	}
	if _, ok := result.State.Vocabulary.Learned["apple"]; !ok {
		t.Errorf("Expected apple learned, got %v", result.State.Vocabulary.Learned)
	}
}

func TestActionEndpointRejectsUnknownAction(t *testing.T) {
	srv := newTestServer(t, "secret", "")

	rec := doRequest(srv, http.MethodPost, "/api/action", `{"action":"dance"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "unknown action" {
		t.Errorf("Expected %q, got %q", "unknown action", msg)
	}
}
