// Package server exposes the game over HTTP: a chat-completion proxy that
// keeps the API key off the client, a JSON state API, and a websocket feed
// of state snapshots.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/narrative"
)

// Server holds the handler dependencies.
type Server struct {
	store *game.Store
	hub   *Hub

	// Upstream chat-completion backend; the key never leaves the server.
	apiKey   string
	baseURL  string
	model    string
	upstream *http.Client
}

func New(store *game.Store, hub *Hub, apiKey, baseURL, model string) *Server {
	if baseURL == "" {
		baseURL = narrative.DefaultChatBaseURL
	}
	if model == "" {
		model = narrative.DefaultChatModel
	}
	return &Server{
		store:    store,
		hub:      hub,
		apiKey:   apiKey,
		baseURL:  baseURL,
		model:    model,
		upstream: &http.Client{Timeout: 60 * time.Second},
	}
}

// Routes wires up the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/word", s.handleWord)
	mux.HandleFunc("/api/action", s.handleAction)
	if s.hub != nil {
		mux.HandleFunc("/ws", s.hub.ServeWS)
	}
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// handleGenerate is the chat-completion proxy. It forwards {system, prompt}
// to the upstream backend and relays the provider-native response, status
// code and body verbatim.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.apiKey == "" {
		log.Println("generate: API key not configured in environment")
		writeError(w, http.StatusInternalServerError, "API key not configured on server")
		return
	}

	var req struct {
		System string `json:"system"`
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body, err := json.Marshal(narrative.ChatRequest{
		Model: s.model,
		Messages: []narrative.ChatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	upstreamReq.Header.Set("Content-Type", "application/json")
	upstreamReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.upstream.Do(upstreamReq)
	if err != nil {
		log.Printf("generate: upstream: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("generate: relay body: %v", err)
	}
}

// handleState returns the full observable state tree.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleWord selects (or, with an empty word, clears) the selected word.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Word == "" {
		s.store.ClearSelectedWord()
	} else {
		s.store.SelectWord(req.Word)
	}
	s.broadcastState()
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleAction performs an action on the selected word and returns the
// resolved response plus the new state.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, ok := game.ParseAction(req.Action)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	result := s.store.PerformAction(action)
	s.broadcastState()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"state":  s.store.Snapshot(),
	})
}

func (s *Server) broadcastState() {
	if s.hub == nil {
		return
	}
	message, err := json.Marshal(Envelope{Type: "state_snapshot", Payload: s.store.Snapshot()})
	if err != nil {
		log.Printf("broadcast state: %v", err)
		return
	}
	s.hub.Broadcast(message)
}
