package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for the OpenAI-compatible chat-completion backend.
const (
	DefaultChatBaseURL = "https://api.deepseek.com/v1/chat/completions"
	DefaultChatModel   = "deepseek-chat"
)

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the provider-native request body.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the subset of the provider-native response we read.
type ChatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ParseChatContent extracts the generated text from a chat-completion
// response body.
func ParseChatContent(body []byte) (string, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("chat backend: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat backend returned no choices")
	}
	return stripFences(resp.Choices[0].Message.Content), nil
}

// ChatCompletion generates scenes against an OpenAI-compatible
// chat-completion endpoint, holding the credential itself. Use this
// server-side only; browser-facing clients go through the proxy instead.
type ChatCompletion struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewChatCompletion(baseURL, apiKey, model string) *ChatCompletion {
	if baseURL == "" {
		baseURL = DefaultChatBaseURL
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatCompletion{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ChatCompletion) Generate(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(ChatRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend: status %d: %s", resp.StatusCode, data)
	}
	return ParseChatContent(data)
}

// ProxyClient generates scenes through the LexiQuest proxy endpoint, which
// holds the credential server-side. The proxy forwards the provider-native
// response verbatim.
type ProxyClient struct {
	URL        string
	HTTPClient *http.Client
}

func NewProxyClient(url string) *ProxyClient {
	return &ProxyClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *ProxyClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"system": system,
		"prompt": prompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("proxy: status %d: %s", resp.StatusCode, data)
	}
	return ParseChatContent(data)
}
