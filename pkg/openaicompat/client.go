package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newClient creates a new client implementation
func newClient(cfg Config) *client {
	return &client{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.BaseURL + CompletionsPath,
		headers:    cfg.Headers,
		httpClient: cfg.HTTPClient,
		onWarning:  cfg.OnWarning,
	}
}

// Endpoint returns the resolved completions URL
func (c *client) Endpoint() string {
	return c.endpoint
}

// StreamChat sends a streaming chat-completions request
func (c *client) StreamChat(ctx context.Context, req *ChatRequest, onStream func(string)) (string, error) {
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("openaicompat: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openaicompat: failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openaicompat: API call failed: %w", err)
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", &StatusError{StatusCode: resp.StatusCode}
		}
		return "", ErrNoResponseBody
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	dec := NewStreamDecoder(c.onWarning)
	return dec.Decode(resp.Body, onStream)
}
