package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client calls generateContent over plain REST.
type Client struct {
	BaseURL string
	Model   string
	httpc   *http.Client
}

// New returns a REST client. A nil httpc means http.DefaultClient, which
// carries no timeout of its own.
func New(baseURL, model string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Model:   strings.TrimSpace(model),
		httpc:   httpc,
	}
}

func (c *Client) Name() string { return "gemini-rest" }

// Endpoint is the generateContent URL for apiKey.
func (c *Client) Endpoint(apiKey string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, url.QueryEscape(apiKey))
}

func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (*Response, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	payload, err := json.Marshal(NewTextRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(apiKey), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", redact(err, apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}

	// The body is checked before the status is looked at: a non-JSON error
	// page is a broken exchange, not an upstream status.
	if !json.Valid(raw) {
		return nil, fmt.Errorf("gemini: decode response (status %d): body is not valid JSON", resp.StatusCode)
	}
	out := &Response{StatusCode: resp.StatusCode, Payload: json.RawMessage(raw)}
	// Any JSON is a usable payload. One that does not fit the
	// generateContent shape leaves Body empty, so Extract fails on it.
	if err := json.Unmarshal(raw, &out.Body); err != nil {
		out.Body = GenerateResponse{}
	}
	return out, nil
}

// redact strips the key from transport errors, which embed the request URL.
func redact(err error, apiKey string) error {
	msg := err.Error()
	out := strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	out = strings.ReplaceAll(out, apiKey, "REDACTED")
	if out == msg {
		return err
	}
	return errors.New(out)
}
