package gemini

import (
	"context"
	"encoding/json"
)

// Generator issues a single generateContent call for prompt.
// A returned error means no usable upstream payload was obtained
// (transport failure, undecodable body). Any decoded exchange, whatever
// its status, is returned as a Response.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (*Response, error)
}

// Response is one decoded upstream exchange.
type Response struct {
	StatusCode int
	// Payload is the upstream body as received.
	Payload json.RawMessage
	Body    GenerateResponse
}

// OK reports a 2xx upstream status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode <= 299
}

// --- wire types (generateContent REST) ---

type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text,omitempty"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// NewTextRequest wraps prompt in a single user content with one text part.
func NewTextRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}
