package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// SDK implements Generator on top of the genai client library.
// It talks to the library's default endpoint.
type SDK struct {
	Model string
}

func NewSDK(model string) *SDK {
	return &SDK{Model: strings.TrimSpace(model)}
}

func (s *SDK) Name() string { return "gemini-sdk" }

func (s *SDK) Generate(ctx context.Context, apiKey, prompt string) (*Response, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini sdk: new client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(s.Model)
	if m == nil {
		return nil, fmt.Errorf("gemini sdk: model is nil")
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fromSDKError(err)
	}
	return fromSDKResponse(resp), nil
}

// fromSDKError turns API-level failures into a non-2xx Response and leaves
// everything else as a transport error.
func fromSDKError(err error) (*Response, error) {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		body := GenerateResponse{PromptFeedback: fromSDKFeedback(blocked.PromptFeedback)}
		if blocked.Candidate != nil {
			body.Candidates = []Candidate{fromSDKCandidate(blocked.Candidate)}
		}
		return withPayload(http.StatusOK, body), nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return statusResponse(gerr.Code, gerr.Body, gerr.Message), nil
	}

	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) && coded.HTTPCode() > 0 {
		return statusResponse(coded.HTTPCode(), "", err.Error()), nil
	}
	return nil, fmt.Errorf("gemini sdk: %w", err)
}

func statusResponse(code int, body, message string) *Response {
	raw := json.RawMessage(body)
	if !json.Valid(raw) {
		raw, _ = json.Marshal(map[string]any{
			"error": map[string]any{"code": code, "message": message},
		})
	}
	return &Response{StatusCode: code, Payload: raw}
}

func fromSDKResponse(resp *genai.GenerateContentResponse) *Response {
	var body GenerateResponse
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		body.Candidates = append(body.Candidates, fromSDKCandidate(c))
	}
	body.PromptFeedback = fromSDKFeedback(resp.PromptFeedback)
	return withPayload(http.StatusOK, body)
}

func fromSDKCandidate(c *genai.Candidate) Candidate {
	out := Candidate{FinishReason: c.FinishReason.String()}
	if c.Content == nil {
		return out
	}
	content := &Content{Role: c.Content.Role, Parts: []Part{}}
	for _, p := range c.Content.Parts {
		// Non-text parts keep their slot so parts[0] means the same thing as over REST.
		t, _ := p.(genai.Text)
		content.Parts = append(content.Parts, Part{Text: string(t)})
	}
	out.Content = content
	return out
}

func fromSDKFeedback(pf *genai.PromptFeedback) *PromptFeedback {
	if pf == nil {
		return nil
	}
	return &PromptFeedback{BlockReason: pf.BlockReason.String()}
}

func withPayload(code int, body GenerateResponse) *Response {
	raw, _ := json.Marshal(body)
	return &Response{StatusCode: code, Payload: raw, Body: body}
}
