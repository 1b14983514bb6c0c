package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

func TestFromSDKError_APIError(t *testing.T) {
	body := `{"error":{"code":403,"message":"API key not valid"}}`
	err := fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusForbidden, Message: "API key not valid", Body: body})

	resp, gotErr := fromSDKError(err)
	if gotErr != nil {
		t.Fatalf("unexpected error: %v", gotErr)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
	if string(resp.Payload) != body {
		t.Errorf("expected upstream body, got %s", resp.Payload)
	}
}

func TestFromSDKError_APIErrorWithoutJSONBody(t *testing.T) {
	resp, err := fromSDKError(&googleapi.Error{Code: http.StatusServiceUnavailable, Message: "overloaded"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.Error.Code != http.StatusServiceUnavailable || payload.Error.Message != "overloaded" {
		t.Errorf("unexpected payload %s", resp.Payload)
	}
}

func TestFromSDKError_Transport(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	resp, err := fromSDKError(cause)
	if resp != nil {
		t.Errorf("expected no response, got %+v", resp)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestFromSDKError_BlockedPrompt(t *testing.T) {
	resp, err := fromSDKError(&genai.BlockedError{PromptFeedback: &genai.PromptFeedback{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.OK() {
		t.Errorf("blocked prompt should look like a 200 exchange, got %d", resp.StatusCode)
	}
	if _, err := Extract(&resp.Body); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestFromSDKResponse(t *testing.T) {
	resp := fromSDKResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Role: "model", Parts: []genai.Part{genai.Text("hi there"), genai.Text("more")}}},
		},
	})
	if !resp.OK() {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	text, err := Extract(&resp.Body)
	if err != nil || text != "hi there" {
		t.Errorf("Extract = %q, %v", text, err)
	}
	if !json.Valid(resp.Payload) {
		t.Errorf("payload is not JSON: %s", resp.Payload)
	}
}

func TestFromSDKResponse_NonTextFirstPart(t *testing.T) {
	resp := fromSDKResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{&genai.Blob{MIMEType: "image/png"}, genai.Text("late")}}},
		},
	})
	if _, err := Extract(&resp.Body); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}
