package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind names a terminal failure of one invocation.
type Kind string

const (
	MethodNotAllowed    Kind = "method_not_allowed"
	ServerMisconfigured Kind = "server_misconfigured"
	MalformedInput      Kind = "malformed_input"
	MissingPrompt       Kind = "missing_prompt"
	PayloadTooLarge     Kind = "payload_too_large"
	UpstreamUnreachable Kind = "upstream_unreachable"
	UpstreamError       Kind = "upstream_error"
	EmptyGeneration     Kind = "empty_generation"
)

const (
	msgMethodNotAllowed    = "Method not allowed. Use POST."
	msgServerMisconfigured = "Gemini API key is not configured on the server."
	msgMalformedInput      = "Invalid request body (malformed JSON)."
	msgMissingPrompt       = `The "prompt" field is required and cannot be empty.`
	msgPayloadTooLarge     = "Request body is too large."
	msgUpstreamUnreachable = "Internal server error while processing the AI request."
	msgUpstreamError       = "Error communicating with the Gemini API (status: %d)."
	msgEmptyGeneration     = "The AI did not return valid text. Content may have been blocked or the response is empty."
)

// Error is what the relay reports for a failed invocation. Message is
// shown to the caller; Detail only when Status >= 500.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  any
	// Cause is logged, never returned.
	Cause error
}

func (e *Error) Error() string {
	if d := e.DetailString(); d != "" {
		return fmt.Sprintf("%s (%d): %s: %s", e.Kind, e.Status, e.Message, d)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// DetailString renders Detail for logs and 5xx bodies.
func (e *Error) DetailString() string {
	switch d := e.Detail.(type) {
	case nil:
		return ""
	case string:
		return d
	case error:
		return d.Error()
	case json.RawMessage:
		return string(d)
	case []byte:
		return string(d)
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprint(d)
		}
		return string(b)
	}
}

func errMethodNotAllowed() *Error {
	return &Error{Kind: MethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: msgMethodNotAllowed}
}

func errServerMisconfigured() *Error {
	return &Error{Kind: ServerMisconfigured, Status: http.StatusInternalServerError, Message: msgServerMisconfigured, Detail: "GEMINI_API_KEY missing"}
}

func errMalformedInput(cause error) *Error {
	return &Error{Kind: MalformedInput, Status: http.StatusBadRequest, Message: msgMalformedInput, Detail: cause, Cause: cause}
}

func errMissingPrompt() *Error {
	return &Error{Kind: MissingPrompt, Status: http.StatusBadRequest, Message: msgMissingPrompt}
}

func errPayloadTooLarge(cause error) *Error {
	return &Error{Kind: PayloadTooLarge, Status: http.StatusRequestEntityTooLarge, Message: msgPayloadTooLarge, Detail: cause, Cause: cause}
}

func errUpstreamUnreachable(cause error) *Error {
	return &Error{Kind: UpstreamUnreachable, Status: http.StatusInternalServerError, Message: msgUpstreamUnreachable, Detail: cause, Cause: cause}
}

func errUpstreamStatus(status int, payload json.RawMessage) *Error {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: UpstreamError, Status: status, Message: fmt.Sprintf(msgUpstreamError, status), Detail: payload}
}

func errEmptyGeneration(cause error, payload json.RawMessage) *Error {
	return &Error{Kind: EmptyGeneration, Status: http.StatusInternalServerError, Message: msgEmptyGeneration, Detail: payload, Cause: cause}
}
