package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gemini-proxy/api/internal/gemini"
)

// Request is the inbound event as a serverless platform hands it over.
type Request struct {
	Method          string
	Body            string
	IsBase64Encoded bool
	// ReadErr is set when the transport could not deliver the whole body.
	// It is reported only after the method and the key are checked.
	ReadErr error
}

// ErrBodyTooLarge marks a body cut off at the read limit.
var ErrBodyTooLarge = errors.New("request body too large")

// Response is the outbound event. Body is JSON.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Headers returns the cross-origin headers carried by every response.
func Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Content-Type":                 "application/json",
	}
}

type Options struct {
	// APIKey is the upstream secret; empty means not configured.
	APIKey    string
	Generator gemini.Generator
	Logger    zerolog.Logger
	// Metrics may be nil.
	Metrics *Metrics
}

// Relay forwards one prompt per invocation to the generator.
// It holds no per-request state and is safe for concurrent use.
type Relay struct {
	apiKey  string
	gen     gemini.Generator
	log     zerolog.Logger
	metrics *Metrics
}

func New(opts Options) *Relay {
	log := opts.Logger
	if n, ok := opts.Generator.(interface{ Name() string }); ok {
		log = log.With().Str("transport", n.Name()).Logger()
	}
	return &Relay{
		apiKey:  strings.TrimSpace(opts.APIKey),
		gen:     opts.Generator,
		log:     log,
		metrics: opts.Metrics,
	}
}

type ackBody struct {
	Message string `json:"message"`
}

type textBody struct {
	Text string `json:"text"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handle runs one invocation. It never returns a Go error: every failure
// becomes an error response.
func (rl *Relay) Handle(ctx context.Context, req Request) Response {
	if req.Method == http.MethodOptions {
		rl.metrics.request("preflight")
		return newResponse(http.StatusOK, ackBody{Message: "CORS OK"})
	}

	log := rl.log.With().Str("request_id", uuid.NewString()).Logger()

	text, rerr := rl.generate(ctx, req)
	if rerr != nil {
		return rl.fail(log, rerr)
	}

	rl.metrics.request("ok")
	log.Debug().Int("status", http.StatusOK).Int("text_len", len(text)).Msg("generation relayed")
	return newResponse(http.StatusOK, textBody{Text: text})
}

func (rl *Relay) generate(ctx context.Context, req Request) (string, *Error) {
	if req.Method != http.MethodPost {
		return "", errMethodNotAllowed()
	}
	if rl.apiKey == "" || rl.gen == nil {
		return "", errServerMisconfigured()
	}

	prompt, rerr := promptFrom(req)
	if rerr != nil {
		return "", rerr
	}

	// The caller going away does not abort the upstream call.
	start := time.Now()
	resp, err := rl.gen.Generate(context.WithoutCancel(ctx), rl.apiKey, prompt)
	rl.metrics.upstream(time.Since(start))
	if err != nil {
		return "", errUpstreamUnreachable(err)
	}
	if !resp.OK() {
		return "", errUpstreamStatus(resp.StatusCode, resp.Payload)
	}

	text, err := gemini.Extract(&resp.Body)
	if err != nil {
		return "", errEmptyGeneration(err, resp.Payload)
	}
	return text, nil
}

// promptFrom decodes the body and returns the trimmed prompt.
func promptFrom(req Request) (string, *Error) {
	if errors.Is(req.ReadErr, ErrBodyTooLarge) {
		return "", errPayloadTooLarge(req.ReadErr)
	}
	if req.ReadErr != nil {
		return "", errMalformedInput(req.ReadErr)
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return "", errMalformedInput(fmt.Errorf("decode base64 body: %w", err))
		}
		body = b
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", errMalformedInput(err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return "", errMissingPrompt()
	}
	raw, ok := obj["prompt"]
	if !ok || raw == nil {
		return "", errMissingPrompt()
	}
	s, ok := raw.(string)
	if !ok {
		return "", errMalformedInput(fmt.Errorf("prompt must be a string, got %T", raw))
	}
	if s = strings.TrimSpace(s); s == "" {
		return "", errMissingPrompt()
	}
	return s, nil
}

func (rl *Relay) fail(log zerolog.Logger, e *Error) Response {
	rl.metrics.request(string(e.Kind))

	ev := log.Warn()
	if e.Status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev = ev.Str("kind", string(e.Kind)).Int("status", e.Status)
	if d := e.DetailString(); d != "" {
		ev = ev.Str("details", d)
	}
	if _, detailIsErr := e.Detail.(error); e.Cause != nil && !detailIsErr {
		ev = ev.AnErr("cause", e.Cause)
	}
	ev.Msg(e.Message)

	body := errorBody{Error: e.Message}
	if e.Status >= http.StatusInternalServerError {
		body.Details = e.DetailString()
	}
	return newResponse(e.Status, body)
}

func newResponse(status int, body any) Response {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
	return Response{
		StatusCode: status,
		Headers:    Headers(),
		Body:       bytes.TrimRight(buf.Bytes(), "\n"),
	}
}
