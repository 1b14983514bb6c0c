package relay

import (
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 4 << 20 // 4 MiB

// ServeHTTP adapts a plain HTTP request to one invocation.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := Request{Method: r.Method}
	if r.Body != nil {
		defer r.Body.Close()
		// One byte past the limit tells a full body from a cut-off one.
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		switch {
		case err != nil:
			req.ReadErr = fmt.Errorf("read body: %w", err)
		case len(body) > maxBodyBytes:
			req.ReadErr = fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBodyBytes)
		default:
			req.Body = string(body)
		}
	}

	WriteResponse(w, rl.Handle(r.Context(), req))
}

// WriteResponse copies resp onto w.
func WriteResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
