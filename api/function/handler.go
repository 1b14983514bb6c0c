// Package handler is the serverless entry point. The hosting runtime
// calls Handler for every invocation.
package handler

import (
	"net/http"
	"sync"

	"gemini-proxy/api/internal/app"
	"gemini-proxy/api/internal/config"
	"gemini-proxy/api/internal/logx"
	"gemini-proxy/api/internal/relay"
)

var (
	once    sync.Once
	handler http.Handler
)

// setup runs once per cold start.
func setup() {
	cfg := config.Load()
	log := logx.New(cfg.LogLevel, cfg.LogFormat, nil)

	rl, err := app.NewRelay(cfg, log, nil)
	if err != nil {
		log.Error().Err(err).Msg("relay setup failed; serving configuration errors")
		rl = relay.New(relay.Options{Logger: log})
	}
	handler = rl
}

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	handler.ServeHTTP(w, r)
}
