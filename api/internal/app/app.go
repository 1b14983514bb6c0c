package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"gemini-proxy/api/internal/backend"
	"gemini-proxy/api/internal/config"
	"gemini-proxy/api/internal/gemini"
	"gemini-proxy/api/internal/relay"
)

// Generator picks the upstream transport named in cfg.
func Generator(cfg *config.Config) (gemini.Generator, error) {
	switch cfg.GeminiTransport {
	case "", config.TransportREST:
		return gemini.New(cfg.GeminiBaseURL, cfg.GeminiModel, nil), nil
	case config.TransportSDK:
		return gemini.NewSDK(cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unknown GEMINI_TRANSPORT %q; use %q or %q", cfg.GeminiTransport, config.TransportREST, config.TransportSDK)
	}
}

// NewRelay wires the relay from cfg. reg may be nil.
func NewRelay(cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*relay.Relay, error) {
	gen, err := Generator(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; every prompt will fail with a configuration error")
	}
	return relay.New(relay.Options{
		APIKey:    cfg.GeminiAPIKey,
		Generator: gen,
		Logger:    log,
		Metrics:   relay.NewMetrics(reg),
	}), nil
}

// Backend loads the backend web config when a path is configured.
// It returns nil, nil when none is.
func Backend(cfg *config.Config) (*backend.Client, error) {
	if cfg.BackendConfigPath == "" {
		return nil, nil
	}
	wc, err := backend.LoadWebConfig(cfg.BackendConfigPath)
	if err != nil {
		return nil, err
	}
	return backend.NewClient(wc)
}
