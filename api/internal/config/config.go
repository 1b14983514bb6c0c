package config

import (
	"os"
	"strings"
)

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// GeminiAPIKey may be empty: a missing key is reported per request, not at startup.
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	GeminiTransport string

	BackendConfigPath string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiBaseURL:   strings.TrimRight(getEnv("GEMINI_BASE_URL", DefaultGeminiBaseURL), "/"),
		GeminiTransport: strings.ToLower(getEnv("GEMINI_TRANSPORT", TransportREST)),

		BackendConfigPath: getEnv("BACKEND_CONFIG", ""),
	}
}
