package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gemini-proxy/api/internal/config"
	"gemini-proxy/api/internal/logx"
)

var rootCmd = &cobra.Command{
	Use:   "gemini-proxy",
	Short: "Relay text prompts to the Gemini API",
	Long: `gemini-proxy forwards a text prompt to the Gemini generateContent API
and relays the generated text back as JSON.

Configuration comes from the environment:
  GEMINI_API_KEY     upstream key (required to generate)
  GEMINI_MODEL       model id (default gemini-2.5-flash)
  GEMINI_BASE_URL    upstream base URL
  GEMINI_TRANSPORT   rest or sdk (default rest)
  BACKEND_CONFIG     backend web-config YAML
  PORT, LOG_LEVEL, LOG_FORMAT`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, promptCmd, webconfigCmd)
}

// loadEnv reads the configuration and builds the logger.
func loadEnv() (*config.Config, zerolog.Logger) {
	cfg := config.Load()
	return cfg, logx.New(cfg.LogLevel, cfg.LogFormat, nil)
}
