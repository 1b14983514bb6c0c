package main

import (
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"gemini-proxy/api/internal/app"
	"gemini-proxy/api/internal/httpserver"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the relay over HTTP",
	Long: `Start the HTTP server.

Routes:
  /.netlify/functions/gemini_proxy, /api/gemini  the relay
  /healthz                                       liveness
  /metrics                                       Prometheus metrics
  /backend-config.json                           backend web config (when BACKEND_CONFIG is set)

Examples:
  gemini-proxy serve                 # port from PORT or 8000
  gemini-proxy serve --port 3000
  gemini-proxy serve --host 0.0.0.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := loadEnv()
		if servePort != "" {
			cfg.Port = servePort
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		rl, err := app.NewRelay(cfg, log, reg)
		if err != nil {
			return err
		}
		bc, err := app.Backend(cfg)
		if err != nil {
			return err
		}
		if bc != nil {
			log.Info().Str("project", bc.Config().ProjectID).Str("users", bc.UsersCollectionPath()).Msg("backend web config loaded")
		}

		h := httpserver.New(httpserver.Options{
			Relay:    rl,
			Backend:  bc,
			Gatherer: reg,
			Logger:   log,
		})
		return httpserver.NewServer(net.JoinHostPort(serveHost, cfg.Port), h, log).Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default PORT or 8000)")
}
