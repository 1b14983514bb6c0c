package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"gemini-proxy/api/internal/app"
	"gemini-proxy/api/internal/relay"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <text>",
	Short: "Run one relay invocation locally and print the result",
	Long: `Send a single prompt through the relay, exactly as the HTTP function
would, and print the generated text. On failure the JSON error body is
printed and the command exits non-zero.

Example:
  GEMINI_API_KEY=... gemini-proxy prompt "Explain malaria transmission in one sentence"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := loadEnv()
		rl, err := app.NewRelay(cfg, log, nil)
		if err != nil {
			return err
		}

		body, _ := json.Marshal(map[string]string{"prompt": strings.Join(args, " ")})
		resp := rl.Handle(cmd.Context(), relay.Request{Method: http.MethodPost, Body: string(body)})

		if resp.StatusCode != http.StatusOK {
			fmt.Fprintln(cmd.ErrOrStderr(), string(resp.Body))
			return fmt.Errorf("relay returned status %d", resp.StatusCode)
		}
		var out struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return errors.New("relay returned a non-JSON body")
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Text)
		return nil
	},
}
