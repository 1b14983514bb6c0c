package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gemini-proxy/api/internal/backend"
)

var webconfigFile string

var webconfigCmd = &cobra.Command{
	Use:   "webconfig",
	Short: "Validate the backend web config and print it as browser JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := webconfigFile
		if path == "" {
			cfg, _ := loadEnv()
			path = cfg.BackendConfigPath
		}
		if path == "" {
			return errors.New("no web config: pass --file or set BACKEND_CONFIG")
		}

		wc, err := backend.LoadWebConfig(path)
		if err != nil {
			return err
		}
		c, err := backend.NewClient(wc)
		if err != nil {
			return err
		}
		b, err := c.BrowserJSON()
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, b, "", "  "); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		fmt.Fprintf(cmd.ErrOrStderr(), "users collection: %s\n", c.UsersCollectionPath())
		return nil
	},
}

func init() {
	webconfigCmd.Flags().StringVarP(&webconfigFile, "file", "f", "", "web config YAML (default BACKEND_CONFIG)")
}
