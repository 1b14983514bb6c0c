// Package backend holds the web configuration of the backend-as-a-service
// project (Firebase) and hands it out through an explicitly built Client.
package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// WebConfig mirrors the browser SDK config object.
type WebConfig struct {
	APIKey            string `yaml:"apiKey" json:"apiKey"`
	AuthDomain        string `yaml:"authDomain" json:"authDomain,omitempty"`
	ProjectID         string `yaml:"projectId" json:"projectId"`
	StorageBucket     string `yaml:"storageBucket" json:"storageBucket,omitempty"`
	MessagingSenderID string `yaml:"messagingSenderId" json:"messagingSenderId,omitempty"`
	AppID             string `yaml:"appId" json:"appId"`
	MeasurementID     string `yaml:"measurementId" json:"measurementId,omitempty"`

	// DataNamespace is the app-level id used in document paths. It is not
	// part of the SDK config and never replaces AppID.
	DataNamespace string `yaml:"dataNamespace" json:"-"`
}

// platform-issued web app ids: 1:<senderId>:web:<hex>
var appIDPattern = regexp.MustCompile(`^\d+:(\d+):web:[0-9a-f]+$`)

var ErrInvalidConfig = errors.New("backend: invalid web config")

// LoadWebConfig reads a YAML web config from path.
func LoadWebConfig(path string) (WebConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return WebConfig{}, fmt.Errorf("backend: read %s: %w", path, err)
	}
	return ParseWebConfig(b)
}

func ParseWebConfig(b []byte) (WebConfig, error) {
	var cfg WebConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return WebConfig{}, fmt.Errorf("backend: parse web config: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and the shape of AppID.
func (c WebConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "apiKey")
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		missing = append(missing, "projectId")
	}
	if strings.TrimSpace(c.AppID) == "" {
		missing = append(missing, "appId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	m := appIDPattern.FindStringSubmatch(c.AppID)
	if m == nil {
		return fmt.Errorf("%w: appId %q is not a platform-issued web app id; put app-level ids in dataNamespace", ErrInvalidConfig, c.AppID)
	}
	if c.MessagingSenderID != "" && m[1] != c.MessagingSenderID {
		return fmt.Errorf("%w: appId sender %s does not match messagingSenderId %s", ErrInvalidConfig, m[1], c.MessagingSenderID)
	}
	return nil
}

// Client is the constructed handle other components receive.
type Client struct {
	cfg WebConfig
}

func NewClient(cfg WebConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DataNamespace == "" {
		cfg.DataNamespace = cfg.ProjectID
	}
	return &Client{cfg: cfg}, nil
}

func (c *Client) Config() WebConfig { return c.cfg }

// UsersCollectionPath is where per-user documents live.
func (c *Client) UsersCollectionPath() string {
	return "artifacts/" + c.cfg.DataNamespace + "/users"
}

// BrowserJSON is the object passed to the SDK's initializeApp.
func (c *Client) BrowserJSON() ([]byte, error) {
	return json.Marshal(c.cfg)
}
