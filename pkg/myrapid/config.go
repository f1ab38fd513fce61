// Package myrapid talks to the MyRapid (Rapid KL) geoservice API.
package myrapid

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/NERVsystems/rapidmcp/pkg/version"
)

const (
	// DefaultBaseURL is the MyRapid journey planner geoservice endpoint
	DefaultBaseURL = "https://jp.mapit.myrapid.com.my/endpoint/geoservice"

	// DefaultAgency identifies the transit operator in every request
	DefaultAgency = "rapidkl"

	// DefaultScope restricts geocoding to the operator's network
	DefaultScope = "rapidkl"

	// DefaultTimeout bounds the single outbound request of a tool call
	DefaultTimeout = 30 * time.Second
)

// Config is the process-wide, read-only configuration of the MyRapid
// client. Build it once at startup with Load or DefaultConfig and pass it
// by value.
type Config struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Agency    string        `yaml:"agency" validate:"required"`
	Scope     string        `yaml:"scope" validate:"required"`
	UserAgent string        `yaml:"user_agent" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Agency:    DefaultAgency,
		Scope:     DefaultScope,
		UserAgent: version.UserAgent(),
		Timeout:   DefaultTimeout,
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Headers returns the fixed header set sent with every request.
func (c Config) Headers() http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Connection", "keep-alive")
	h.Set("User-Agent", c.UserAgent)
	return h
}
