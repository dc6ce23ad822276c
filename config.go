package routedoc

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides applied by Finalize.
const (
	EnvHost     = "ROUTEDOC_HOST"
	EnvBasePath = "ROUTEDOC_BASE_PATH"
	EnvVersion  = "ROUTEDOC_VERSION"
)

// DefaultDocPath is where the docs UI is served when DocPath is empty.
const DefaultDocPath = "/doc"

var validate = validator.New()

// Config describes the service being documented. It is copied into the
// Service by New and not changed afterwards.
type Config struct {
	// ServiceName and BasePath together form the route prefix and the
	// document's basePath.
	ServiceName string `toml:"service_name"`
	BasePath    string `toml:"base_path" validate:"omitempty,startswith=/"`
	DocPath     string `toml:"doc_path" validate:"omitempty,startswith=/"`

	// Host is documented as-is unless it names localhost, which requires
	// a port and is replaced with the public IP.
	Host    string   `toml:"host"`
	Schemes []string `toml:"schemes" validate:"dive,oneof=http https ws wss"`

	Title          string       `toml:"title"`
	Description    string       `toml:"description"`
	Version        string       `toml:"version"`
	TermsOfService string       `toml:"terms_of_service" validate:"omitempty,url"`
	Contact        *Contact     `toml:"contact"`
	License        *License     `toml:"license"`
	ExternalDoc    *ExternalDoc `toml:"external_doc"`
	Project        *Project     `toml:"project"`
}

// Contact is the API contact information.
type Contact struct {
	Name  string `toml:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Email string `toml:"email" json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	URL   string `toml:"url" json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
}

// License is the API license.
type License struct {
	Name string `toml:"name" json:"name" yaml:"name" validate:"required"`
	URL  string `toml:"url" json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
}

// ExternalDoc links the whole API to external documentation.
type ExternalDoc struct {
	Description string `toml:"description"`
	URL         string `toml:"url" validate:"required,url"`
}

// Project identifies the Go module whose version documents the API when
// no explicit version is configured.
type Project struct {
	Module string `toml:"module" validate:"required"`
}

// LoadConfig reads a TOML configuration file. The result is not finalized.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config %s: %w", ErrConfig, path, err)
	}
	return &cfg, nil
}

// Finalize applies defaults and environment overrides, then validates.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.Validate()
}

// Validate checks field formats. Host rules are checked when the
// document is assembled.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.DocPath == "" {
		c.DocPath = DefaultDocPath
	}
	if len(c.Schemes) == 0 {
		c.Schemes = []string{"http"}
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
}

// prefix is the route prefix shared by every endpoint.
func (c *Config) prefix() string {
	return composePath(c.ServiceName, c.BasePath)
}

// docRoute is where the docs UI and document routes are served.
func (c *Config) docRoute() string {
	docPath := c.DocPath
	if docPath == "" {
		docPath = DefaultDocPath
	}
	return composePath(c.ServiceName, docPath)
}
