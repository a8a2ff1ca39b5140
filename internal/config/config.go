// Package config loads application configuration from flags, environment
// variables, and an optional YAML config file, in that precedence order.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ChrisBushman/tiger-claude/internal/constants"
)

// Errors
var (
	// ErrAPIKeyNotFound is fatal at startup: nothing works without a credential.
	ErrAPIKeyNotFound = errors.New("API key not found. Set the ANTHROPIC_API_KEY environment variable (export ANTHROPIC_API_KEY=sk-ant-...)")
)

// Config holds the application configuration. The API key is read once at
// startup, held read-only for the process lifetime, and never logged.
type Config struct {
	// Credential
	APIKey string

	// API settings
	APIURL    string
	Model     string
	MaxTokens int

	// TLS trust: explicit bundle path, empty means the system pool.
	// SSL_CERT_FILE takes precedence over the config file value so the
	// transport client and check-ssl resolve trust identically.
	CertFile string

	// Limits
	MaxFileBytes   int64
	RequestTimeout time.Duration
	TotalTimeout   time.Duration

	// Retry policy for transient transport failures
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Flags
	Render  bool
	Verbose bool
}

// NewConfig creates a Config with zero values; call Validate to populate it.
func NewConfig() *Config {
	return &Config{}
}

// Validate loads the configuration. File values fill gaps left by flags,
// environment variables beat the file, and built-in defaults come last.
// Returns ErrAPIKeyNotFound when no credential is available.
func (c *Config) Validate() error {
	// Config file first (lowest priority). Load errors are silently
	// ignored - env vars and flags take precedence anyway.
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.applyFileConfig(fileConfig)
	}

	if certFile := os.Getenv(constants.EnvCertFile); certFile != "" {
		c.CertFile = certFile
	}

	if c.APIURL == "" {
		c.APIURL = constants.DefaultAPIURL
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = constants.DefaultMaxTokens
	}
	if c.MaxFileBytes <= 0 {
		c.MaxFileBytes = constants.DefaultMaxFileBytes
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}
	if c.TotalTimeout <= 0 {
		c.TotalTimeout = constants.DefaultTotalTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = constants.MaxRetryAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = constants.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = constants.MaxBackoff
	}

	// Credential last, so every other field is usable (check-ssl runs
	// without a key) even when this returns ErrAPIKeyNotFound.
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(constants.EnvAPIKey))
	}
	if c.APIKey == "" {
		return ErrAPIKeyNotFound
	}

	return nil
}

// applyFileConfig copies file values into unset fields.
func (c *Config) applyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}
	if c.MaxTokens <= 0 && fc.MaxTokens > 0 {
		c.MaxTokens = fc.MaxTokens
	}
	if c.CertFile == "" && fc.CertFile != "" {
		c.CertFile = fc.CertFile
	}
	if c.MaxFileBytes <= 0 && fc.MaxFileBytes > 0 {
		c.MaxFileBytes = fc.MaxFileBytes
	}
	if c.RequestTimeout <= 0 && fc.TimeoutSeconds > 0 {
		c.RequestTimeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	if fc.Defaults != nil {
		if fc.Defaults.Render {
			c.Render = true
		}
	}
}
