// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Anthropic Messages API endpoint and protocol version
const (
	DefaultAPIURL  = "https://api.anthropic.com/v1/messages"
	DefaultAPIHost = "api.anthropic.com"
	APIVersion     = "2023-06-01"
)

// Model defaults
const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4000
)

// Timeout constants used across the application
const (
	// DefaultRequestTimeout is the per-attempt timeout for API requests
	DefaultRequestTimeout = 60 * time.Second
	// DefaultTotalTimeout bounds one command across all retry attempts
	DefaultTotalTimeout = 5 * time.Minute
	// DefaultHandshakeTimeout is the timeout for the check-ssl handshake
	DefaultHandshakeTimeout = 15 * time.Second
)

// Retry configuration
const (
	// MaxRetryAttempts is the number of attempts for transient failures
	MaxRetryAttempts = 3
	// InitialBackoff is the delay before the first retry, doubled each attempt
	InitialBackoff = 1 * time.Second
	// MaxBackoff caps the backoff delay, including Retry-After hints
	MaxBackoff = 30 * time.Second
)

// DefaultMaxFileBytes is the largest context file the loader accepts.
// Big enough for any reasonable source file, small enough to keep request
// payloads bounded on a slow link.
const DefaultMaxFileBytes = 256 * 1024

// Environment variable names
const (
	EnvAPIKey   = "ANTHROPIC_API_KEY"
	EnvCertFile = "SSL_CERT_FILE"
)
