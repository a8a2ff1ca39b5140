package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChrisBushman/tiger-claude/internal/constants"
)

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv(constants.EnvAPIKey, "")

	cfg := NewConfig()
	err := cfg.Validate()
	if !errors.Is(err, ErrAPIKeyNotFound) {
		t.Errorf("Validate() error = %v, want ErrAPIKeyNotFound", err)
	}
}

func TestValidate_Defaults(t *testing.T) {
	t.Setenv(constants.EnvAPIKey, "sk-ant-test")
	t.Setenv(constants.EnvCertFile, "")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	if cfg.APIKey != "sk-ant-test" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-ant-test")
	}
	if cfg.APIURL != constants.DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, constants.DefaultAPIURL)
	}
	if cfg.Model != constants.DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, constants.DefaultModel)
	}
	if cfg.MaxTokens != constants.DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, constants.DefaultMaxTokens)
	}
	if cfg.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, constants.DefaultRequestTimeout)
	}
}

func TestValidate_FlagsBeatEnv(t *testing.T) {
	t.Setenv(constants.EnvAPIKey, "sk-ant-test")

	cfg := NewConfig()
	cfg.Model = "claude-opus-4-20250514"
	cfg.MaxTokens = 1024
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.Model != "claude-opus-4-20250514" {
		t.Errorf("Model = %q, flag value should survive Validate", cfg.Model)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, flag value should survive Validate", cfg.MaxTokens)
	}
}

func TestValidate_CertFileFromEnv(t *testing.T) {
	t.Setenv(constants.EnvAPIKey, "sk-ant-test")
	t.Setenv(constants.EnvCertFile, "/opt/openssl/certs/cacert.pem")

	cfg := NewConfig()
	cfg.CertFile = "/from/config/file.pem"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.CertFile != "/opt/openssl/certs/cacert.pem" {
		t.Errorf("CertFile = %q, SSL_CERT_FILE should override", cfg.CertFile)
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `model: claude-haiku-4-20250514
max_tokens: 2000
cert_file: /usr/local/ssl/cert.pem
timeout_seconds: 30
defaults:
  render: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("loadConfigFromPath() unexpected error: %v", err)
	}
	if fc.Model != "claude-haiku-4-20250514" {
		t.Errorf("Model = %q", fc.Model)
	}
	if fc.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d", fc.MaxTokens)
	}
	if fc.CertFile != "/usr/local/ssl/cert.pem" {
		t.Errorf("CertFile = %q", fc.CertFile)
	}
	if fc.Defaults == nil || !fc.Defaults.Render {
		t.Error("Defaults.Render should be true")
	}
}

func TestLoadConfigFromPath_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFromPath(path); err == nil {
		t.Error("loadConfigFromPath() expected error for invalid YAML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Model = "from-flag"
	cfg.applyFileConfig(&FileConfig{
		Model:          "from-file",
		MaxTokens:      2000,
		TimeoutSeconds: 45,
	})

	if cfg.Model != "from-flag" {
		t.Errorf("Model = %q, flags must beat the config file", cfg.Model)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, file should fill unset fields", cfg.MaxTokens)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v, want 45s", cfg.RequestTimeout)
	}
}
