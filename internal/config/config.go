// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-jwtkit.
//
// go-jwtkit is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
	"github.com/jeremyhahn/go-jwtkit/pkg/validation"
)

// Key file formats
const (
	FormatPEM    = "pem"
	FormatJWKS   = "jwks"
	FormatSecret = "secret"
)

// Config represents the jwtkit configuration
type Config struct {
	Keys       []KeyConfig   `yaml:"keys"`
	Algorithms []string      `yaml:"algorithms"`
	Logging    LoggingConfig `yaml:"logging"`
	Encode     EncodeConfig  `yaml:"encode"`
}

// KeyConfig describes one key file.
type KeyConfig struct {
	Path string `yaml:"path"`

	// Format is pem, jwks or secret. Empty selects by file extension:
	// .json and .jwks are jwks, everything else is pem.
	Format string `yaml:"format"`

	// Password decrypts encrypted PKCS#8 PEM blocks. PasswordEnv names an
	// environment variable holding it and takes precedence.
	Password    string `yaml:"password"`
	PasswordEnv string `yaml:"password_env"`

	Use       string `yaml:"use"`
	Algorithm string `yaml:"alg"`
	KeyID     string `yaml:"kid"`

	// DeriveKeyID sets an RFC 7638 thumbprint as the kid of keys without one.
	DeriveKeyID bool `yaml:"derive_kid"`

	// PublicOnly drops private material on load so the key can only verify.
	// Secrets in a JWKS file are left out.
	PublicOnly bool `yaml:"public_only"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EncodeConfig holds defaults for the encode command
type EncodeConfig struct {
	Algorithm string            `yaml:"alg"`
	KeyID     string            `yaml:"kid"`
	Headers   map[string]string `yaml:"headers"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Encode: EncodeConfig{
			Algorithm: jwa.RS256,
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Registry returns the default registry narrowed to the configured
// allow-list. An empty allow-list keeps every algorithm.
func (c *Config) Registry() *jwa.Registry {
	if len(c.Algorithms) == 0 {
		return jwa.Default()
	}
	return jwa.Default().Narrow(c.Algorithms...)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	registry := jwa.Default()
	for _, id := range c.Algorithms {
		if !registry.Contains(id) {
			return fmt.Errorf("unsupported algorithm in allow-list: %q", id)
		}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	if c.Encode.Algorithm != "" && !c.Registry().Contains(c.Encode.Algorithm) {
		return fmt.Errorf("encode algorithm %q is not allowed", c.Encode.Algorithm)
	}
	if c.Encode.KeyID != "" {
		if err := validation.ValidateKeyID(c.Encode.KeyID); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	for name := range c.Encode.Headers {
		if err := validation.ValidateMemberName(name); err != nil {
			return fmt.Errorf("encode headers: %w", err)
		}
	}

	for i, k := range c.Keys {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("keys[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single key entry
func (k KeyConfig) Validate() error {
	if err := validation.ValidatePath(k.Path); err != nil {
		return err
	}
	if k.KeyID != "" {
		if err := validation.ValidateKeyID(k.KeyID); err != nil {
			return err
		}
	}
	switch k.Format {
	case "", FormatPEM, FormatJWKS, FormatSecret:
	default:
		return fmt.Errorf("unknown key format: %s (must be pem, jwks or secret)", k.Format)
	}
	if k.PublicOnly && k.Format == FormatSecret {
		return fmt.Errorf("public_only does not apply to secret keys: %s", k.Path)
	}
	switch jwk.Use(k.Use) {
	case "", jwk.UseSignature, jwk.UseEncryption:
	default:
		return fmt.Errorf("invalid key use: %s (must be sig or enc)", k.Use)
	}
	if k.Algorithm != "" && !jwa.Default().Contains(k.Algorithm) {
		return fmt.Errorf("unsupported key algorithm: %q", k.Algorithm)
	}
	return nil
}
