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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
)

// LoadKeys reads every configured key file into one set, in
// configuration order.
func LoadKeys(keys []KeyConfig) (*jwk.Set, error) {
	set := jwk.NewSet()
	for _, kc := range keys {
		loaded, err := kc.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load key %s: %w", kc.Path, err)
		}
		set.Add(loaded...)
	}
	return set, nil
}

// Load reads the key file and applies the use, alg and kid overrides.
func (k KeyConfig) Load() ([]*jose.JSONWebKey, error) {
	data, err := os.ReadFile(k.Path)
	if err != nil {
		return nil, err
	}

	var keys []*jose.JSONWebKey
	switch k.format() {
	case FormatJWKS:
		set, err := jwk.ParseSet(data)
		if err != nil {
			return nil, err
		}
		keys = set.Keys()
		if k.PublicOnly {
			keys = set.Public().Keys()
		}
		if k.KeyID != "" && len(keys) != 1 {
			return nil, fmt.Errorf("kid override needs a single key, file has %d", len(keys))
		}
	case FormatSecret:
		key, err := jwk.FromSecret(bytes.TrimRight(data, "\r\n"))
		if err != nil {
			return nil, err
		}
		keys = []*jose.JSONWebKey{key}
	default:
		load := jwk.LoadPEM
		if k.PublicOnly {
			load = jwk.LoadPublicPEM
		}
		key, err := load(data, k.password())
		if err != nil {
			return nil, err
		}
		keys = []*jose.JSONWebKey{key}
	}

	for _, key := range keys {
		if err := k.apply(key); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func (k KeyConfig) format() string {
	if k.Format != "" {
		return k.Format
	}
	switch strings.ToLower(filepath.Ext(k.Path)) {
	case ".json", ".jwks":
		return FormatJWKS
	default:
		return FormatPEM
	}
}

func (k KeyConfig) password() []byte {
	if k.PasswordEnv != "" {
		if v := os.Getenv(k.PasswordEnv); v != "" {
			return []byte(v)
		}
	}
	if k.Password == "" {
		return nil
	}
	return []byte(k.Password)
}

func (k KeyConfig) apply(key *jose.JSONWebKey) error {
	if k.Use != "" {
		key.Use = k.Use
	}
	if k.Algorithm != "" {
		key.Algorithm = k.Algorithm
	}
	if k.KeyID != "" {
		key.KeyID = k.KeyID
	}
	if k.DeriveKeyID && key.KeyID == "" {
		kid, err := jwk.Thumbprint(key)
		if err != nil {
			return err
		}
		key.KeyID = kid
	}
	return nil
}
