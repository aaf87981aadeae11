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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, jwa.RS256, cfg.Encode.Algorithm)
	assert.Empty(t, cfg.Keys)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Success(t *testing.T) {
	path := writeFile(t, "config.yaml", []byte(`
keys:
  - path: /etc/jwtkit/signing.pem
    use: sig
    alg: ES256
    kid: primary
  - path: /etc/jwtkit/published.jwks
    derive_kid: true

algorithms: [ES256, RS256]

logging:
  level: debug
  format: json

encode:
  alg: ES256
  kid: primary
  headers:
    typ: JWT
`))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Keys, 2)
	assert.Equal(t, "/etc/jwtkit/signing.pem", cfg.Keys[0].Path)
	assert.Equal(t, "sig", cfg.Keys[0].Use)
	assert.Equal(t, "ES256", cfg.Keys[0].Algorithm)
	assert.Equal(t, "primary", cfg.Keys[0].KeyID)
	assert.True(t, cfg.Keys[1].DeriveKeyID)

	assert.Equal(t, []string{"ES256", "RS256"}, cfg.Algorithms)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "ES256", cfg.Encode.Algorithm)
	assert.Equal(t, "primary", cfg.Encode.KeyID)
	assert.Equal(t, map[string]string{"typ": "JWT"}, cfg.Encode.Headers)
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", []byte("algorithms: [RS256]\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, jwa.RS256, cfg.Encode.Algorithm)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", []byte("keys: [unclosed\n"))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown allowed algorithm", "algorithms: [none]\n", "unsupported algorithm"},
		{"bad log level", "logging: {level: loud}\n", "unknown level"},
		{"bad log format", "logging: {format: xml}\n", "invalid log format"},
		{"encode alg outside allow-list", "algorithms: [HS256]\n", "not allowed"},
		{"key without path", "keys: [{use: sig}]\n", "keys[0]: path cannot be empty"},
		{"key kid with control", "keys: [{path: k, kid: \"a\\tb\"}]\n", "control characters"},
		{"encode kid with control", "encode: {kid: \"a\\nb\"}\n", "encode: key ID"},
		{"empty header name", "encode: {headers: {\"\": x}}\n", "member name cannot be empty"},
		{"unknown key format", "keys: [{path: k, format: der}]\n", "unknown key format"},
		{"bad key use", "keys: [{path: k, use: both}]\n", "invalid key use"},
		{"bad key alg", "keys: [{path: k, alg: XS1}]\n", "unsupported key algorithm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Registry(t *testing.T) {
	cfg := Default()
	assert.Equal(t, jwa.Default().Algorithms(), cfg.Registry().Algorithms())

	cfg.Algorithms = []string{jwa.HS256, jwa.RS256}
	assert.Equal(t, []string{jwa.RS256, jwa.HS256}, cfg.Registry().Algorithms())
}

func generateEC(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestLoadKeys_PEM(t *testing.T) {
	priv := generateEC(t)
	data, err := encoding.EncodePrivateKeyPEM(priv, nil)
	require.NoError(t, err)
	path := writeFile(t, "signing.pem", data)

	set, err := LoadKeys([]KeyConfig{{Path: path, Use: "sig", Algorithm: jwa.ES256, KeyID: "primary"}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	key := set.Keys()[0]
	assert.Equal(t, "primary", key.KeyID)
	assert.Equal(t, "sig", key.Use)
	assert.Equal(t, jwa.ES256, key.Algorithm)
	assert.True(t, jwk.CanSign(key))
}

func TestLoadKeys_EncryptedPEM(t *testing.T) {
	priv := generateEC(t)
	data, err := encoding.EncodePrivateKeyPEM(priv, []byte("s3cret"))
	require.NoError(t, err)
	path := writeFile(t, "signing.pem", data)

	_, err = LoadKeys([]KeyConfig{{Path: path}})
	require.Error(t, err)
	assert.ErrorIs(t, err, encoding.ErrPasswordRequired)

	set, err := LoadKeys([]KeyConfig{{Path: path, Password: "s3cret"}})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	t.Setenv("JWTKIT_TEST_KEY_PASSWORD", "s3cret")
	set, err = LoadKeys([]KeyConfig{{Path: path, Password: "wrong", PasswordEnv: "JWTKIT_TEST_KEY_PASSWORD"}})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestLoadKeys_JWKS(t *testing.T) {
	a, err := jwk.NewKey(generateEC(t), jwk.WithKeyID("a"))
	require.NoError(t, err)
	b, err := jwk.NewKey(generateEC(t))
	require.NoError(t, err)

	data, err := jwk.NewSet(a, b).Public().MarshalJSON()
	require.NoError(t, err)
	path := writeFile(t, "published.jwks", data)

	set, err := LoadKeys([]KeyConfig{{Path: path, DeriveKeyID: true}})
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	keys := set.Keys()
	assert.Equal(t, "a", keys[0].KeyID)
	thumb, err := jwk.Thumbprint(b)
	require.NoError(t, err)
	assert.Equal(t, thumb, keys[1].KeyID)
	assert.False(t, jwk.CanSign(keys[0]))

	_, err = LoadKeys([]KeyConfig{{Path: path, KeyID: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single key")
}

func TestLoadKeys_PublicOnly(t *testing.T) {
	priv := generateEC(t)
	data, err := encoding.EncodePrivateKeyPEM(priv, []byte("s3cret"))
	require.NoError(t, err)
	path := writeFile(t, "signing.pem", data)

	set, err := LoadKeys([]KeyConfig{{Path: path, Password: "s3cret", PublicOnly: true, KeyID: "verify"}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	key := set.Keys()[0]
	assert.Equal(t, "verify", key.KeyID)
	assert.False(t, jwk.CanSign(key))
	assert.True(t, priv.PublicKey.Equal(key.Key))

	signing, err := jwk.NewKey(generateEC(t), jwk.WithKeyID("ec"))
	require.NoError(t, err)
	secret, err := jwk.FromSecret([]byte("secret"), jwk.WithKeyID("hmac"))
	require.NoError(t, err)
	data, err = jwk.NewSet(signing, secret).MarshalJSON()
	require.NoError(t, err)
	jwksPath := writeFile(t, "private.jwks", data)

	set, err = LoadKeys([]KeyConfig{{Path: jwksPath, PublicOnly: true}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "ec", set.Keys()[0].KeyID)
	assert.False(t, jwk.CanSign(set.Keys()[0]))

	err = KeyConfig{Path: path, Format: FormatSecret, PublicOnly: true}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public_only")
}

func TestLoadKeys_Secret(t *testing.T) {
	path := writeFile(t, "hmac.key", []byte("super-secret\n"))

	set, err := LoadKeys([]KeyConfig{{Path: path, Format: FormatSecret, KeyID: "hmac"}})
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	key := set.Keys()[0]
	assert.Equal(t, []byte("super-secret"), key.Key)
	assert.Equal(t, "hmac", key.KeyID)
}

func TestLoadKeys_Errors(t *testing.T) {
	_, err := LoadKeys([]KeyConfig{{Path: filepath.Join(t.TempDir(), "missing.pem")}})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.json", []byte("[1,2]"))
	_, err = LoadKeys([]KeyConfig{{Path: bad}})
	require.Error(t, err)
	assert.ErrorIs(t, err, jwk.ErrInvalidSet)

	empty := writeFile(t, "empty.key", []byte("\n"))
	_, err = LoadKeys([]KeyConfig{{Path: empty, Format: FormatSecret}})
	require.Error(t, err)
	assert.ErrorIs(t, err, jwk.ErrEmptySecret)
}
