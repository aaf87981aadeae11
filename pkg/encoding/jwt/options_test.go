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

package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

func TestNewEncodingOptions_Defaults(t *testing.T) {
	keys := jwk.NewSet()
	opts := NewEncodingOptions(keys)

	assert.Equal(t, jwa.RS256, opts.Algorithm())
	assert.Equal(t, "", opts.Kid())
	assert.Same(t, keys, opts.KeySet())
	assert.Equal(t, map[string]any{"alg": "RS256"}, opts.Headers())

	assert.NotNil(t, NewEncodingOptions(nil).KeySet())
}

func TestEncodingOptions_Setters(t *testing.T) {
	opts := NewEncodingOptions(jwk.NewSet()).
		SetAlgorithm(jwa.HS512).
		SetKid("k1").
		SetHeaders(map[string]any{"typ": "JWT", "alg": "none", "kid": "spoofed"}).
		SetHeader("cty", "example")

	assert.Equal(t, jwa.HS512, opts.Algorithm())
	assert.Equal(t, "k1", opts.Kid())
	assert.Equal(t, map[string]any{
		"typ": "JWT",
		"cty": "example",
		"alg": "HS512",
		"kid": "k1",
	}, opts.Headers())

	opts.SetKid("")
	_, hasKid := opts.Headers()["kid"]
	assert.True(t, hasKid, "an extra kid header survives when no kid is requested")
	assert.Equal(t, "spoofed", opts.Headers()["kid"])
}

func TestEncodingOptions_HeaderOrder(t *testing.T) {
	opts := NewEncodingOptions(jwk.NewSet()).
		SetHeader("typ", "JWT").
		SetKid("bar")

	header, err := opts.header().ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"typ":"JWT","alg":"RS256","kid":"bar"}`, string(header))
}

func TestEncodingOptions_ZeroValue(t *testing.T) {
	opts := &EncodingOptions{}
	assert.NotPanics(t, func() {
		opts.SetHeader("typ", "JWT")
	})
	require.NoError(t, opts.err)

	header, err := opts.SetAlgorithm(jwa.HS256).header().ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"typ":"JWT","alg":"HS256"}`, string(header))

	header, err = (&EncodingOptions{}).header().ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"alg":""}`, string(header))
}

func TestEncodingOptions_InvalidHeaderName(t *testing.T) {
	key := mustKey(t, []byte("secret"))
	opts := NewEncodingOptions(jwk.NewSet(key)).SetAlgorithm(jwa.HS256).SetHeader("", "x")

	_, err := NewEncoder().Encode(mustClaims(t, map[string]any{"a": 1}), opts)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	opts = NewEncodingOptions(jwk.NewSet(key)).SetHeaders(map[string]any{"": 1})
	_, err = NewEncoder().Encode(mustClaims(t, map[string]any{"a": 1}), opts)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestEncodingOptionsFromKey(t *testing.T) {
	key := mustKey(t, []byte("secret"), jwk.WithAlgorithm(jwa.HS384), jwk.WithKeyID("hs"))
	opts := EncodingOptionsFromKey(key)

	assert.Equal(t, jwa.HS384, opts.Algorithm())
	assert.Equal(t, "hs", opts.Kid())
	assert.Equal(t, 1, opts.KeySet().Len())

	bare := EncodingOptionsFromKey(mustKey(t, []byte("secret")))
	assert.Equal(t, DefaultAlgorithm, bare.Algorithm())
	assert.Equal(t, "", bare.Kid())
}

func TestEncodingOptions_SelectSignatureKey(t *testing.T) {
	priv, _ := testRSAKeys(t)
	foo := mustKey(t, priv, jwk.WithKeyID("foo"))
	bar := mustKey(t, priv, jwk.WithKeyID("bar"))
	opts := NewEncodingOptions(jwk.NewSet(foo, bar)).SetKid("bar")

	key, alg, err := opts.SelectSignatureKey(jwa.Default())
	require.NoError(t, err)
	assert.Same(t, bar, key)
	assert.Equal(t, jwa.RS256, alg.ID)

	_, _, err = opts.SetKid("baz").SelectSignatureKey(jwa.Default())
	assert.ErrorIs(t, err, ErrKeySelectionFailed)
	assert.ErrorIs(t, err, jwk.ErrNoMatchingKey)

	_, _, err = opts.SetAlgorithm("XX999").SelectSignatureKey(jwa.Default())
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestKeySet_Target(t *testing.T) {
	keys := jwk.NewSet()

	opts := KeySet{Keys: keys}.encodingOptions()
	assert.Equal(t, DefaultAlgorithm, opts.Algorithm())
	assert.Equal(t, "", opts.Kid())

	opts = KeySet{Keys: keys, Algorithm: jwa.ES256, KeyID: "ec"}.encodingOptions()
	assert.Equal(t, jwa.ES256, opts.Algorithm())
	assert.Equal(t, "ec", opts.Kid())
	assert.Same(t, keys, opts.KeySet())
}
