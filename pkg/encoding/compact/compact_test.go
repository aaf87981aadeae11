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

package compact

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := SigningInput([]byte(`{"alg":"HS256","typ":"JWT"}`), []byte(`{"sub":"1"}`))
	raw := Serialize(input, []byte{0x01, 0x02, 0xff})

	tok, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, tok.Raw)
	assert.Equal(t, "HS256", tok.Header["alg"])
	assert.Equal(t, "JWT", tok.Header["typ"])
	assert.Equal(t, []byte(`{"sub":"1"}`), tok.Payload)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, tok.Signature)
	assert.Equal(t, []byte(input), tok.SigningInput())
}

func TestParse_Malformed(t *testing.T) {
	header := EncodeSegment([]byte(`{"alg":"HS256"}`))
	payload := EncodeSegment([]byte(`{}`))

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", header + "." + payload},
		{"four segments", header + "." + payload + ".sig.extra"},
		{"header not json", "MTIz." + payload + ".c2ln"},
		{"header not object", EncodeSegment([]byte(`["alg"]`)) + "." + payload + ".c2ln"},
		{"header not base64", "!!!." + payload + ".c2ln"},
		{"padded header", EncodeSegment([]byte(`{"a":1}`)) + "=." + payload + ".c2ln"},
		{"payload not base64", header + ".***.c2ln"},
		{"signature not base64", header + "." + payload + ".+/+/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_EmptySignature(t *testing.T) {
	raw := Serialize(SigningInput([]byte(`{"alg":"HS256"}`), []byte(`x`)), nil)

	tok, err := Parse(raw)
	require.NoError(t, err)
	assert.Empty(t, tok.Signature)
	assert.Equal(t, "", tok.RawSignature)
}

func TestSegments(t *testing.T) {
	assert.Equal(t, "MTIz", EncodeSegment([]byte("123")))

	b, err := DecodeSegment("MTIz")
	require.NoError(t, err)
	assert.Equal(t, []byte("123"), b)

	_, err = DecodeSegment("MTI=")
	assert.Error(t, err)

	// "MTJ" carries non-zero bits after the last full byte
	_, err = DecodeSegment("MTJ")
	assert.Error(t, err)
}

func TestSegments_MatchGolangJWT(t *testing.T) {
	// Tokens framed here must parse with golang-jwt and the reverse.
	header := []byte(`{"alg":"HS256","typ":"JWT"}`)
	payload := []byte(`{"sub":"1234567890","name":"John Doe"}`)
	raw := Serialize(SigningInput(header, payload), []byte("signature"))

	_, parts, err := jwt.NewParser(jwt.WithStrictDecoding()).ParseUnverified(raw, jwt.MapClaims{})
	require.NoError(t, err)
	require.Len(t, parts, 3)

	tok, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, parts[0], tok.RawHeader)
	assert.Equal(t, parts[1], tok.RawPayload)
	assert.Equal(t, parts[2], tok.RawSignature)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	tok, err = Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "HS256", tok.Header["alg"])
	assert.Equal(t, []byte(`{"sub":"x"}`), tok.Payload)
}
