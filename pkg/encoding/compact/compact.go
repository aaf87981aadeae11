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

// Package compact implements the JWS compact serialization: three
// base64url segments (header, payload, signature) joined by dots.
// Segments are coded with golang-jwt's strict parser.
package compact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
)

// ErrMalformed is returned when a token does not have the compact shape or
// one of its segments cannot be decoded.
var ErrMalformed = errors.New("compact: malformed token")

const separator = "."

// parser decodes segments; it rejects padding and bits past the last
// full byte. It holds no state and is shared.
var parser = jwt.NewParser(jwt.WithStrictDecoding())

// Token is a parsed compact serialization. The raw segments are kept so the
// signing input can be rebuilt byte for byte.
type Token struct {
	Raw          string
	RawHeader    string
	RawPayload   string
	RawSignature string

	Header    map[string]any
	Payload   []byte
	Signature []byte
}

// SigningInput returns "<header>.<payload>" exactly as it appeared in Raw.
func (t *Token) SigningInput() []byte {
	return []byte(t.RawHeader + separator + t.RawPayload)
}

// Parse splits raw into its segments and decodes them. The header must be
// a JSON object; the payload is returned undecoded.
func Parse(raw string) (*Token, error) {
	parts := strings.Split(raw, separator)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}

	headerJSON, err := DecodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	header, err := claims.DecodeMap(headerJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}

	payload, err := DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrMalformed, err)
	}

	signature, err := DecodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrMalformed, err)
	}

	return &Token{
		Raw:          raw,
		RawHeader:    parts[0],
		RawPayload:   parts[1],
		RawSignature: parts[2],
		Header:       header,
		Payload:      payload,
		Signature:    signature,
	}, nil
}

// SigningInput encodes the header and payload JSON and joins them.
func SigningInput(headerJSON, payload []byte) string {
	return EncodeSegment(headerJSON) + separator + EncodeSegment(payload)
}

// Serialize appends the encoded signature to a signing input.
func Serialize(signingInput string, signature []byte) string {
	return signingInput + separator + EncodeSegment(signature)
}

// EncodeSegment encodes b as unpadded base64url.
func EncodeSegment(b []byte) string {
	return (&jwt.Token{}).EncodeSegment(b)
}

// DecodeSegment decodes unpadded base64url. Padding and characters outside
// the URL alphabet are rejected.
func DecodeSegment(s string) ([]byte, error) {
	return parser.DecodeSegment(s)
}
