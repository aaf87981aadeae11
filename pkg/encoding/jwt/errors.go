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
	"errors"

	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

var (
	// ErrUnsupportedAlgorithm is matched by every *UnsupportedAlgorithmError
	ErrUnsupportedAlgorithm = jwa.ErrUnsupportedAlgorithm

	// ErrKeySelectionFailed is returned when no key satisfies the
	// use, algorithm and kid of an encoding request
	ErrKeySelectionFailed = errors.New("jwt: key selection failed")

	// ErrMalformedToken is returned when a token is not a well formed
	// compact serialization
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrInvalidSignature is returned when no candidate key verifies the token
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrInvalidPayload is returned when the payload cannot be serialized
	// or does not decode to a JSON object
	ErrInvalidPayload = errors.New("jwt: invalid payload")

	// ErrInvalidOperation is returned for invalid claim or header mutations
	ErrInvalidOperation = claims.ErrInvalidOperation

	// ErrSigningFailed is returned when the signature engine fails to sign
	ErrSigningFailed = errors.New("jwt: signing failed")
)

// UnsupportedAlgorithmError carries the identifier that is not registered.
type UnsupportedAlgorithmError = jwa.UnsupportedAlgorithmError

// errorKind returns the metrics label of err.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return "unsupported_algorithm"
	case errors.Is(err, ErrKeySelectionFailed):
		return "key_selection_failed"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, ErrSigningFailed):
		return "signing_failed"
	default:
		return "unknown"
	}
}
