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

// Package signing computes and checks JWS signatures over a signing input.
//
// The MethodEngine delegates to the golang-jwt signing methods for
// in-memory keys and to SignerMethod for opaque crypto.Signer keys such
// as HSM, TPM or KMS handles.
package signing

import "errors"

var (
	// ErrUnsupportedAlgorithm indicates the signing algorithm is not supported
	ErrUnsupportedAlgorithm = errors.New("signing: unsupported signing algorithm")

	// ErrInvalidKey indicates the key cannot be used with the algorithm
	ErrInvalidKey = errors.New("signing: invalid key")

	// ErrInvalidSignature indicates no candidate key verified the signature
	ErrInvalidSignature = errors.New("signing: invalid signature")

	// ErrSigningFailed indicates the signing operation failed
	ErrSigningFailed = errors.New("signing: operation failed")
)
