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

// Package jwa defines the JSON Web Algorithms (RFC 7518) a token may be
// signed with and a Registry that narrows them to an allow-list.
//
// Algorithms are grouped into families that share a key type:
//   - RSA:     RS256, RS384, RS512 (RSASSA-PKCS1-v1_5)
//   - RSA-PSS: PS256, PS384, PS512
//   - HMAC:    HS256, HS384, HS512
//   - EC:      ES256, ES384, ES512 (ECDSA on P-256, P-384, P-521)
//   - EdDSA:   EdDSA (Ed25519)
//
// The "none" algorithm is never registered.
//
// A Registry is immutable. Narrow returns a new Registry and leaves the
// receiver untouched, so a Registry may be shared between goroutines.
package jwa
