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

// Package jwk holds the key material tokens are signed and verified with.
//
// Keys are go-jose JSONWebKey values, so a Set reads and writes standard
// JWKS documents. Each key carries its material (RSA, ECDSA, Ed25519,
// crypto.Signer or an HMAC secret) plus the optional "use", "alg" and
// "kid" metadata the Selector filters on.
//
// # Selecting keys
//
//	set := jwk.NewSet(signingKey, backupKey)
//	key, err := set.Select(jwk.Criteria{
//		Algorithm: alg,
//		KeyID:     "2025-01",
//		Signing:   true,
//	})
//
// Selection is deterministic: the first compatible key in insertion order
// wins.
package jwk
