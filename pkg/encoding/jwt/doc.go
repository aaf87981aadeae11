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

// Package jwt encodes and decodes signed JSON Web Tokens in the JWS
// compact serialization.
//
// An Encoder resolves the requested algorithm against its registry,
// selects a signing key from the supplied key set, and signs the
// serialized claims. A Decoder parses the compact form, checks the
// declared algorithm against its registry, and verifies the signature
// with the first compatible key before exposing any claim.
//
// # Basic Usage
//
//	key, _ := jwk.NewKey(rsaPrivateKey, jwk.WithKeyID("2025-01"))
//	keys := jwk.NewSet(key)
//
//	claims := claims.New()
//	claims.Set("sub", "user123")
//
//	token, err := jwt.NewEncoder().Encode(claims,
//	    jwt.NewEncodingOptions(keys).SetAlgorithm(jwa.RS256).SetKid("2025-01"))
//
//	decoded, err := jwt.NewDecoder().SupportedAlgorithms(jwa.RS256).Decode(token, keys.Public())
//	sub := decoded.Claim("sub")
//
// # Restricting Algorithms
//
// SupportedAlgorithms narrows the registry of an Encoder or Decoder and
// returns a new value; the receiver keeps its registry. A Decoder only
// ever verifies with the algorithm named in the token header, and only
// when that algorithm is registered, so a token cannot switch an RSA
// verification key into an HMAC secret.
//
// # Unverified Inspection
//
// DecodeUnsafe parses a token without checking its signature, for
// reading the kid before the verification key is known. Its result must
// never be treated as authenticated.
//
// Time based claims (exp, nbf, iat) are not validated by this package.
package jwt
