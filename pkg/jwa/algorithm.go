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

package jwa

import (
	"crypto"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedAlgorithm is matched by every UnsupportedAlgorithmError
var ErrUnsupportedAlgorithm = errors.New("jwa: unsupported algorithm")

// UnsupportedAlgorithmError names an algorithm that is not registered.
type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("jwa: algorithm %q is not supported", e.Algorithm)
}

// Is reports whether target is ErrUnsupportedAlgorithm
func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}

// Family groups algorithms that share a key type.
type Family string

const (
	FamilyRSA    Family = "RSA"
	FamilyRSAPSS Family = "RSA-PSS"
	FamilyHMAC   Family = "HMAC"
	FamilyEC     Family = "EC"
	FamilyEdDSA  Family = "EdDSA"
)

// String returns the string representation.
func (f Family) String() string {
	return string(f)
}

// Equals performs case-insensitive comparison.
func (f Family) Equals(s string) bool {
	return strings.EqualFold(string(f), s)
}

// KeyType returns the JWK "kty" value of keys usable with the family.
func (f Family) KeyType() string {
	switch f {
	case FamilyRSA, FamilyRSAPSS:
		return "RSA"
	case FamilyHMAC:
		return "oct"
	case FamilyEC:
		return "EC"
	case FamilyEdDSA:
		return "OKP"
	default:
		return ""
	}
}

// Algorithm identifiers
const (
	RS256 = "RS256" // RSASSA-PKCS1-v1_5 using SHA-256
	RS384 = "RS384" // RSASSA-PKCS1-v1_5 using SHA-384
	RS512 = "RS512" // RSASSA-PKCS1-v1_5 using SHA-512
	PS256 = "PS256" // RSASSA-PSS using SHA-256
	PS384 = "PS384" // RSASSA-PSS using SHA-384
	PS512 = "PS512" // RSASSA-PSS using SHA-512
	HS256 = "HS256" // HMAC using SHA-256
	HS384 = "HS384" // HMAC using SHA-384
	HS512 = "HS512" // HMAC using SHA-512
	ES256 = "ES256" // ECDSA using P-256 and SHA-256
	ES384 = "ES384" // ECDSA using P-384 and SHA-384
	ES512 = "ES512" // ECDSA using P-521 and SHA-512
	EdDSA = "EdDSA" // EdDSA using Ed25519
)

// Algorithm describes one signature algorithm.
type Algorithm struct {
	// ID is the "alg" header value
	ID string

	// Family is the key family of the algorithm
	Family Family

	// Hash is the digest used before signing; zero for EdDSA
	Hash crypto.Hash

	// Curve is the required curve name for EC algorithms
	Curve string
}

// String returns the algorithm identifier.
func (a Algorithm) String() string {
	return a.ID
}

// KeyType returns the JWK "kty" value of keys usable with the algorithm.
func (a Algorithm) KeyType() string {
	return a.Family.KeyType()
}

// IsSymmetric reports whether the algorithm uses a shared secret.
func (a Algorithm) IsSymmetric() bool {
	return a.Family == FamilyHMAC
}

// Known returns every algorithm this package can describe, in
// registration order.
func Known() []Algorithm {
	return []Algorithm{
		{ID: RS256, Family: FamilyRSA, Hash: crypto.SHA256},
		{ID: RS384, Family: FamilyRSA, Hash: crypto.SHA384},
		{ID: RS512, Family: FamilyRSA, Hash: crypto.SHA512},
		{ID: PS256, Family: FamilyRSAPSS, Hash: crypto.SHA256},
		{ID: PS384, Family: FamilyRSAPSS, Hash: crypto.SHA384},
		{ID: PS512, Family: FamilyRSAPSS, Hash: crypto.SHA512},
		{ID: HS256, Family: FamilyHMAC, Hash: crypto.SHA256},
		{ID: HS384, Family: FamilyHMAC, Hash: crypto.SHA384},
		{ID: HS512, Family: FamilyHMAC, Hash: crypto.SHA512},
		{ID: ES256, Family: FamilyEC, Hash: crypto.SHA256, Curve: "P-256"},
		{ID: ES384, Family: FamilyEC, Hash: crypto.SHA384, Curve: "P-384"},
		{ID: ES512, Family: FamilyEC, Hash: crypto.SHA512, Curve: "P-521"},
		{ID: EdDSA, Family: FamilyEdDSA},
	}
}
