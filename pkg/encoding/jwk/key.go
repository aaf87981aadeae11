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

package jwk

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding"
)

var (
	// ErrUnsupportedKey is returned for key material of an unknown type
	ErrUnsupportedKey = errors.New("jwk: unsupported key material")

	// ErrEmptySecret is returned when an HMAC secret has no bytes
	ErrEmptySecret = errors.New("jwk: empty secret")

	// ErrNoMatchingKey is returned when no key satisfies the selection criteria
	ErrNoMatchingKey = errors.New("jwk: no matching key")

	// ErrInvalidSet is returned when a JWKS document cannot be parsed
	ErrInvalidSet = errors.New("jwk: invalid key set")
)

// Use represents the "use" parameter values
type Use string

const (
	UseSignature  Use = "sig"
	UseEncryption Use = "enc"
)

// KeyType represents the key type (kty) parameter values
type KeyType string

const (
	KeyTypeRSA KeyType = "RSA"
	KeyTypeEC  KeyType = "EC"
	KeyTypeOKP KeyType = "OKP" // Octet Key Pair (Ed25519)
	KeyTypeOct KeyType = "oct" // Symmetric key
)

// Curve represents EC and OKP curve names
type Curve string

const (
	CurveP256    Curve = "P-256"
	CurveP384    Curve = "P-384"
	CurveP521    Curve = "P-521"
	CurveEd25519 Curve = "Ed25519"
)

// Option sets key metadata.
type Option func(*jose.JSONWebKey)

// WithUse sets the "use" parameter.
func WithUse(use Use) Option {
	return func(k *jose.JSONWebKey) {
		k.Use = string(use)
	}
}

// WithAlgorithm restricts the key to one algorithm.
func WithAlgorithm(alg string) Option {
	return func(k *jose.JSONWebKey) {
		k.Algorithm = alg
	}
}

// WithKeyID sets the "kid" parameter.
func WithKeyID(kid string) Option {
	return func(k *jose.JSONWebKey) {
		k.KeyID = kid
	}
}

// NewKey wraps key material in a JSONWebKey.
//
// Supported material: *rsa.PrivateKey, *rsa.PublicKey, *ecdsa.PrivateKey,
// *ecdsa.PublicKey, ed25519.PrivateKey, ed25519.PublicKey, []byte (HMAC
// secret, copied) and any crypto.Signer whose public key is one of the
// above.
func NewKey(material any, opts ...Option) (*jose.JSONWebKey, error) {
	switch k := material.(type) {
	case nil:
		return nil, ErrUnsupportedKey
	case []byte:
		if len(k) == 0 {
			return nil, ErrEmptySecret
		}
		material = bytes.Clone(k)
	case *rsa.PrivateKey, *rsa.PublicKey, *ecdsa.PrivateKey, *ecdsa.PublicKey,
		ed25519.PrivateKey, ed25519.PublicKey:
	case crypto.Signer:
		if keyTypeOf(k) == "" {
			return nil, fmt.Errorf("%w: signer with %T public key", ErrUnsupportedKey, k.Public())
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, material)
	}

	key := &jose.JSONWebKey{Key: material}
	for _, opt := range opts {
		opt(key)
	}
	return key, nil
}

// FromSecret creates a symmetric key for the HMAC algorithms.
func FromSecret(secret []byte, opts ...Option) (*jose.JSONWebKey, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return NewKey(secret, opts...)
}

// KeyTypeOf returns the "kty" of the key material, or "" if unknown.
func KeyTypeOf(key *jose.JSONWebKey) KeyType {
	if key == nil {
		return ""
	}
	return keyTypeOf(key.Key)
}

func keyTypeOf(material any) KeyType {
	switch k := material.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey:
		return KeyTypeRSA
	case *ecdsa.PrivateKey, *ecdsa.PublicKey:
		return KeyTypeEC
	case ed25519.PrivateKey, ed25519.PublicKey:
		return KeyTypeOKP
	case []byte:
		return KeyTypeOct
	case crypto.Signer:
		pub := k.Public()
		if _, nested := pub.(crypto.Signer); nested {
			return ""
		}
		return keyTypeOf(pub)
	}
	return ""
}

// CurveOf returns the curve of EC and OKP keys, or "" for other types.
func CurveOf(key *jose.JSONWebKey) Curve {
	if key == nil {
		return ""
	}
	return curveOf(key.Key)
}

func curveOf(material any) Curve {
	switch k := material.(type) {
	case *ecdsa.PrivateKey:
		return Curve(k.Curve.Params().Name)
	case *ecdsa.PublicKey:
		return Curve(k.Curve.Params().Name)
	case ed25519.PrivateKey, ed25519.PublicKey:
		return CurveEd25519
	case []byte:
		return ""
	case crypto.Signer:
		pub := k.Public()
		if _, nested := pub.(crypto.Signer); nested {
			return ""
		}
		return curveOf(pub)
	}
	return ""
}

// CanSign reports whether the key can produce signatures: a private key,
// an opaque crypto.Signer or a non-empty secret.
func CanSign(key *jose.JSONWebKey) bool {
	if key == nil {
		return false
	}
	switch k := key.Key.(type) {
	case []byte:
		return len(k) > 0
	case crypto.Signer:
		return true
	}
	return false
}

// IsSymmetric reports whether the key holds an HMAC secret.
func IsSymmetric(key *jose.JSONWebKey) bool {
	return KeyTypeOf(key) == KeyTypeOct
}

// VerificationKey returns the key to verify with: the public half of a
// private key or signer, or the key itself for public keys and secrets.
// Metadata is preserved.
func VerificationKey(key *jose.JSONWebKey) (*jose.JSONWebKey, error) {
	if key == nil {
		return nil, ErrUnsupportedKey
	}
	switch key.Key.(type) {
	case []byte, *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return key, nil
	}

	pub, err := encoding.PublicKey(key.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key.Key)
	}
	public := *key
	public.Key = pub
	return &public, nil
}

// Thumbprint computes the RFC 7638 SHA-256 thumbprint, base64url encoded.
// Private keys and signers hash their public half.
func Thumbprint(key *jose.JSONWebKey) (string, error) {
	public, err := VerificationKey(key)
	if err != nil {
		return "", err
	}

	var sum []byte
	if secret, ok := public.Key.([]byte); ok {
		sum, err = octThumbprint(secret)
	} else {
		sum, err = public.Thumbprint(crypto.SHA256)
	}
	if err != nil {
		return "", fmt.Errorf("failed to compute thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// octThumbprint hashes the required members of a symmetric key, which
// are already in lexicographic order.
func octThumbprint(secret []byte) ([]byte, error) {
	members, err := json.Marshal(struct {
		K   string `json:"k"`
		Kty string `json:"kty"`
	}{
		K:   base64.RawURLEncoding.EncodeToString(secret),
		Kty: string(KeyTypeOct),
	})
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(members)
	return sum[:], nil
}
