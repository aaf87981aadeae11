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

package signing

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

// Engine signs and verifies the JWS signing input
// (base64url(header) "." base64url(payload)).
type Engine interface {
	// Sign returns the raw signature of input made with key.
	Sign(alg jwa.Algorithm, key *jose.JSONWebKey, input []byte) ([]byte, error)

	// Verify tries each key in order and returns the first one that
	// verifies signature over input.
	Verify(alg jwa.Algorithm, keys []*jose.JSONWebKey, input, signature []byte) (*jose.JSONWebKey, error)
}

// MethodEngine is the Engine backed by golang-jwt signing methods.
type MethodEngine struct{}

// NewMethodEngine returns an engine for every algorithm in jwa.Known.
func NewMethodEngine() *MethodEngine {
	return &MethodEngine{}
}

// Method returns the signing method used to sign with key material.
func (e *MethodEngine) Method(alg jwa.Algorithm, material any) (jwt.SigningMethod, error) {
	switch material.(type) {
	case []byte, *rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey,
		*rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return lookup(alg)
	}
	return NewSignerMethod(alg)
}

// Sign implements Engine.
func (e *MethodEngine) Sign(alg jwa.Algorithm, key *jose.JSONWebKey, input []byte) ([]byte, error) {
	if key == nil || key.Key == nil {
		return nil, ErrInvalidKey
	}
	if !jwk.CanSign(key) {
		return nil, fmt.Errorf("%w: %T cannot sign", ErrInvalidKey, key.Key)
	}

	method, err := e.Method(alg, key.Key)
	if err != nil {
		return nil, err
	}

	sig, err := method.Sign(string(input), key.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig, nil
}

// Verify implements Engine. Private keys and signers are verified with
// their public half.
func (e *MethodEngine) Verify(alg jwa.Algorithm, keys []*jose.JSONWebKey, input, signature []byte) (*jose.JSONWebKey, error) {
	method, err := lookup(alg)
	if err != nil {
		return nil, err
	}

	signingString := string(input)
	for _, key := range keys {
		public, err := jwk.VerificationKey(key)
		if err != nil {
			continue
		}
		if err := method.Verify(signingString, signature, public.Key); err == nil {
			return key, nil
		}
	}
	return nil, ErrInvalidSignature
}

// lookup maps a registry algorithm to its golang-jwt method. Identifiers
// without a key family, "none" included, never resolve.
func lookup(alg jwa.Algorithm) (jwt.SigningMethod, error) {
	if alg.KeyType() == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg.ID)
	}
	method := jwt.GetSigningMethod(alg.ID)
	if method == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg.ID)
	}
	return method, nil
}
