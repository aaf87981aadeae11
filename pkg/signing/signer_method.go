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
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

// SignerMethod implements jwt.SigningMethod for crypto.Signer keys.
// This enables JWT signing with hardware-backed keys (TPM, PKCS11, KMS)
// that only expose the crypto.Signer interface.
type SignerMethod struct {
	alg jwa.Algorithm
}

// NewSignerMethod creates a SigningMethod for crypto.Signer keys.
// HMAC algorithms need the secret itself and are rejected.
func NewSignerMethod(alg jwa.Algorithm) (*SignerMethod, error) {
	switch alg.Family {
	case jwa.FamilyRSA, jwa.FamilyRSAPSS, jwa.FamilyEC, jwa.FamilyEdDSA:
		return &SignerMethod{alg: alg}, nil
	default:
		return nil, fmt.Errorf("%w: %q with crypto.Signer", ErrUnsupportedAlgorithm, alg.ID)
	}
}

// Alg returns the JWT algorithm string (RS256, ES256, EdDSA, etc.)
func (sm *SignerMethod) Alg() string {
	return sm.alg.ID
}

// Sign signs the signing string using the provided crypto.Signer key.
// ECDSA signers return ASN.1 signatures, which are converted to the
// fixed-width R || S form JWS requires.
func (sm *SignerMethod) Sign(signingString string, key interface{}) ([]byte, error) {
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a crypto.Signer", ErrInvalidKey, key)
	}

	// Ed25519 signs raw message (unhashed)
	if sm.alg.Family == jwa.FamilyEdDSA {
		if _, ok := signer.Public().(ed25519.PublicKey); !ok {
			return nil, ErrInvalidKey
		}
		return signer.Sign(rand.Reader, []byte(signingString), crypto.Hash(0))
	}

	if !sm.alg.Hash.Available() {
		return nil, fmt.Errorf("%w: hash %v unavailable", ErrUnsupportedAlgorithm, sm.alg.Hash)
	}
	h := sm.alg.Hash.New()
	h.Write([]byte(signingString))
	digest := h.Sum(nil)

	switch pub := signer.Public().(type) {
	case *rsa.PublicKey:
		var opts crypto.SignerOpts = sm.alg.Hash
		switch sm.alg.Family {
		case jwa.FamilyRSAPSS:
			opts = &rsa.PSSOptions{
				Hash:       sm.alg.Hash,
				SaltLength: rsa.PSSSaltLengthEqualsHash,
			}
		case jwa.FamilyRSA:
		default:
			return nil, ErrInvalidKey
		}
		return signer.Sign(rand.Reader, digest, opts)

	case *ecdsa.PublicKey:
		if sm.alg.Family != jwa.FamilyEC || pub.Curve.Params().Name != sm.alg.Curve {
			return nil, ErrInvalidKey
		}
		der, err := signer.Sign(rand.Reader, digest, sm.alg.Hash)
		if err != nil {
			return nil, err
		}
		return rawECDSASignature(der, (pub.Curve.Params().BitSize+7)/8)

	default:
		return nil, fmt.Errorf("%w: unsupported public key type %T", ErrInvalidKey, pub)
	}
}

// Verify verifies the signature with the golang-jwt method for the
// algorithm, which expects a concrete public key.
func (sm *SignerMethod) Verify(signingString string, signature []byte, key interface{}) error {
	method := jwt.GetSigningMethod(sm.alg.ID)
	if method == nil {
		return ErrUnsupportedAlgorithm
	}
	if signer, ok := key.(crypto.Signer); ok {
		key = signer.Public()
	}
	return method.Verify(signingString, signature, key)
}

// rawECDSASignature converts an ASN.1 ECDSA-Sig-Value into R || S, each
// left-padded to size bytes.
func rawECDSASignature(der []byte, size int) ([]byte, error) {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, fmt.Errorf("%w: malformed ECDSA signature", ErrSigningFailed)
	}
	if r.Sign() <= 0 || s.Sign() <= 0 || r.BitLen() > size*8 || s.BitLen() > size*8 {
		return nil, fmt.Errorf("%w: ECDSA signature out of range", ErrSigningFailed)
	}

	out := make([]byte, 2*size)
	r.FillBytes(out[:size])
	s.FillBytes(out[size:])
	return out, nil
}
