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
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding"
)

// LoadPEM reads the first key in PEM data. Encrypted PKCS#8 blocks need
// password. A CERTIFICATE block yields its public key, and the certificate
// is attached to the key as its x5c chain.
func LoadPEM(data, password []byte, opts ...Option) (*jose.JSONWebKey, error) {
	material, cert, err := encoding.DecodeKeyPEM(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PEM key: %w", err)
	}

	key, err := NewKey(material, opts...)
	if err != nil {
		return nil, err
	}
	if cert != nil {
		key.Certificates = []*x509.Certificate{cert}
	}
	return key, nil
}

// LoadPublicPEM reads the first key in PEM data as a verification key.
// Private keys are reduced to their public half; an encrypted PKCS#8
// block is decrypted with password first.
func LoadPublicPEM(data, password []byte, opts ...Option) (*jose.JSONWebKey, error) {
	material, err := encoding.DecodePublicKeyPEM(data)
	if errors.Is(err, encoding.ErrPasswordRequired) && len(password) > 0 {
		var private any
		private, err = encoding.DecodePrivateKeyPEM(data, password)
		if err == nil {
			material, err = encoding.PublicKey(private)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode PEM key: %w", err)
	}
	return NewKey(material, opts...)
}

// MarshalPublicPEM encodes the public half of key as a PKIX "PUBLIC KEY"
// block. HMAC secrets have no public form.
func MarshalPublicPEM(key *jose.JSONWebKey) ([]byte, error) {
	if IsSymmetric(key) {
		return nil, fmt.Errorf("%w: oct keys have no public half", ErrUnsupportedKey)
	}
	public, err := VerificationKey(key)
	if err != nil {
		return nil, err
	}
	return encoding.EncodePublicKeyPEM(public.Key)
}

// MarshalPrivatePEM encodes a private key as a PKCS#8 block, encrypted
// when password is not empty.
func MarshalPrivatePEM(key *jose.JSONWebKey, password []byte) ([]byte, error) {
	if key == nil || !encoding.IsPrivateKey(key.Key) {
		return nil, fmt.Errorf("%w: not an exportable private key", ErrUnsupportedKey)
	}
	return encoding.EncodePrivateKeyPEM(key.Key, password)
}
