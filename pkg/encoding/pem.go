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

package encoding

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// PEM block types
const (
	PEMTypeRSAPrivateKey       = "RSA PRIVATE KEY"
	PEMTypeECPrivateKey        = "EC PRIVATE KEY"
	PEMTypePrivateKey          = "PRIVATE KEY"
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	PEMTypePublicKey           = "PUBLIC KEY"
	PEMTypeRSAPublicKey        = "RSA PUBLIC KEY"
	PEMTypeCertificate         = "CERTIFICATE"
)

// EncodePrivateKeyPEM encodes a private key to a PKCS#8 PEM block.
// If a password is provided, the block is "ENCRYPTED PRIVATE KEY".
//
// Example:
//
//	pemData, err := encoding.EncodePrivateKeyPEM(privateKey, []byte("password"))
func EncodePrivateKeyPEM(privateKey crypto.PrivateKey, password []byte) ([]byte, error) {
	der, err := EncodePKCS8(privateKey, password)
	if err != nil {
		return nil, err
	}

	blockType := PEMTypePrivateKey
	if len(password) > 0 {
		blockType = PEMTypeEncryptedPrivateKey
	}
	return encodeBlock(blockType, der)
}

// EncodePublicKeyPEM encodes a public key to a PKIX "PUBLIC KEY" block.
func EncodePublicKeyPEM(publicKey crypto.PublicKey) ([]byte, error) {
	der, err := EncodePublicKeyPKIX(publicKey)
	if err != nil {
		return nil, err
	}
	return encodeBlock(PEMTypePublicKey, der)
}

// DecodeKeyPEM reads the first key-bearing block in data. Private keys
// are returned as their concrete type, public keys likewise, and a
// CERTIFICATE block yields the certificate's public key along with the
// parsed certificate.
//
// Blocks with other types (parameters, requests) are skipped.
func DecodeKeyPEM(data []byte, password []byte) (any, *x509.Certificate, error) {
	if len(data) == 0 {
		return nil, nil, ErrInvalidData
	}

	rest := data
	found := false
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		found = true

		switch block.Type {
		case PEMTypeRSAPrivateKey:
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
			}
			return key, nil, nil
		case PEMTypeECPrivateKey:
			key, err := x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
			}
			return key, nil, nil
		case PEMTypePrivateKey:
			key, err := DecodePKCS8(block.Bytes, nil)
			if err != nil {
				return nil, nil, err
			}
			return key, nil, nil
		case PEMTypeEncryptedPrivateKey:
			if len(password) == 0 {
				return nil, nil, ErrPasswordRequired
			}
			key, err := DecodePKCS8(block.Bytes, password)
			if err != nil {
				return nil, nil, err
			}
			return key, nil, nil
		case PEMTypePublicKey:
			key, err := DecodePublicKeyPKIX(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
			}
			return key, nil, nil
		case PEMTypeRSAPublicKey:
			key, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
			}
			return key, nil, nil
		case PEMTypeCertificate:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
			}
			return cert.PublicKey, cert, nil
		}
	}

	if !found {
		return nil, nil, ErrInvalidPEMEncoding
	}
	return nil, nil, ErrUnsupportedPEMType
}

// DecodePrivateKeyPEM decodes the first private key in data.
//
// Example:
//
//	key, err := encoding.DecodePrivateKeyPEM(pemData, []byte("password"))
//	rsaKey := key.(*rsa.PrivateKey)
func DecodePrivateKeyPEM(data []byte, password []byte) (crypto.PrivateKey, error) {
	key, _, err := DecodeKeyPEM(data, password)
	if err != nil {
		return nil, err
	}
	if !IsPrivateKey(key) {
		return nil, ErrInvalidPrivateKey
	}
	return key, nil
}

// DecodePublicKeyPEM decodes the first public key in data. Private keys
// are reduced to their public half.
func DecodePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	key, _, err := DecodeKeyPEM(data, nil)
	if err != nil {
		return nil, err
	}
	return PublicKey(key)
}

// IsPrivateKey reports whether key is a supported asymmetric private key.
func IsPrivateKey(key any) bool {
	switch key.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey:
		return true
	}
	return false
}

// PublicKey returns the public half of key. Public keys are returned as is.
func PublicKey(key any) (crypto.PublicKey, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return &k.PublicKey, nil
	case *ecdsa.PrivateKey:
		return &k.PublicKey, nil
	case ed25519.PrivateKey:
		return k.Public(), nil
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return k, nil
	case crypto.Signer:
		return k.Public(), nil
	}
	return nil, ErrInvalidPublicKey
}

func encodeBlock(blockType string, der []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := pem.Encode(&buf, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		return nil, fmt.Errorf("failed to encode PEM: %w", err)
	}
	return buf.Bytes(), nil
}
