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

package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
)

// opaqueSigner hides the concrete key type behind crypto.Signer.
type opaqueSigner struct {
	crypto.Signer
}

var (
	rsaOnce sync.Once
	rsaKeys [2]*rsa.PrivateKey
	rsaErr  error
)

// testRSAKeys returns two RSA keys shared by the package tests.
func testRSAKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	rsaOnce.Do(func() {
		for i := range rsaKeys {
			rsaKeys[i], rsaErr = rsa.GenerateKey(rand.Reader, 2048)
			if rsaErr != nil {
				return
			}
		}
	})
	require.NoError(t, rsaErr)
	return rsaKeys[0], rsaKeys[1]
}

func mustKey(t *testing.T, material any, opts ...jwk.Option) *jose.JSONWebKey {
	t.Helper()
	key, err := jwk.NewKey(material, opts...)
	require.NoError(t, err)
	return key
}

func mustClaims(t *testing.T, m map[string]any) *claims.Set {
	t.Helper()
	c, err := claims.FromMap(m)
	require.NoError(t, err)
	return c
}
