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
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

// Criteria describes the key a caller is looking for.
type Criteria struct {
	// Algorithm the key must be compatible with
	Algorithm jwa.Algorithm

	// KeyID, when set, must equal the key's kid
	KeyID string

	// KeepUnidentified keeps keys without a kid when KeyID is set
	KeepUnidentified bool

	// Signing limits the match to keys that can sign
	Signing bool
}

// Compatible reports whether key may be used for signatures with alg:
// its use is "sig" or unset, its type matches the algorithm family, EC
// keys are on the algorithm's curve and a declared alg equals alg.ID.
func Compatible(key *jose.JSONWebKey, alg jwa.Algorithm) bool {
	if key == nil || alg.ID == "" {
		return false
	}
	if key.Use != "" && Use(key.Use) != UseSignature {
		return false
	}
	if KeyTypeOf(key) != KeyType(alg.KeyType()) {
		return false
	}
	if alg.Curve != "" && CurveOf(key) != Curve(alg.Curve) {
		return false
	}
	if key.Algorithm != "" && key.Algorithm != alg.ID {
		return false
	}
	return true
}

// Matches reports whether key satisfies c.
func (c Criteria) Matches(key *jose.JSONWebKey) bool {
	if !Compatible(key, c.Algorithm) {
		return false
	}
	if c.KeyID != "" && key.KeyID != c.KeyID {
		if !c.KeepUnidentified || key.KeyID != "" {
			return false
		}
	}
	if c.Signing && !CanSign(key) {
		return false
	}
	return true
}

// Filter returns every key matching c, in insertion order.
func (s *Set) Filter(c Criteria) []*jose.JSONWebKey {
	var out []*jose.JSONWebKey
	for _, k := range s.Keys() {
		if c.Matches(k) {
			out = append(out, k)
		}
	}
	return out
}

// Select returns the first key matching c.
func (s *Set) Select(c Criteria) (*jose.JSONWebKey, error) {
	for _, k := range s.Keys() {
		if c.Matches(k) {
			return k, nil
		}
	}
	if c.KeyID != "" {
		return nil, fmt.Errorf("%w: algorithm %s, kid %q", ErrNoMatchingKey, c.Algorithm.ID, c.KeyID)
	}
	return nil, fmt.Errorf("%w: algorithm %s", ErrNoMatchingKey, c.Algorithm.ID)
}
