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
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Set is an ordered collection of keys. Order is significant: selection
// returns the first match.
//
// A Set is not safe for concurrent mutation; share it read-only.
type Set struct {
	keys []*jose.JSONWebKey
}

// NewSet creates a set from keys, skipping nil entries.
func NewSet(keys ...*jose.JSONWebKey) *Set {
	s := &Set{}
	s.Add(keys...)
	return s
}

// Add appends keys to the set.
func (s *Set) Add(keys ...*jose.JSONWebKey) {
	for _, k := range keys {
		if k != nil {
			s.keys = append(s.keys, k)
		}
	}
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []*jose.JSONWebKey {
	if s == nil {
		return nil
	}
	return append([]*jose.JSONWebKey(nil), s.keys...)
}

// Len returns the number of keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Key returns the keys whose kid equals kid.
func (s *Set) Key(kid string) []*jose.JSONWebKey {
	var out []*jose.JSONWebKey
	for _, k := range s.Keys() {
		if k.KeyID == kid {
			out = append(out, k)
		}
	}
	return out
}

// Public returns a set fit for publishing: private keys and signers are
// reduced to their public half and symmetric keys are left out.
func (s *Set) Public() *Set {
	out := &Set{}
	for _, k := range s.Keys() {
		if IsSymmetric(k) {
			continue
		}
		pub, err := VerificationKey(k)
		if err != nil {
			continue
		}
		out.keys = append(out.keys, pub)
	}
	return out
}

// MarshalJSON writes the set as a JWKS document.
func (s *Set) MarshalJSON() ([]byte, error) {
	doc := jose.JSONWebKeySet{Keys: make([]jose.JSONWebKey, 0, s.Len())}
	for _, k := range s.Keys() {
		doc.Keys = append(doc.Keys, *k)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a JWKS document or a single JWK object.
func (s *Set) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSet(data)
	if err != nil {
		return err
	}
	s.keys = parsed.keys
	return nil
}

// ParseSet parses a JWKS document ({"keys":[...]}) or a single JWK.
func ParseSet(data []byte) (*Set, error) {
	var probe struct {
		Keys json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSet, err)
	}

	if probe.Keys == nil {
		var key jose.JSONWebKey
		if err := json.Unmarshal(data, &key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSet, err)
		}
		return NewSet(&key), nil
	}

	var doc jose.JSONWebKeySet
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSet, err)
	}
	s := &Set{keys: make([]*jose.JSONWebKey, 0, len(doc.Keys))}
	for i := range doc.Keys {
		s.keys = append(s.keys, &doc.Keys[i])
	}
	return s, nil
}
