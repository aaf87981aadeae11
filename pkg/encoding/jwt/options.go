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
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
)

// DefaultAlgorithm is used when a request names no algorithm.
const DefaultAlgorithm = jwa.RS256

// Target tells Encode which keys sign a token and how. It is implemented
// by *EncodingOptions and KeySet.
type Target interface {
	encodingOptions() *EncodingOptions
}

// KeySet is the short form of an encoding request: a key set with an
// optional algorithm (DefaultAlgorithm when empty) and kid.
type KeySet struct {
	Keys      *jwk.Set
	Algorithm string
	KeyID     string
}

func (k KeySet) encodingOptions() *EncodingOptions {
	opts := NewEncodingOptions(k.Keys).SetKid(k.KeyID)
	if k.Algorithm != "" {
		opts.SetAlgorithm(k.Algorithm)
	}
	return opts
}

// EncodingOptions is a full encoding request: the key set, the
// algorithm, an optional kid and extra protected header members.
//
// The setters modify the request and return it for chaining. An invalid
// header name is reported by Encode.
type EncodingOptions struct {
	keys      *jwk.Set
	algorithm string
	kid       string
	headers   *claims.Set
	err       error
}

// NewEncodingOptions creates a request signing with keys using
// DefaultAlgorithm.
func NewEncodingOptions(keys *jwk.Set) *EncodingOptions {
	if keys == nil {
		keys = jwk.NewSet()
	}
	return &EncodingOptions{
		keys:      keys,
		algorithm: DefaultAlgorithm,
		headers:   claims.New(),
	}
}

// EncodingOptionsFromKey creates a request for a single key. The key's
// declared alg and kid, when set, become the request's algorithm and kid.
func EncodingOptionsFromKey(key *jose.JSONWebKey) *EncodingOptions {
	opts := NewEncodingOptions(jwk.NewSet(key))
	if key == nil {
		return opts
	}
	if key.Algorithm != "" {
		opts.algorithm = key.Algorithm
	}
	opts.kid = key.KeyID
	return opts
}

func (o *EncodingOptions) encodingOptions() *EncodingOptions {
	return o
}

// Algorithm returns the requested algorithm identifier.
func (o *EncodingOptions) Algorithm() string {
	return o.algorithm
}

// Kid returns the requested key id, or "".
func (o *EncodingOptions) Kid() string {
	return o.kid
}

// KeySet returns the candidate signing keys.
func (o *EncodingOptions) KeySet() *jwk.Set {
	return o.keys
}

// Headers returns the protected header the token will carry: the extra
// members, then alg and, when set, kid. alg and kid override extra
// members of the same name.
func (o *EncodingOptions) Headers() map[string]any {
	return o.header().ToMap()
}

// SetAlgorithm sets the algorithm identifier.
func (o *EncodingOptions) SetAlgorithm(alg string) *EncodingOptions {
	o.algorithm = alg
	return o
}

// SetKid sets the key id; "" clears it.
func (o *EncodingOptions) SetKid(kid string) *EncodingOptions {
	o.kid = kid
	return o
}

// SetHeaders replaces the extra header members. Members are ordered by
// name.
func (o *EncodingOptions) SetHeaders(headers map[string]any) *EncodingOptions {
	set, err := claims.FromMap(headers)
	if err != nil {
		o.err = fmt.Errorf("invalid header: %w", err)
		return o
	}
	o.headers = set
	return o
}

// SetHeader adds or replaces one extra header member.
func (o *EncodingOptions) SetHeader(name string, value any) *EncodingOptions {
	if o.headers == nil {
		o.headers = claims.New()
	}
	if err := o.headers.Set(name, value); err != nil {
		o.err = fmt.Errorf("invalid header: %w", err)
	}
	return o
}

// SelectSignatureKey resolves the algorithm in registry and returns the
// first key that can sign with it.
func (o *EncodingOptions) SelectSignatureKey(registry *jwa.Registry) (*jose.JSONWebKey, jwa.Algorithm, error) {
	alg, err := registry.Resolve(o.algorithm)
	if err != nil {
		return nil, jwa.Algorithm{}, err
	}

	key, err := o.keys.Select(jwk.Criteria{
		Algorithm: alg,
		KeyID:     o.kid,
		Signing:   true,
	})
	if err != nil {
		return nil, alg, fmt.Errorf("%w: %w", ErrKeySelectionFailed, err)
	}
	return key, alg, nil
}

// header builds the ordered protected header.
func (o *EncodingOptions) header() *claims.Set {
	h := o.headers.Clone()
	_ = h.Set("alg", o.algorithm)
	if o.kid != "" {
		_ = h.Set("kid", o.kid)
	}
	return h
}
