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
	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
)

// Token is a decoded token: the original compact string, its header and
// its claims.
//
// A Token returned by Decoder.Decode has a verified signature. One from
// DecodeUnsafe does not.
type Token struct {
	encoded string
	headers map[string]any
	claims  *claims.Set
}

func newToken(encoded string, headers map[string]any, payload *claims.Set) *Token {
	return &Token{
		encoded: encoded,
		headers: headers,
		claims:  payload,
	}
}

// Encoded returns the compact serialization the token was decoded from.
func (t *Token) Encoded() string {
	return t.encoded
}

// Headers returns a deep copy of the header members. Compact tokens carry
// no unprotected header, so these are the protected members.
func (t *Token) Headers() map[string]any {
	return claims.CopyValue(t.headers).(map[string]any)
}

// Header returns a copy of one header member.
func (t *Token) Header(name string) (any, bool) {
	v, ok := t.headers[name]
	return claims.CopyValue(v), ok
}

// Algorithm returns the alg header.
func (t *Token) Algorithm() string {
	alg, _ := t.headers["alg"].(string)
	return alg
}

// KeyID returns the kid header, or "".
func (t *Token) KeyID() string {
	kid, _ := t.headers["kid"].(string)
	return kid
}

// Payload returns a deep copy of the claims as a map.
func (t *Token) Payload() map[string]any {
	return t.claims.ToMap()
}

// Claims returns a deep copy of the claim set in payload order.
func (t *Token) Claims() claims.Claims {
	return t.claims.Clone()
}

// Claim returns a copy of the named claim, or nil.
func (t *Token) Claim(name string) any {
	return claims.CopyValue(t.claims.Get(name))
}

// ClaimOr returns a copy of the named claim, or def when absent.
func (t *Token) ClaimOr(name string, def any) any {
	if v, ok := t.claims.Lookup(name); ok {
		return claims.CopyValue(v)
	}
	return def
}
