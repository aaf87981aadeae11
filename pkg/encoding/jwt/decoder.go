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
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
	"github.com/jeremyhahn/go-jwtkit/pkg/claims"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/compact"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
	"github.com/jeremyhahn/go-jwtkit/pkg/metrics"
	"github.com/jeremyhahn/go-jwtkit/pkg/signing"
	"github.com/jeremyhahn/go-jwtkit/pkg/validation"
)

// Decoder verifies compact tokens. It holds no mutable state and is safe
// for concurrent use.
type Decoder struct {
	config
}

// NewDecoder creates a decoder.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{config: newConfig(opts)}
}

// Registry returns the algorithms the decoder accepts.
func (d *Decoder) Registry() *jwa.Registry {
	return d.registry
}

// SupportedAlgorithms returns a copy of the decoder restricted to ids.
// The receiver is unchanged.
func (d *Decoder) SupportedAlgorithms(ids ...string) *Decoder {
	narrowed := *d
	narrowed.registry = d.registry.Narrow(ids...)
	return &narrowed
}

// Decode parses token, verifies its signature and returns the claims.
//
// The algorithm named in the header must be registered; it is the only
// algorithm tried. Candidate keys are the keys compatible with it whose
// kid equals the header kid, plus keys without a kid, tried in set order.
//
// Errors match ErrMalformedToken, ErrUnsupportedAlgorithm,
// ErrInvalidSignature or ErrInvalidPayload.
func (d *Decoder) Decode(token string, keys *jwk.Set) (decoded *Token, err error) {
	start := time.Now()
	var algorithm string
	defer func() {
		d.metrics.RecordOperation(metrics.OpDecode, algorithm, errorKind(err), time.Since(start))
	}()

	parsed, err := compact.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	algID, kid, err := protectedAlgorithm(parsed.Header)
	if err != nil {
		return nil, err
	}

	alg, err := d.registry.Resolve(algID)
	if err != nil {
		d.logger.Warn("rejected token algorithm", logger.String("alg", validation.SanitizeForLog(algID)))
		return nil, err
	}
	algorithm = alg.ID

	candidates := keys.Filter(jwk.Criteria{
		Algorithm:        alg,
		KeyID:            kid,
		KeepUnidentified: true,
	})
	if len(candidates) == 0 {
		d.logger.Warn("no verification key matched",
			logger.String("alg", alg.ID),
			logger.String("kid", validation.SanitizeForLog(kid)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, jwk.ErrNoMatchingKey)
	}

	key, err := d.engine.Verify(alg, candidates, parsed.SigningInput(), parsed.Signature)
	if err != nil {
		if errors.Is(err, signing.ErrUnsupportedAlgorithm) {
			return nil, &UnsupportedAlgorithmError{Algorithm: alg.ID}
		}
		d.logger.Warn("signature verification failed",
			logger.String("alg", alg.ID),
			logger.String("kid", validation.SanitizeForLog(kid)),
			logger.Int("candidates", len(candidates)))
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	d.logger.Debug("verified token",
		logger.String("alg", alg.ID),
		logger.String("kid", validation.SanitizeForLog(kid)),
		logger.String("selected_kid", key.KeyID))

	payload, err := claims.DecodeObject(parsed.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return newToken(token, parsed.Header, payload), nil
}

// DecodeUnsafe parses token without verifying its signature. Callers must
// not trust the result; it exists to read header members such as kid.
func (d *Decoder) DecodeUnsafe(token string) (decoded *Token, err error) {
	start := time.Now()
	var algorithm string
	defer func() {
		d.metrics.RecordOperation(metrics.OpDecodeUnsafe, algorithm, errorKind(err), time.Since(start))
	}()

	parsed, err := compact.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	// The header is unverified; only registered names become metric labels.
	if alg, _ := parsed.Header["alg"].(string); d.registry.Contains(alg) {
		algorithm = alg
	}

	payload, err := claims.DecodeObject(parsed.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrMalformedToken, err)
	}

	return newToken(token, parsed.Header, payload), nil
}

// DecodeUnsafe parses token without verifying its signature using a
// default Decoder.
func DecodeUnsafe(token string) (*Token, error) {
	return NewDecoder().DecodeUnsafe(token)
}

// protectedAlgorithm reads alg and kid from a parsed header.
func protectedAlgorithm(header map[string]any) (alg, kid string, err error) {
	raw, ok := header["alg"]
	if !ok {
		return "", "", fmt.Errorf("%w: missing alg header", ErrMalformedToken)
	}
	alg, ok = raw.(string)
	if !ok || alg == "" {
		return "", "", fmt.Errorf("%w: alg header must be a non-empty string", ErrMalformedToken)
	}

	if raw, ok := header["kid"]; ok && raw != nil {
		kid, ok = raw.(string)
		if !ok {
			return "", "", fmt.Errorf("%w: kid header must be a string", ErrMalformedToken)
		}
	}
	return alg, kid, nil
}
