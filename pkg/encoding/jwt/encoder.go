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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/compact"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
	"github.com/jeremyhahn/go-jwtkit/pkg/metrics"
)

// Payload is the body of a token. *claims.Set implements it; wrap any
// other JSON value in Value.
type Payload interface {
	ToJSON() ([]byte, error)
}

// Value is a Payload serialized with encoding/json. HTML characters are
// left unescaped to match claims.Set.
type Value struct {
	V any
}

// ToJSON implements Payload.
func (v Value) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v.V); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encoder produces signed compact tokens. It holds no mutable state and
// is safe for concurrent use.
type Encoder struct {
	config
}

// NewEncoder creates an encoder.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Registry returns the algorithms the encoder accepts.
func (e *Encoder) Registry() *jwa.Registry {
	return e.registry
}

// SupportedAlgorithms returns a copy of the encoder restricted to ids.
// The receiver is unchanged.
func (e *Encoder) SupportedAlgorithms(ids ...string) *Encoder {
	narrowed := *e
	narrowed.registry = e.registry.Narrow(ids...)
	return &narrowed
}

// Encode serializes payload, signs it with the key target selects and
// returns the compact token.
//
// Either a complete token is returned or an error; errors match
// ErrUnsupportedAlgorithm, ErrKeySelectionFailed, ErrInvalidPayload,
// ErrInvalidOperation or ErrSigningFailed.
func (e *Encoder) Encode(payload Payload, target Target) (token string, err error) {
	start := time.Now()
	var algorithm string
	defer func() {
		e.metrics.RecordOperation(metrics.OpEncode, algorithm, errorKind(err), time.Since(start))
	}()

	if target == nil {
		return "", fmt.Errorf("%w: nil encoding target", ErrInvalidOperation)
	}
	opts := target.encodingOptions()
	if opts.err != nil {
		return "", opts.err
	}

	body, err := serializePayload(payload)
	if err != nil {
		return "", err
	}

	key, alg, err := opts.SelectSignatureKey(e.registry)
	if err != nil {
		if errors.Is(err, ErrUnsupportedAlgorithm) {
			return "", err
		}
		algorithm = alg.ID
		e.logger.Debug("no signing key matched",
			logger.String("alg", alg.ID),
			logger.String("kid", opts.kid),
			logger.Int("keys", opts.keys.Len()))
		return "", err
	}
	algorithm = alg.ID

	e.logger.Debug("signing token",
		logger.String("alg", alg.ID),
		logger.String("kid", opts.kid),
		logger.String("selected_kid", key.KeyID))

	header, err := opts.header().ToJSON()
	if err != nil {
		return "", fmt.Errorf("%w: header: %w", ErrInvalidOperation, err)
	}

	input := compact.SigningInput(header, body)
	sig, err := e.engine.Sign(alg, key, []byte(input))
	if err != nil {
		e.logger.Warn("signing failed", logger.String("alg", alg.ID), logger.Error(err))
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return compact.Serialize(input, sig), nil
}

func serializePayload(payload Payload) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}
	b, err := payload.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return b, nil
}
