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
	"github.com/jeremyhahn/go-jwtkit/pkg/adapters/logger"
	"github.com/jeremyhahn/go-jwtkit/pkg/jwa"
	"github.com/jeremyhahn/go-jwtkit/pkg/metrics"
	"github.com/jeremyhahn/go-jwtkit/pkg/signing"
)

// Option configures an Encoder or Decoder.
type Option func(*config)

type config struct {
	registry *jwa.Registry
	engine   signing.Engine
	logger   logger.Logger
	metrics  metrics.Recorder
}

func newConfig(opts []Option) config {
	cfg := config{
		registry: jwa.Default(),
		engine:   signing.NewMethodEngine(),
		logger:   logger.NewNoOpLogger(),
		metrics:  metrics.NewNoOp(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRegistry sets the algorithms the Encoder or Decoder accepts.
// Defaults to jwa.Default().
func WithRegistry(registry *jwa.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithEngine sets the signature engine. Defaults to the golang-jwt backed
// signing.MethodEngine.
func WithEngine(engine signing.Engine) Option {
	return func(c *config) {
		if engine != nil {
			c.engine = engine
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log logger.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithMetrics sets the metrics recorder. Defaults to a no-op recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *config) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}
