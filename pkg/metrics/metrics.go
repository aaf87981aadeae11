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

// Package metrics provides Prometheus instrumentation for token encoding
// and decoding. Counters and histograms are registered on a caller
// supplied registerer so libraries never touch the global registry
// unless asked to.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all jwtkit metrics
	Namespace = "jwtkit"

	// Label names
	LabelOperation = "operation"
	LabelAlgorithm = "algorithm"
	LabelStatus    = "status"
	LabelErrorKind = "error_kind"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpEncode       = "encode"
	OpDecode       = "decode"
	OpDecodeUnsafe = "decode_unsafe"
)

// Recorder receives the outcome of one operation. errorKind is empty on
// success.
type Recorder interface {
	RecordOperation(operation, algorithm, errorKind string, duration time.Duration)
}

// Prometheus records operations as Prometheus metrics.
type Prometheus struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	errors     *prometheus.CounterVec
}

// NewPrometheus registers the jwtkit collectors on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Prometheus{
		// operations_total tracks operations by type, algorithm, and status.
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of token operations by type, algorithm, and status",
			},
			[]string{LabelOperation, LabelAlgorithm, LabelStatus},
		),

		// Buckets are tuned for in-memory signatures; RSA signing and
		// remote signers land in the upper buckets.
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of token operations in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{LabelOperation, LabelAlgorithm},
		),

		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Total number of failed token operations by error kind",
			},
			[]string{LabelOperation, LabelErrorKind},
		),
	}
}

// RecordOperation implements Recorder.
func (p *Prometheus) RecordOperation(operation, algorithm, errorKind string, duration time.Duration) {
	status := StatusSuccess
	if errorKind != "" {
		status = StatusError
		p.errors.WithLabelValues(operation, errorKind).Inc()
	}
	p.operations.WithLabelValues(operation, algorithm, status).Inc()
	p.duration.WithLabelValues(operation, algorithm).Observe(duration.Seconds())
}

// NoOp discards all observations.
type NoOp struct{}

// NewNoOp returns a Recorder that does nothing.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// RecordOperation implements Recorder.
func (*NoOp) RecordOperation(string, string, string, time.Duration) {}
