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

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the samples of a counter family matching labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestPrometheus_RecordOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.RecordOperation(OpEncode, "RS256", "", time.Millisecond)
	p.RecordOperation(OpEncode, "RS256", "", 2*time.Millisecond)
	p.RecordOperation(OpDecode, "HS256", "invalid_signature", time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "jwtkit_operations_total", map[string]string{
		LabelOperation: OpEncode, LabelStatus: StatusSuccess,
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, "jwtkit_operations_total", map[string]string{
		LabelOperation: OpDecode, LabelStatus: StatusError,
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, "jwtkit_errors_total", map[string]string{
		LabelErrorKind: "invalid_signature",
	}))

	families, err := reg.Gather()
	require.NoError(t, err)
	var histogram bool
	for _, mf := range families {
		if mf.GetName() == "jwtkit_operation_duration_seconds" {
			histogram = true
		}
	}
	assert.True(t, histogram)
}

func TestNewPrometheus_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	assert.Panics(t, func() { NewPrometheus(reg) })
}

func TestNoOp(t *testing.T) {
	var r Recorder = NewNoOp()
	r.RecordOperation(OpDecodeUnsafe, "", "", 0)
}
