// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package observe

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrixdax/FMProKit2/internal/errs"
)

func TestRegister_IsolatedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	require.NoError(t, m.Register(reg))

	m.Observe("GET", 10*time.Millisecond, nil)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["fmprokit_requests_total"])
	assert.True(t, names["fmprokit_request_duration_seconds"])

	assert.Error(t, m.Register(reg), "second registration must collide")
}

func TestObserve(t *testing.T) {
	m := NewMetrics()

	m.Observe("GET", time.Millisecond, nil)
	m.Observe("GET", time.Millisecond, errs.E(errs.RequestFailure, "GET", errors.New("boom")))
	m.Observe("DELETE", time.Millisecond, errs.Input("validate.Table", errs.ErrTableNameMissing))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("GET", "request failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("DELETE", "invalid input")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserve_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("GET", time.Second, nil) })
}
