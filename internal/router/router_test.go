package router

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRouterMetricsRegisters(t *testing.T) {
	m := initRouterMetrics("router_metrics_test")
	require.NotNil(t, m)

	// A second Register of the same collector proves the first one landed
	// in the default registry.
	err := prometheus.DefaultRegisterer.Register(m.requestTotal)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestInitRouterMetricsTwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		initRouterMetrics("router_metrics_reuse_test")
		initRouterMetrics("router_metrics_reuse_test")
	})
}
