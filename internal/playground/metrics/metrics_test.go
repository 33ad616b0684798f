package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })
	require.Panics(t, func() { RegisterCollectors(reg) }, "registering twice must fail")
}

func TestObserveStep(t *testing.T) {
	before := testutil.ToFloat64(StepsTotal.WithLabelValues("create", "ok"))

	ObserveStep("create", "ok", 20*time.Millisecond)
	ObserveStep("create", "ok", 30*time.Millisecond)

	require.Equal(t, before+2, testutil.ToFloat64(StepsTotal.WithLabelValues("create", "ok")))
	require.Equal(t, 1, testutil.CollectAndCount(StepDuration))
}
