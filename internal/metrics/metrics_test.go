package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"docket/internal/metrics"
)

func TestObserveLifecycle(t *testing.T) {
	ok := metrics.LifecycleOperations.WithLabelValues("test_op", metrics.OutcomeOK)
	failed := metrics.LifecycleOperations.WithLabelValues("test_op", metrics.OutcomeFailed)
	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)

	metrics.ObserveLifecycle("test_op", nil)
	metrics.ObserveLifecycle("test_op", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestObserveTransfer(t *testing.T) {
	c := metrics.Transfers.WithLabelValues("move", metrics.OutcomeIncomplete)
	before := testutil.ToFloat64(c)

	metrics.ObserveTransfer("move", metrics.OutcomeIncomplete, time.Now())

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
