package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordersIncrementLabelledSeries(t *testing.T) {
	before := testutil.ToFloat64(Collectors.Rollbacks.WithLabelValues("metrics-test"))
	RecordRollback("metrics-test")
	require.Equal(t, before+1, testutil.ToFloat64(Collectors.Rollbacks.WithLabelValues("metrics-test")))

	reqBefore := testutil.ToFloat64(Collectors.APIRequests.WithLabelValues("trainees", "GET", "ok"))
	ObserveRequest("trainees", "GET", "ok", 20*time.Millisecond)
	require.Equal(t, reqBefore+1, testutil.ToFloat64(Collectors.APIRequests.WithLabelValues("trainees", "GET", "ok")))
}

func TestRecordLoadedIgnoresZeroTime(t *testing.T) {
	RecordLoaded("metrics-zero", time.Time{})
	require.Equal(t, 0.0, testutil.ToFloat64(syncLastLoadGauge.WithLabelValues("metrics-zero")))

	ts := time.Date(2025, time.October, 27, 20, 0, 0, 0, time.UTC)
	RecordLoaded("metrics-zero", ts)
	require.Equal(t, float64(ts.Unix()), testutil.ToFloat64(syncLastLoadGauge.WithLabelValues("metrics-zero")))
}
