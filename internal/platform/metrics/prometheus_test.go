package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsManager_ObserveStorageOp(t *testing.T) {
	m := NewMetricsManager("sharaya_test")

	m.ObserveStorageOp("get", time.Now(), nil)
	m.ObserveStorageOp("get", time.Now(), errors.New("boom"))
	m.ObserveStorageOp("set", time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOpsTotal.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOpsTotal.WithLabelValues("get", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageOpsTotal.WithLabelValues("set", "ok")))
}

func TestMetricsManager_HandlerExposesCustomMetrics(t *testing.T) {
	m := NewMetricsManager("sharaya_test")
	m.OrdersPlacedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sharaya_test_orders_placed_total 1")
}
