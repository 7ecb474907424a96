package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"culinary-be/internal/notify"
	"culinary-be/internal/stats"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStats(t *testing.T) {
	m := New()
	m.ObserveStats(stats.Stats{LowStock: 2, CriticalStock: 1, NormalStock: 4, PendingOrders: 3, TotalItems: 7})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.stockItems.WithLabelValues("low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockItems.WithLabelValues("critical")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.stockItems.WithLabelValues("normal")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.totalItems))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pendingOrders))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "GET /api/items", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "GET /api/items", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/items", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNotifierCountsVariants(t *testing.T) {
	m := New()
	n := m.Notifier()
	n.Notify(notify.Info("Item created", ""))
	n.Notify(notify.Destructive("Error deleting item", "not found"))
	n.Notify(notify.Destructive("Error deleting item", "not found"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(notify.VariantDefault)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues(notify.VariantDestructive)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetSessions(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "workflow_sessions 3")
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
