package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-site/internal/domain/cart"
)

func TestMetrics_CartRecorder(t *testing.T) {
	m := New()

	m.ObserveMutation("add", nil)
	m.ObserveMutation("add", nil)
	m.ObserveMutation("add", errors.New("disk full"))
	m.ObserveLoadFailure("parse")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartLoadFailures.WithLabelValues("parse")))
}

func TestMetrics_RenderSetsGauges(t *testing.T) {
	m := New()
	m.Render(cart.Render(cart.Cart{
		{ID: "a", Price: 10, Quantity: 2},
		{ID: "b", Price: 5, Quantity: 1},
	}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartLines))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cartQuantity))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.cartSubtotal))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/v1/cart", http.StatusOK, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/v1/cart",status="200"} 1`)
	assert.Contains(t, string(body), `route="unmatched"`)
	assert.Contains(t, string(body), "cart_quantity")
}
