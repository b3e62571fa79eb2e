package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ExposesInvoiceMetrics(t *testing.T) {
	r := NewRegistry()
	r.InvoiceRenders.WithLabelValues(ResultOK).Inc()
	r.InvoiceRenders.WithLabelValues(ResultOK).Inc()
	r.InvoiceRenders.WithLabelValues(ResultFailed).Inc()
	r.InvoiceRenderBytes.Observe(4096)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.InvoiceRenders.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.InvoiceRenders.WithLabelValues(ResultFailed)))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `invoice_render_total{result="ok"} 2`)
	assert.Contains(t, string(body), "invoice_render_bytes_count 1")
}
