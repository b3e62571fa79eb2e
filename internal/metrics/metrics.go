package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render results.
const (
	ResultOK      = "ok"
	ResultRetried = "retried"
	ResultFailed  = "failed"
)

type Registry struct {
	reg *prometheus.Registry

	InvoiceRenders      *prometheus.CounterVec
	InvoiceRenderSec    prometheus.Histogram
	InvoiceRenderBytes  prometheus.Histogram
	InvoicesGenerated   prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_render_total",
		Help: "Invoice PDF renders by outcome.",
	}, []string{"result"})
	renderSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_render_seconds",
		Buckets: prometheus.DefBuckets,
	})
	renderBytes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_render_bytes",
		Buckets: prometheus.ExponentialBuckets(2048, 2, 10),
	})
	generated := prometheus.NewCounter(prometheus.CounterOpts{Name: "invoice_generated_total"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.MustRegister(renders, renderSec, renderBytes, generated, requests, duration)
	return &Registry{
		reg:                 r,
		InvoiceRenders:      renders,
		InvoiceRenderSec:    renderSec,
		InvoiceRenderBytes:  renderBytes,
		InvoicesGenerated:   generated,
		HTTPRequests:        requests,
		HTTPRequestDuration: duration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
