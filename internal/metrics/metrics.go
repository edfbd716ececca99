// Package metrics exposes Prometheus collectors for the API server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for Mailboard
type Metrics struct {
	RequestsTotal           *prometheus.CounterVec
	RequestDurationSeconds  *prometheus.HistogramVec
	CampaignSendsTotal      prometheus.Counter
	CampaignRecipientsTotal prometheus.Counter

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mailboard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CampaignSendsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mailboard_campaign_sends_total",
				Help: "Total number of campaigns transitioned to sending",
			},
		),
		CampaignRecipientsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mailboard_campaign_recipients_total",
				Help: "Total number of recipients snapshotted across campaign sends",
			},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSeconds,
		m.CampaignSendsTotal,
		m.CampaignRecipientsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
