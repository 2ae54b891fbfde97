package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	inquirySubmissionsTotal  *prometheus.CounterVec
	inquiryDispatchesTotal   *prometheus.CounterVec
	inquiryDispatchLatency   *prometheus.HistogramVec
	siteRequestsTotal        *prometheus.CounterVec
	siteRequestLatencySecond *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the site API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		inquirySubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Inquiry submission attempts by outcome.",
		}, []string{"outcome"})

		inquiryDispatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inquiry_dispatches_total",
			Help: "Individual dispatch calls to the email provider by stage and outcome.",
		}, []string{"stage", "outcome"})

		inquiryDispatchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inquiry_dispatch_latency_seconds",
			Help:    "Latency distribution of email provider dispatch calls.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"stage"})

		siteRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		siteRequestLatencySecond = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "site_request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			inquirySubmissionsTotal,
			inquiryDispatchesTotal,
			inquiryDispatchLatency,
			siteRequestsTotal,
			siteRequestLatencySecond,
		)
	})
}

// InquirySubmissions exposes the submission outcome counter.
func InquirySubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return inquirySubmissionsTotal
}

// InquiryDispatches exposes the per-stage dispatch counter.
func InquiryDispatches() *prometheus.CounterVec {
	RegisterMetrics()
	return inquiryDispatchesTotal
}

// InquiryDispatchLatency exposes the dispatch latency histogram.
func InquiryDispatchLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return inquiryDispatchLatency
}

// SiteRequests exposes the request counter.
func SiteRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return siteRequestsTotal
}

// SiteRequestLatency exposes the request latency histogram.
func SiteRequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return siteRequestLatencySecond
}
