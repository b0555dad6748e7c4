// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LoginsTotal     *prometheus.CounterVec
	EnrollmentTotal *prometheus.CounterVec
	AccountsTotal   *prometheus.CounterVec
}

// New registers every collector on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activities_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_logins_total",
			Help: "Login attempts by result (success, invalid, error).",
		}, []string{"result"}),
		EnrollmentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_enrollment_changes_total",
			Help: "Completed roster changes by action (signup, unregister).",
		}, []string{"action"}),
		AccountsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_account_changes_total",
			Help: "Completed account changes by action (create, delete).",
		}, []string{"action"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.LoginsTotal,
		m.EnrollmentTotal,
		m.AccountsTotal,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
