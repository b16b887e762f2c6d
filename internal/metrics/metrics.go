// Package metrics registers the Prometheus counters exposed on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itemtrail_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "path", "status"})

	auditInsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itemtrail_audit_inserts_total",
		Help: "Audit insert attempts, by outcome.",
	}, []string{"outcome"})
)

func ObserveRequest(method, path string, status int) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func ObserveAudit(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	auditInsertsTotal.WithLabelValues(outcome).Inc()
}
