// Package metrics exposes Prometheus counters for the application workflow.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	ApplicationsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobdeck_applications_submitted_total", Help: "Applications submitted"})
	ApplicationResponses  = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "jobdeck_application_responses_total", Help: "Employer responses by decision"}, []string{"decision"})
	ResponseConflicts     = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobdeck_application_response_conflicts_total", Help: "Responses rejected by the version check"})
	NotificationsCreated  = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "jobdeck_notifications_created_total", Help: "Notifications created by type"}, []string{"type"})
	JobCacheHits          = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobdeck_job_cache_hits_total", Help: "Job summary cache hits"})
	JobCacheMisses        = prometheus.NewCounter(prometheus.CounterOpts{Name: "jobdeck_job_cache_misses_total", Help: "Job summary cache misses"})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			ApplicationsSubmitted,
			ApplicationResponses,
			ResponseConflicts,
			NotificationsCreated,
			JobCacheHits,
			JobCacheMisses,
		)
	})
	return promhttp.Handler()
}
