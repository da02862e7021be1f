package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coursehub"

// Metrics holds the application collectors and their registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	syncRuns     *prometheus.CounterVec
	syncSubjects *prometheus.CounterVec
	reactions    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statistics_sync_runs_total",
			Help:      "Statistics sync runs by result.",
		}, []string{"result"}),
		syncSubjects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statistics_sync_subjects_total",
			Help:      "Subjects processed by statistics syncs, by result.",
		}, []string{"result"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcement_reactions_total",
			Help:      "Announcement reactions by type.",
		}, []string{"reaction_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.syncRuns,
		m.syncSubjects,
		m.reactions,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveSync records one sync run and its per-subject outcomes.
// A nil receiver is a no-op so callers need not guard disabled metrics.
func (m *Metrics) ObserveSync(err error, succeeded, failed int) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.syncRuns.WithLabelValues(result).Inc()
	m.syncSubjects.WithLabelValues("success").Add(float64(succeeded))
	m.syncSubjects.WithLabelValues("failure").Add(float64(failed))
}

// ObserveReaction counts a reaction
func (m *Metrics) ObserveReaction(reactionType string) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues(reactionType).Inc()
}
