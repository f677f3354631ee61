package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ojt_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ojt_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	hoursPersistedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ojt_tracker",
		Subsystem: "logs",
		Name:      "last_log_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent daily log accepted.",
	})
	summariesGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ojt_tracker",
		Subsystem: "summary",
		Name:      "generated_total",
		Help:      "Weekly summaries generated by mode/provider.",
	}, []string{"mode", "outcome"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, hoursPersistedGauge, summariesGenerated)
}

// Middleware records per-request counters and latency keyed by the matched
// route template, not the raw path.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordLogPersisted updates the daily-log persistence watermark.
func RecordLogPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	hoursPersistedGauge.Set(float64(ts.Unix()))
}

// RecordSummary counts a generation attempt.
func RecordSummary(mode string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	summariesGenerated.WithLabelValues(mode, outcome).Inc()
}
