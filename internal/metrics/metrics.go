package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Scans = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "attendance_scans_total", Help: "Attendance scans recorded",
	})
	ScansUnpaid = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "attendance_scans_unpaid_total", Help: "Scans where the covering billing period was unpaid",
	})
	AbsencesRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "absences_registered_total", Help: "Bulk-registered absence records",
	})
	PaymentsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "payments_registered_total", Help: "Payments registered",
	})
	UnresolvedMonthLabels = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "unresolved_month_labels_total", Help: "Paid-month labels that resolved to no billing period",
	})
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "cache_hits_total", Help: "Entity cache hits",
	}, []string{"cache"})
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "cache_misses_total", Help: "Entity cache misses",
	}, []string{"cache"})
	QueuePublishes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "queue_publishes_total", Help: "Messages published to the work queue",
	}, []string{"type"})
	DBRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "db_retries_total", Help: "Retried database calls",
	})
	DBBreakerOpen = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tutordesk", Name: "db_breaker_open_total", Help: "Calls rejected by the open circuit breaker",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tutordesk", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		Scans, ScansUnpaid, AbsencesRegistered, PaymentsRegistered,
		UnresolvedMonthLabels, CacheHits, CacheMisses, QueuePublishes,
		DBRetries, DBBreakerOpen, DBPing,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// ObserveDBPing records a health-check ping latency.
func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
