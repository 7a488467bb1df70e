package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GigOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gig_operations_total", Help: "Gig mutations applied, by operation"},
		[]string{"op"},
	)
	ConflictRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gig_conflict_retries_total", Help: "Optimistic-write conflicts retried"},
	)
	CascadesExecuted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "moderation_cascades_total", Help: "Moderation cascades committed"},
	)
	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "notification_emit_failures_total", Help: "Best-effort notification emits that failed"},
	)
)

func Register() {
	prometheus.MustRegister(GigOperations, ConflictRetries, CascadesExecuted, NotificationFailures)
}
