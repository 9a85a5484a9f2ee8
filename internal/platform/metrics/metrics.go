package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the panel. All methods are nil-safe so
// components can run without metrics in tests.
type Metrics struct {
	// HTTP request latency by method, route and status.
	RequestDuration *prometheus.HistogramVec

	// Authorization state transitions: granted, already_authorized, revoked.
	AuthorizationEvents *prometheus.CounterVec

	// Pending identifiers removed by the expiration sweep.
	PendingSwept prometheus.Counter

	// Notifications enqueued by channel: requester, admin_log.
	NotificationsEnqueued *prometheus.CounterVec

	// Notifications relayed to the external transport.
	NotificationsRelayed prometheus.Counter
}

// New creates a Metrics instance with all panel metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docpanel_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),

		AuthorizationEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docpanel_authorization_events_total",
			Help: "Authorization state transitions by action",
		}, []string{"action"}),

		PendingSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docpanel_pending_swept_total",
			Help: "Pending identifiers removed by the expiration sweep",
		}),

		NotificationsEnqueued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docpanel_notifications_enqueued_total",
			Help: "Notification units enqueued by channel",
		}, []string{"channel"}),

		NotificationsRelayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docpanel_notifications_relayed_total",
			Help: "Notification units relayed to the external transport",
		}),
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}

// IncrementAuthorization records an authorization state transition.
func (m *Metrics) IncrementAuthorization(action string) {
	if m != nil {
		m.AuthorizationEvents.WithLabelValues(action).Inc()
	}
}

// AddPendingSwept records identifiers removed by a sweep.
func (m *Metrics) AddPendingSwept(n int) {
	if m != nil {
		m.PendingSwept.Add(float64(n))
	}
}

// IncrementEnqueued records a notification enqueue by channel.
func (m *Metrics) IncrementEnqueued(channel string) {
	if m != nil {
		m.NotificationsEnqueued.WithLabelValues(channel).Inc()
	}
}

// IncrementRelayed records a notification handed to the external transport.
func (m *Metrics) IncrementRelayed() {
	if m != nil {
		m.NotificationsRelayed.Inc()
	}
}
