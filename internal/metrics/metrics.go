package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "court",
			Name:      "booking_attempts_total",
			Help:      "Public booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	adminActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "court",
			Name:      "admin_actions_total",
			Help:      "Admin edit/delete actions by outcome.",
		},
		[]string{"action", "outcome"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "court",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingAttempts, adminActions, logins)
	})
}

func IncBooking(outcome string) {
	bookingAttempts.WithLabelValues(outcome).Inc()
}

func IncAdminAction(action, outcome string) {
	adminActions.WithLabelValues(action, outcome).Inc()
}

func IncLogin(outcome string) {
	logins.WithLabelValues(outcome).Inc()
}
