package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "signups_total",
		Help:      "Number of successful activity signups.",
	})
	unregisterCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "unregistrations_total",
		Help:      "Number of successful activity unregistrations.",
	})
	enrollmentGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activities_service",
		Subsystem: "enrollment",
		Name:      "last_enrollment_timestamp_seconds",
		Help:      "Unix timestamp of the most recent enrollment change committed to SQLite.",
	})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, enrollmentGauge)
}

// RecordSignup counts a committed signup and updates the watermark gauge.
func RecordSignup(ts time.Time) {
	signupCounter.Inc()
	recordEnrollmentChange(ts)
}

// RecordUnregistration counts a committed unregistration and updates the watermark gauge.
func RecordUnregistration(ts time.Time) {
	unregisterCounter.Inc()
	recordEnrollmentChange(ts)
}

func recordEnrollmentChange(ts time.Time) {
	if ts.IsZero() {
		return
	}
	enrollmentGauge.Set(float64(ts.Unix()))
}
