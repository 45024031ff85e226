// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/habitpair/models"
)

// Toggle outcomes
const (
	OutcomeCompleted   = "completed"
	OutcomeUncompleted = "uncompleted"
	OutcomeRejected    = "rejected"
	OutcomeError       = "error"
)

// PersonInvalid is the person label for requests naming neither person
const PersonInvalid = "invalid"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitpair_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	EntryToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitpair_entry_toggles_total",
			Help: "Habit entry toggles by person and outcome",
		},
		[]string{"person", "outcome"},
	)

	HabitsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpair_habits_created_total",
			Help: "Habits created",
		},
	)

	HabitsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpair_habits_deleted_total",
			Help: "Habits deleted",
		},
	)

	// Rows copied from the legacy meditation table
	MigratedEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitpair_migrated_entries_total",
			Help: "Legacy meditation rows copied into the default habit",
		},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordToggle counts a toggle. Only person1 and person2 become label
// values; anything else is counted under PersonInvalid.
func RecordToggle(person models.Person, outcome string) {
	EntryToggles.WithLabelValues(personLabel(person), outcome).Inc()
}

func personLabel(p models.Person) string {
	if !p.Valid() {
		return PersonInvalid
	}
	return string(p)
}

// ToggleOutcome maps the resulting completion state to an outcome label
func ToggleOutcome(completed bool) string {
	if completed {
		return OutcomeCompleted
	}
	return OutcomeUncompleted
}

func RecordMigration(entries int) {
	MigratedEntries.Add(float64(entries))
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
