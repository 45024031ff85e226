// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics holds the Prometheus collectors, registered on the default
registry at init.

	metrics.RecordToggle(models.Person1, metrics.ToggleOutcome(entry.Person1))
	mux.Handle("GET /metrics", metrics.Handler())

HTTP request durations are recorded by middleware.WithLogging, labelled by
the matched route pattern rather than the raw path.
*/
package metrics
