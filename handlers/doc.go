// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the habitpair API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - HabitHandler: Habit list, creation, deletion, default-habit migration and month views
  - EntryHandler: Daily entries and the completion toggle
  - LegacyHandler: The single-habit meditation endpoints
  - VersionHandler: Deployment descriptors and the service worker

Handlers are created via constructor functions that accept *sql.DB and Config:

	habitHandler := handlers.NewHabitHandler(db, cfg)

# Habits

	GET    /habits            → ListHabits (ordered by order)
	POST   /habits            → CreateHabit (order = max + 1)
	POST   /habits/initialize → InitializeDefaultHabit (no-op once any habit exists)
	DELETE /habits/{id}       → DeleteHabit (removes its entries too)
	GET    /habits/{id}/view  → GetHabitView (?year=2025&month=0, month is 0-based)

# Entries

	GET  /habits/{id}/entries        → ListEntries
	POST /habits/{id}/entries/toggle → ToggleEntry

A toggle flips one person's flag for one date, creating the entry on first
use. An omitted date means today in the configured time zone. Toggling
person2 on a solo habit is rejected with 400.

# Errors

Validation failures are 400, unknown habits 404. Database failures are
logged with slog and reported as 500 without detail.

# Freshness

	GET /version.json   → GetVersion
	GET /api/build-id   → GetBuildID
	GET /sw.js          → GetServiceWorker
*/
package handlers
