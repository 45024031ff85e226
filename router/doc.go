// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the habitpair API.

# Route Registration

NewRouter registers every endpoint on an http.ServeMux and wraps it with
the CORS and cache-policy middleware:

	handler := router.NewRouter(db, cfg, build)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Habits:

	GET    /habits              - List habits in display order
	POST   /habits              - Create habit
	POST   /habits/initialize   - Create the default habit from legacy data
	DELETE /habits/{id}         - Delete habit and its entries
	GET    /habits/{id}/view    - Streaks and month heatmap

Entries:

	GET  /habits/{id}/entries        - All entries of a habit
	POST /habits/{id}/entries/toggle - Flip one person's flag for one date

Legacy:

	GET  /meditations
	POST /meditations/toggle

Freshness:

	GET /version.json  - Deployment descriptor polled by clients
	GET /api/build-id  - Build details
	GET /sw.js         - Service worker bound to this deployment

When cfg.StaticDir is set, GET /static/ serves the frontend bundle with an
immutable cache policy.
*/
package router
