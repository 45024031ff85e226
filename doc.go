// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the habitpair API server.

habitpair tracks daily habits for one or two people: a tab per habit, a
completion toggle per person per day, current streaks and a month heatmap.
It also serves the version descriptor and service worker that let open
clients notice a new deployment and reload.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -tz Europe/Warsaw

# Configuration

Settings are layered: defaults, then a YAML file (-c or HABITPAIR_CONFIG),
then environment (a .env file is loaded if present), then flags.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite path (default: habitpair.db)
  - TIME_ZONE (-tz): Zone that decides what "today" is (default: UTC)
  - STATIC_DIR (-static): Frontend bundle served under /static/
  - PERSON1_NAME, PERSON2_NAME: Names for the default habit

Build identity comes from APP_VERSION, BUILD_ID, DEPLOYMENT_ID, COMMIT_SHA
and ENVIRONMENT. Run with -write-version path/to/version.json to write the
descriptor during a build and exit.

# Architecture

  - handlers: HTTP request handlers (habits, entries, legacy, version)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, cache policy, logging, JSON helpers
  - store: Data access for habits, entries and the legacy table
  - streak: Streak and calendar calculations
  - view: Client-side view state and render model
  - updatecheck: Deployment change detection
  - pwa: Version descriptors and the service worker template
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
