// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package updatecheck detects that a long-lived client is running an old
deployment and reloads it.

	c := updatecheck.New(
		updatecheck.HTTPFetcher{URL: "https://example.com/version.json"},
		func() { os.Exit(0) },
	)
	go c.Run(ctx)

# States

	Unknown --first fetch--> Known --different deploymentId--> Stale

Fetch failures and non-2xx responses are logged and change nothing. The
checker remembers one deployment id, the first it saw. Once stale, a single
reload runs after ReloadDelay (2s); later checks do nothing.

Only one check runs at a time. A Check that starts while another is in
flight returns ErrCheckInFlight immediately and is not queued.

# Service Worker Signals

HandleWorkerMessage with SW_ACTIVATED schedules the same reload. A worker
installed but not yet active is registered with SetWaitingWorker;
ApplyUpdate posts SKIP_WAITING to it and reloads. The reload callback runs
at most once whichever path triggers it.
*/
package updatecheck
