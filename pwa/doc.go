// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pwa describes a deployment to its installed clients.

A Build is read once at startup:

	build := pwa.FromEnv(os.Getenv, time.Now())

and exposed three ways:

  - build.Descriptor() as /version.json, polled by updatecheck.Checker
  - build.Info() as /api/build-id
  - RenderServiceWorker as /sw.js

# Environment

	APP_VERSION    version       (default 1.0.0)
	BUILD_ID       buildId       (default development)
	DEPLOYMENT_ID  deploymentId  (default local)
	COMMIT_SHA     commit        (default dev in version.json, unknown in build-id)
	ENVIRONMENT    environment   (default development)

# Service Worker

The worker activates immediately: it skips waiting on install, claims every
client on activate, deletes all caches and posts SW_ACTIVATED to each window.
A page holding a waiting worker can post SKIP_WAITING to promote it.
Navigations and /api/ go network first; /static/ is cache first.

# Build Step

WriteDescriptor writes the same version.json to disk for static hosting:

	habitpair -write-version public/version.json
*/
package pwa
