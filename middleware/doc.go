// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms), and observes the request duration in
metrics.HTTPRequestDuration labelled by the matched route pattern.

# Cache Policy

	handler := middleware.CacheHeaders(middleware.CORS(mux))

  - /static/*: Cache-Control "public, max-age=31536000, immutable"
  - everything else: Cache-Control and CDN-Cache-Control "no-store"
  - /sw.js additionally gets Service-Worker-Allowed "/"

Static assets are content-hashed, so a new deployment never reuses a cached
URL. The HTML shell, the service worker and version.json are never cached
by the browser or a CDN.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
Cache-Control.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateHabitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the remote field of request logs.
*/
package middleware
