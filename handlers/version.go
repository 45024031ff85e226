// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/pwa"
)

// VersionHandler serves the deployment descriptors and the service worker
type VersionHandler struct {
	build pwa.Build
}

func NewVersionHandler(build pwa.Build) *VersionHandler {
	return &VersionHandler{build: build}
}

// GetVersion handles GET /version.json
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.build.Descriptor())
}

// GetBuildID handles GET /api/build-id
func (h *VersionHandler) GetBuildID(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.build.Info())
}

// GetServiceWorker handles GET /sw.js
func (h *VersionHandler) GetServiceWorker(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := pwa.RenderServiceWorker(&buf, h.build); err != nil {
		slog.Error("failed to render service worker", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render service worker")
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
