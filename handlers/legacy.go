// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
)

// LegacyHandler serves the single-habit meditation endpoints kept for
// clients that predate multiple habits
type LegacyHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewLegacyHandler(db *sql.DB, cfg cliparse.Config) *LegacyHandler {
	return &LegacyHandler{store: store.New(db), cfg: cfg, now: time.Now}
}

// ListMeditations handles GET /meditations
func (h *LegacyHandler) ListMeditations(w http.ResponseWriter, r *http.Request) {
	meditations, err := h.store.ListMeditations(r.Context())
	if err != nil {
		writeStoreError(w, err, "list meditations")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListMeditationsResponse{Meditations: meditations})
}

// ToggleMeditation handles POST /meditations/toggle
func (h *LegacyHandler) ToggleMeditation(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleMeditationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Date == "" {
		req.Date = streak.Today(h.now(), location(h.cfg))
	}

	m, err := h.store.ToggleMeditation(r.Context(), req.Date, req.Person)
	if err != nil {
		writeStoreError(w, err, "toggle meditation")
		return
	}

	slog.Info("meditation toggled", "date", m.Date, "person", req.Person, "completed", m.Completed(req.Person))

	middleware.JSONResponse(w, http.StatusOK, m)
}
