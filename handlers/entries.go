// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/metrics"
	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
)

type EntryHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewEntryHandler(db *sql.DB, cfg cliparse.Config) *EntryHandler {
	return &EntryHandler{store: store.New(db), cfg: cfg, now: time.Now}
}

// ListEntries handles GET /habits/{id}/entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if habitID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "habit_id is required")
		return
	}

	if _, err := h.store.GetHabit(r.Context(), habitID); err != nil {
		writeStoreError(w, err, "get habit")
		return
	}

	entries, err := h.store.ListEntries(r.Context(), habitID)
	if err != nil {
		writeStoreError(w, err, "list entries")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListEntriesResponse{
		HabitID: habitID,
		Entries: entries,
	})
}

// ToggleEntry handles POST /habits/{id}/entries/toggle
// An omitted date means today in the configured time zone.
func (h *EntryHandler) ToggleEntry(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if habitID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "habit_id is required")
		return
	}

	var req models.ToggleEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.Person.Valid() {
		metrics.RecordToggle(req.Person, metrics.OutcomeRejected)
		middleware.ErrorResponse(w, http.StatusBadRequest, "person must be person1 or person2")
		return
	}
	if req.Date == "" {
		req.Date = streak.Today(h.now(), location(h.cfg))
	}

	entry, err := h.store.ToggleEntry(r.Context(), habitID, req.Date, req.Person)
	if err != nil {
		outcome := metrics.OutcomeRejected
		if !isClientError(err) {
			outcome = metrics.OutcomeError
		}
		metrics.RecordToggle(req.Person, outcome)
		writeStoreError(w, err, "toggle entry")
		return
	}

	completed := entry.Completed(req.Person)
	metrics.RecordToggle(req.Person, metrics.ToggleOutcome(completed))
	slog.Info("entry toggled",
		"habit_id", habitID,
		"date", req.Date,
		"person", req.Person,
		"completed", completed,
	)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleEntryResponse{
		Entry:        entry,
		WasCompleted: !completed,
		Completed:    completed,
	})
}
