// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/metrics"
	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
	"github.com/danielhkuo/habitpair/view"
)

type HabitHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewHabitHandler(db *sql.DB, cfg cliparse.Config) *HabitHandler {
	return &HabitHandler{store: store.New(db), cfg: cfg, now: time.Now}
}

// ListHabits handles GET /habits
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.store.ListHabits(r.Context())
	if err != nil {
		writeStoreError(w, err, "list habits")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListHabitsResponse{Habits: habits})
}

// CreateHabit handles POST /habits
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHabitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	habit, err := h.store.CreateHabit(r.Context(), store.NewHabit{
		Name:        req.Name,
		Person1Name: req.Person1Name,
		Person2Name: req.Person2Name,
		Icon:        req.Icon,
	})
	if err != nil {
		writeStoreError(w, err, "create habit")
		return
	}

	metrics.HabitsCreated.Inc()
	slog.Info("habit created", "habit_id", habit.ID, "name", habit.Name, "mode", habit.Mode.String())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateHabitResponse{
		HabitID: habit.ID,
		Habit:   habit,
	})
}

// InitializeDefaultHabit handles POST /habits/initialize
func (h *HabitHandler) InitializeDefaultHabit(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.InitializeDefaultHabit(r.Context(), store.DefaultHabit{
		Person1Name: h.cfg.Person1Name,
		Person2Name: h.cfg.Person2Name,
	})
	if err != nil {
		writeStoreError(w, err, "initialize default habit")
		return
	}

	if res.Initialized {
		metrics.RecordMigration(res.MigratedEntries)
		slog.Info("default habit initialized", "habit_id", res.HabitID, "migrated_entries", res.MigratedEntries)
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// DeleteHabit handles DELETE /habits/{id}
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if habitID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "habit_id is required")
		return
	}

	deleted, err := h.store.DeleteHabit(r.Context(), habitID)
	if err != nil {
		writeStoreError(w, err, "delete habit")
		return
	}

	metrics.HabitsDeleted.Inc()
	slog.Info("habit deleted", "habit_id", habitID, "deleted_entries", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteHabitResponse{
		HabitID:        habitID,
		DeletedEntries: deleted,
	})
}

// GetHabitView handles GET /habits/{id}/view?year=&month=
// month is 0-based; both default to the current month.
func (h *HabitHandler) GetHabitView(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if habitID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "habit_id is required")
		return
	}

	today := h.now().In(location(h.cfg))
	cursor := streak.CursorFor(today)

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "year must be a number")
			return
		}
		cursor.Year = year
	}
	if s := q.Get("month"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "month must be a number")
			return
		}
		cursor.Month = month
	}
	if err := cursor.Valid(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := h.store.GetHabit(r.Context(), habitID)
	if err != nil {
		writeStoreError(w, err, "get habit")
		return
	}

	entries, err := h.store.ListEntries(r.Context(), habitID)
	if err != nil {
		writeStoreError(w, err, "list entries")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view.Build(habit, entries, cursor, today))
}
