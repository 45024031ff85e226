// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/store"
)

// writeStoreError maps a store error to a response. Validation errors are
// 400, unknown habits 404, anything else is logged and reported as 500.
func writeStoreError(w http.ResponseWriter, err error, action string) {
	switch {
	case isClientError(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrHabitNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Habit not found")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// isClientError reports whether err was caused by invalid input
func isClientError(err error) bool {
	return errors.Is(err, store.ErrInvalidHabit) ||
		errors.Is(err, store.ErrInvalidDate) ||
		errors.Is(err, store.ErrInvalidPerson) ||
		errors.Is(err, store.ErrPersonNotTracked)
}

// location returns the configured display zone, UTC when unset
func location(cfg cliparse.Config) *time.Location {
	if cfg.Location == nil {
		return time.UTC
	}
	return cfg.Location
}
