// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/handlers"
	"github.com/danielhkuo/habitpair/metrics"
	"github.com/danielhkuo/habitpair/middleware"
	"github.com/danielhkuo/habitpair/pwa"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, build pwa.Build) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	habitHandler := handlers.NewHabitHandler(db, cfg)
	entryHandler := handlers.NewEntryHandler(db, cfg)
	legacyHandler := handlers.NewLegacyHandler(db, cfg)
	versionHandler := handlers.NewVersionHandler(build)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Habits
	mux.HandleFunc("GET /habits", middleware.WithLogging(habitHandler.ListHabits))
	mux.HandleFunc("POST /habits", middleware.WithLogging(habitHandler.CreateHabit))
	mux.HandleFunc("POST /habits/initialize", middleware.WithLogging(habitHandler.InitializeDefaultHabit))
	mux.HandleFunc("DELETE /habits/{id}", middleware.WithLogging(habitHandler.DeleteHabit))
	mux.HandleFunc("GET /habits/{id}/view", middleware.WithLogging(habitHandler.GetHabitView))

	// Entries
	mux.HandleFunc("GET /habits/{id}/entries", middleware.WithLogging(entryHandler.ListEntries))
	mux.HandleFunc("POST /habits/{id}/entries/toggle", middleware.WithLogging(entryHandler.ToggleEntry))

	// Legacy single-habit endpoints
	mux.HandleFunc("GET /meditations", middleware.WithLogging(legacyHandler.ListMeditations))
	mux.HandleFunc("POST /meditations/toggle", middleware.WithLogging(legacyHandler.ToggleMeditation))

	// Freshness
	mux.HandleFunc("GET /version.json", middleware.WithLogging(versionHandler.GetVersion))
	mux.HandleFunc("GET /api/build-id", middleware.WithLogging(versionHandler.GetBuildID))
	mux.HandleFunc("GET /sw.js", middleware.WithLogging(versionHandler.GetServiceWorker))

	// Static bundle
	if cfg.StaticDir != "" {
		mux.Handle("GET "+middleware.StaticPrefix, http.StripPrefix(middleware.StaticPrefix, http.FileServer(http.Dir(cfg.StaticDir))))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("habitpair API v1"))
	})

	return middleware.CacheHeaders(middleware.CORS(mux))
}
