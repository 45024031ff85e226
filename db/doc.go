// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(lib/pq):

	conn, err := db.Open(db.TypeSQLite, "habitpair.db")

SQLite connections get foreign_keys and busy_timeout pragmas and are
limited to a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - habit: habit tabs (name, people, icon, display order)
  - habit_entry: one row per habit per day
  - meditation: legacy single-habit table, read once by the migration
  - habit_init: one row, locked while the default habit is created

# Relationships

	habit 1──* habit_entry

habit_entry.habit_id uses ON DELETE CASCADE.

# Indexes

  - habit.sort_order
  - habit_entry.habit_id
  - habit_entry.(habit_id, date) (unique, the natural key)
  - meditation.date (unique)
*/
package db
