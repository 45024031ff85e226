// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database and verifies the connection.
// SQLite is limited to one connection so writes never race each other.
func Open(dbType, url string) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch dbType {
	case TypeSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
		if err == nil {
			conn.SetMaxOpenConns(1)
		}
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteDSN appends the pragmas every connection needs
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// The DDL sticks to types and syntax both SQLite and PostgreSQL accept.
// created_at is Unix milliseconds.
const schema = `
-- Habits
CREATE TABLE IF NOT EXISTS habit (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    person1_name TEXT NOT NULL CHECK (person1_name <> ''),
    person2_name TEXT,
    icon TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habit_sort_order ON habit(sort_order);

-- Habit entries
CREATE TABLE IF NOT EXISTS habit_entry (
    id TEXT PRIMARY KEY,
    habit_id TEXT NOT NULL REFERENCES habit(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    person1 BOOLEAN NOT NULL DEFAULT FALSE,
    person2 BOOLEAN,
    UNIQUE (habit_id, date)
);

CREATE INDEX IF NOT EXISTS idx_habit_entry_habit_id ON habit_entry(habit_id);

-- Legacy meditations
CREATE TABLE IF NOT EXISTS meditation (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL UNIQUE,
    person1 BOOLEAN NOT NULL DEFAULT FALSE,
    person2 BOOLEAN NOT NULL DEFAULT FALSE
);

-- Single row locked by InitializeDefaultHabit
CREATE TABLE IF NOT EXISTS habit_init (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    locked_at BIGINT NOT NULL
);
`
