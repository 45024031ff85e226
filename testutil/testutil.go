// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/db"
)

// FixedNow is the clock used by handler tests: 2025-03-10 12:00 UTC
var FixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  ":memory:",
		TimeZone:     "UTC",
		Location:     time.UTC,
		Person1Name:  "Alice",
		Person2Name:  "Bob",
	}
}

// CreateTestHabit inserts a habit directly and returns its ID.
// An empty person2 makes it a solo habit.
func CreateTestHabit(t *testing.T, conn *sql.DB, name, person1, person2 string, order int) string {
	t.Helper()

	habitID := uuid.NewString()
	var p2 sql.NullString
	if person2 != "" {
		p2 = sql.NullString{String: person2, Valid: true}
	}

	_, err := conn.Exec(`
		INSERT INTO habit (id, name, person1_name, person2_name, icon, sort_order, created_at)
		VALUES ($1, $2, $3, $4, '💪', $5, $6)
	`, habitID, name, person1, p2, order, FixedNow.UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test habit: %v", err)
	}

	return habitID
}

// AddTestEntry records an entry for a habit. A nil person2 leaves the column NULL.
func AddTestEntry(t *testing.T, conn *sql.DB, habitID, date string, person1 bool, person2 *bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO habit_entry (id, habit_id, date, person1, person2)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), habitID, date, person1, person2)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}
}

// AddTestMeditation inserts a legacy meditation row
func AddTestMeditation(t *testing.T, conn *sql.DB, date string, person1, person2 bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO meditation (id, date, person1, person2)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), date, person1, person2)
	if err != nil {
		t.Fatalf("Failed to create test meditation: %v", err)
	}
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
