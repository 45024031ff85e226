// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/habitpair/models"
)

// ListEntries returns every entry recorded for the habit, in no particular order
func (s *Store) ListEntries(ctx context.Context, habitID string) ([]models.HabitEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM habit_entry
		WHERE habit_id = $1
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.HabitEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// Each toggle is a single upsert keyed on (habit_id, date). The insert branch
// sets only the toggled person; the update branch flips only that person's
// field. Doing the read and the write in one statement keeps concurrent
// toggles of the same field from losing updates.
const (
	togglePerson1SQL = `
		INSERT INTO habit_entry (id, habit_id, date, person1, person2)
		VALUES ($1, $2, $3, TRUE, NULL)
		ON CONFLICT (habit_id, date) DO UPDATE
		SET person1 = NOT habit_entry.person1
		RETURNING ` + entryColumns

	togglePerson2SQL = `
		INSERT INTO habit_entry (id, habit_id, date, person1, person2)
		VALUES ($1, $2, $3, FALSE, TRUE)
		ON CONFLICT (habit_id, date) DO UPDATE
		SET person2 = NOT COALESCE(habit_entry.person2, FALSE)
		RETURNING ` + entryColumns
)

// ToggleEntry flips one person's completion flag for (habitID, date),
// creating the entry on first use. It returns the entry as stored after
// the toggle.
func (s *Store) ToggleEntry(ctx context.Context, habitID, date string, person models.Person) (models.HabitEntry, error) {
	if err := ValidateDate(date); err != nil {
		return models.HabitEntry{}, err
	}

	var query string
	switch person {
	case models.Person1:
		query = togglePerson1SQL
	case models.Person2:
		query = togglePerson2SQL
	default:
		return models.HabitEntry{}, ErrInvalidPerson
	}

	habit, err := s.GetHabit(ctx, habitID)
	if err != nil {
		return models.HabitEntry{}, err
	}
	if !habit.Mode.Tracks(person) {
		return models.HabitEntry{}, ErrPersonNotTracked
	}

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, newID(), habitID, date))
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to toggle entry: %w", err)
	}

	return entry, nil
}
