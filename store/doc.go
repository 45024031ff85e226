// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data-access layer for habits and their daily entries.

# Operations

	s := store.New(conn)

	habits, err := s.ListHabits(ctx)               // ordered by display order
	entries, err := s.ListEntries(ctx, habitID)     // unordered
	habit, err := s.CreateHabit(ctx, store.NewHabit{Name: "Run", Person1Name: "Ann"})
	entry, err := s.ToggleEntry(ctx, habitID, "2025-01-31", models.Person1)
	n, err := s.DeleteHabit(ctx, habitID)           // entries first, then habit
	res, err := s.InitializeDefaultHabit(ctx, store.DefaultHabit{...})

# Toggle Semantics

ToggleEntry is one INSERT ... ON CONFLICT (habit_id, date) DO UPDATE
statement. A new entry has only the toggled person set; the other person's
field keeps its default (false for person1, NULL for person2). An existing
entry has only the toggled field flipped.

Toggling person2 on a solo habit returns ErrPersonNotTracked.

# Legacy Migration

InitializeDefaultHabit runs in one transaction. When the habit table is
empty it creates a duo "Meditation" habit and copies every meditation row
into habit_entry verbatim. Otherwise it returns "Habits already initialized"
and changes nothing.

The transaction starts by upserting the single habit_init row. Concurrent
initializers, including other replicas on the same PostgreSQL database, wait
on that row, so exactly one of them creates the habit.

# Errors

  - ErrInvalidHabit: empty name or person1 name (checked before any query)
  - ErrInvalidDate: date is not a real YYYY-MM-DD day
  - ErrInvalidPerson: person is not person1 or person2
  - ErrPersonNotTracked: person2 on a solo habit
  - ErrHabitNotFound: unknown habit id

Database failures are wrapped with %w and returned as-is.
*/
package store
