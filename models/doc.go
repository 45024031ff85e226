// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateHabitRequest: name, person1_name, person2_name (optional), icon
  - ToggleEntryRequest: date (optional, defaults to today), person
  - ToggleMeditationRequest: date, person (legacy table)

# Response Types

Types for JSON responses:

  - ListHabitsResponse: habits
  - CreateHabitResponse: habit_id, habit
  - ListEntriesResponse: habit_id, entries
  - ToggleEntryResponse: entry, was_completed, completed
  - InitResult: initialized, message, habit_id, migrated_entries
  - ErrorResponse: error, message

# Domain Types

  - Habit: a named habit tab tracked by one or two people
  - HabitMode: Solo or Duo(person2Name)
  - HabitEntry: one day's completion record, unique per (habit_id, date)
  - Meditation: legacy single-habit record, migrated on first run

# Habit Modes

The second person is a mode, not an optional string:

	mode := models.ModeFor(strings.TrimSpace(req.Person2Name))
	if name, ok := mode.Person2Name(); ok {
		// duo habit
	}

Habit JSON keeps person2_name (omitted when solo) and adds mode:

	{"id": "...", "name": "Run", "person1_name": "Ann", "mode": "solo", ...}

# Completion

An entry that does not exist, an entry whose flag is false, and an entry
whose person2 flag was never set all read as "not completed":

	done := entry.Completed(models.Person2)

# Constants

Persons:

	Person1 = "person1"
	Person2 = "person2"

Modes:

	ModeSolo = "solo"
	ModeDuo  = "duo"
*/
package models
