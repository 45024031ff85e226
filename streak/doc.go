// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package streak computes streaks and month heatmaps from habit entries.

All functions are pure. Dates are YYYY-MM-DD strings, zero-padded, and are
matched byte-for-byte against stored entries.

# Streaks

	n := streak.CalculateStreak(entries, models.Person1, time.Now())

Counts back from the reference day while the person's flag is true. A day
without a completion, including the reference day, ends the streak. The
walk is capped at MaxStreakDays (365).

# Month Grid

	days := streak.MonthGrid(entries, models.Person2, 2024, 1) // February 2024, 29 days

# Month Navigation

	c := streak.Cursor{Year: 2025, Month: 0}
	c.Prev() // {2024 11}
	c, err := c.Change(streak.Next)

# Completion Lookups

Build an Index once and use it for every lookup:

	idx := streak.NewIndex(entries)
	done := idx.IsCompleted("2025-03-01", models.Person1)
*/
package streak
