// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package streak

import (
	"fmt"
	"time"

	"github.com/danielhkuo/habitpair/models"
)

// MaxStreakDays bounds how far back CalculateStreak looks. Streaks longer
// than this are reported as MaxStreakDays.
const MaxStreakDays = 365

// DateLayout is the YYYY-MM-DD key format
const DateLayout = "2006-01-02"

// Index maps a YYYY-MM-DD date to the entry recorded on it
type Index map[string]models.HabitEntry

// NewIndex indexes entries by date. If two entries share a date the last wins.
func NewIndex(entries []models.HabitEntry) Index {
	idx := make(Index, len(entries))
	for _, e := range entries {
		idx[e.Date] = e
	}
	return idx
}

// IsCompleted reports whether person completed the habit on date.
// A missing entry and a false or unset flag are all "not completed".
func (idx Index) IsCompleted(date string, person models.Person) bool {
	e, ok := idx[date]
	return ok && e.Completed(person)
}

// IsCompleted is the single completion accessor for a raw entry list
func IsCompleted(entries []models.HabitEntry, habitID, date string, person models.Person) bool {
	for _, e := range entries {
		if e.HabitID == habitID && e.Date == date {
			return e.Completed(person)
		}
	}
	return false
}

// DateKey formats a calendar day as YYYY-MM-DD. month0 is 0-based.
func DateKey(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// Today returns now's date key in loc (UTC when loc is nil)
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

// CalculateStreak counts consecutive completed days for person ending at
// reference, looking back at most MaxStreakDays days. It returns 0 when the
// reference day itself is not completed.
func CalculateStreak(entries []models.HabitEntry, person models.Person, reference time.Time) int {
	return NewIndex(entries).Streak(person, reference)
}

// Streak is CalculateStreak over an existing index
func (idx Index) Streak(person models.Person, reference time.Time) int {
	// Step by calendar day in the reference's own zone
	y, m, d := reference.Date()
	count := 0
	for i := 0; i < MaxStreakDays; i++ {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, time.UTC)
		if !idx.IsCompleted(day.Format(DateLayout), person) {
			break
		}
		count++
	}
	return count
}
