// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/habitpair/models"
)

func boolPtr(b bool) *bool { return &b }

// completedDays builds entries with person1 done on n consecutive days ending at end
func completedDays(end time.Time, n int) []models.HabitEntry {
	entries := make([]models.HabitEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.HabitEntry{
			HabitID: "h1",
			Date:    end.AddDate(0, 0, -i).Format(DateLayout),
			Person1: true,
		})
	}
	return entries
}

var reference = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestCalculateStreak_NoEntryForReferenceDay(t *testing.T) {
	// Completed every day up to yesterday, nothing today
	entries := completedDays(reference.AddDate(0, 0, -1), 10)

	assert.Equal(t, 0, CalculateStreak(entries, models.Person1, reference))
}

func TestCalculateStreak_ReferenceDayFalse(t *testing.T) {
	entries := append(completedDays(reference.AddDate(0, 0, -1), 5), models.HabitEntry{
		HabitID: "h1",
		Date:    "2025-03-10",
		Person1: false,
	})

	assert.Equal(t, 0, CalculateStreak(entries, models.Person1, reference))
}

func TestCalculateStreak_StopsAtGap(t *testing.T) {
	entries := completedDays(reference, 4)
	// Gap on day 5 back, then more completions
	entries = append(entries, completedDays(reference.AddDate(0, 0, -5), 10)...)

	assert.Equal(t, 4, CalculateStreak(entries, models.Person1, reference))
}

func TestCalculateStreak_CappedAt365(t *testing.T) {
	entries := completedDays(reference, 730)

	assert.Equal(t, MaxStreakDays, CalculateStreak(entries, models.Person1, reference))
}

func TestCalculateStreak_Person2(t *testing.T) {
	entries := []models.HabitEntry{
		{HabitID: "h1", Date: "2025-03-10", Person1: true, Person2: boolPtr(true)},
		{HabitID: "h1", Date: "2025-03-09", Person1: true, Person2: nil},
		{HabitID: "h1", Date: "2025-03-08", Person1: true, Person2: boolPtr(true)},
	}

	assert.Equal(t, 1, CalculateStreak(entries, models.Person2, reference))
	assert.Equal(t, 3, CalculateStreak(entries, models.Person1, reference))
}

func TestCalculateStreak_CrossesMonthAndYear(t *testing.T) {
	ref := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	entries := completedDays(ref, 5) // Jan 2, Jan 1, Dec 31, Dec 30, Dec 29

	assert.Equal(t, 5, CalculateStreak(entries, models.Person1, ref))
}

func TestCalculateStreak_UsesReferenceZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2025-03-10 23:00 UTC is already 2025-03-11 in UTC+10
	ref := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC).In(loc)
	entries := []models.HabitEntry{{HabitID: "h1", Date: "2025-03-11", Person1: true}}

	assert.Equal(t, 1, CalculateStreak(entries, models.Person1, ref))
}

func TestIsCompleted(t *testing.T) {
	entries := []models.HabitEntry{
		{HabitID: "h1", Date: "2025-03-01", Person1: true},
		{HabitID: "h1", Date: "2025-03-02", Person1: false, Person2: boolPtr(false)},
		{HabitID: "h2", Date: "2025-03-03", Person1: true},
	}

	tests := []struct {
		name    string
		habitID string
		date    string
		person  models.Person
		want    bool
	}{
		{"completed", "h1", "2025-03-01", models.Person1, true},
		{"person2 never set", "h1", "2025-03-01", models.Person2, false},
		{"explicit false", "h1", "2025-03-02", models.Person2, false},
		{"no entry", "h1", "2025-03-04", models.Person1, false},
		{"other habit", "h1", "2025-03-03", models.Person1, false},
		{"unknown person", "h1", "2025-03-01", models.Person("nobody"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompleted(entries, tt.habitID, tt.date, tt.person))
		})
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", Today(now, nil))

	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2025-03-11", Today(now, plusTwo))
}
