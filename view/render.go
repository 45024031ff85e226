// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"time"

	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/streak"
)

// PersonView is one tracked person's card and heatmap
type PersonView struct {
	Person         models.Person `json:"person"`
	Name           string        `json:"name"`
	Streak         int           `json:"streak"`
	CompletedToday bool          `json:"completed_today"`
	MonthCount     int           `json:"month_count"`
	Days           []streak.Day  `json:"days"`
}

// HabitView is everything needed to draw one habit for one month
type HabitView struct {
	Habit      models.Habit  `json:"habit"`
	Today      string        `json:"today"`
	Month      streak.Cursor `json:"month"`
	MonthLabel string        `json:"month_label"`
	People     []PersonView  `json:"people"`
}

// Build renders habit for the month at cursor. today is the current time in
// the display zone; its date is both the streak reference and the "today"
// card. Person2 is only rendered for duo habits.
func Build(habit models.Habit, entries []models.HabitEntry, cursor streak.Cursor, today time.Time) HabitView {
	idx := streak.NewIndex(entries)
	todayKey := today.Format(streak.DateLayout)

	v := HabitView{
		Habit:      habit,
		Today:      todayKey,
		Month:      cursor,
		MonthLabel: cursor.Label(),
	}

	for _, p := range habit.Mode.Persons() {
		days := idx.MonthGrid(p, cursor.Year, cursor.Month)
		count := 0
		for _, d := range days {
			if d.Completed {
				count++
			}
		}
		v.People = append(v.People, PersonView{
			Person:         p,
			Name:           nameOf(habit, p),
			Streak:         idx.Streak(p, today),
			CompletedToday: idx.IsCompleted(todayKey, p),
			MonthCount:     count,
			Days:           days,
		})
	}

	return v
}

func nameOf(h models.Habit, p models.Person) string {
	if p == models.Person2 {
		name, _ := h.Mode.Person2Name()
		return name
	}
	return h.Person1Name
}
