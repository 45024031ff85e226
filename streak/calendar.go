// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/habitpair/models"
)

var ErrInvalidMonth = errors.New("month must be between 0 and 11")

// Day is one cell of a month heatmap
type Day struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// DaysIn returns the number of days in the 0-based month of year
func DaysIn(year, month0 int) int {
	// Day 0 of the following month is the last day of this one
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid returns one Day per calendar day of the month, in order
func MonthGrid(entries []models.HabitEntry, person models.Person, year, month0 int) []Day {
	return NewIndex(entries).MonthGrid(person, year, month0)
}

func (idx Index) MonthGrid(person models.Person, year, month0 int) []Day {
	n := DaysIn(year, month0)
	days := make([]Day, 0, n)
	for d := 1; d <= n; d++ {
		date := DateKey(year, month0, d)
		days = append(days, Day{
			Day:       d,
			Date:      date,
			Completed: idx.IsCompleted(date, person),
		})
	}
	return days
}

// Direction moves a Cursor one month
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// Cursor is the displayed month. Month is 0-based (0 = January).
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CursorFor returns the cursor of the month containing t
func CursorFor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: int(t.Month()) - 1}
}

func (c Cursor) Valid() error {
	if c.Month < 0 || c.Month > 11 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, c.Month)
	}
	return nil
}

func (c Cursor) Prev() Cursor {
	if c.Month == 0 {
		return Cursor{Year: c.Year - 1, Month: 11}
	}
	return Cursor{Year: c.Year, Month: c.Month - 1}
}

func (c Cursor) Next() Cursor {
	if c.Month == 11 {
		return Cursor{Year: c.Year + 1, Month: 0}
	}
	return Cursor{Year: c.Year, Month: c.Month + 1}
}

// Change moves the cursor in the given direction
func (c Cursor) Change(dir Direction) (Cursor, error) {
	switch dir {
	case Prev:
		return c.Prev(), nil
	case Next:
		return c.Next(), nil
	}
	return c, fmt.Errorf("unknown direction %q", dir)
}

// Label renders the cursor as "January 2025"
func (c Cursor) Label() string {
	return fmt.Sprintf("%s %d", time.Month(c.Month+1), c.Year)
}
