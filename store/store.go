// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/habitpair/models"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrInvalidHabit     = errors.New("habit name and person1 name are required")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidPerson    = errors.New("person must be person1 or person2")
	ErrPersonNotTracked = errors.New("habit does not track person2")
)

// DateLayout is the stored date format and the join key for entries
const DateLayout = "2006-01-02"

// Store implements the data-access operations over a *sql.DB.
// Queries use $N placeholders, which both lib/pq and modernc.org/sqlite bind.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// NewHabit is the input to CreateHabit
type NewHabit struct {
	Name        string
	Person1Name string
	Person2Name string
	Icon        string
}

// Normalize trims every field and fills the default icon.
// It returns ErrInvalidHabit when name or person1 is empty after trimming.
func (n NewHabit) Normalize() (NewHabit, error) {
	out := NewHabit{
		Name:        strings.TrimSpace(n.Name),
		Person1Name: strings.TrimSpace(n.Person1Name),
		Person2Name: strings.TrimSpace(n.Person2Name),
		Icon:        strings.TrimSpace(n.Icon),
	}
	if out.Name == "" || out.Person1Name == "" {
		return NewHabit{}, ErrInvalidHabit
	}
	if out.Icon == "" {
		out.Icon = models.DefaultIcon
	}
	return out, nil
}

// DefaultHabit names the people of the habit created by InitializeDefaultHabit
type DefaultHabit struct {
	Person1Name string
	Person2Name string
}

// Names used when the configuration leaves them empty
const (
	DefaultPerson1Name = "Person 1"
	DefaultPerson2Name = "Person 2"
)

func (d DefaultHabit) withDefaults() DefaultHabit {
	d.Person1Name = strings.TrimSpace(d.Person1Name)
	d.Person2Name = strings.TrimSpace(d.Person2Name)
	if d.Person1Name == "" {
		d.Person1Name = DefaultPerson1Name
	}
	if d.Person2Name == "" {
		d.Person2Name = DefaultPerson2Name
	}
	return d
}

// ValidateDate checks that date is a real calendar day in YYYY-MM-DD form
func ValidateDate(date string) error {
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const habitColumns = `id, name, person1_name, person2_name, icon, sort_order, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var (
		h         models.Habit
		person2   sql.NullString
		createdAt int64
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Person1Name, &person2, &h.Icon, &h.Order, &createdAt); err != nil {
		return models.Habit{}, err
	}
	h.Mode = models.ModeFor(person2.String)
	h.CreatedAt = time.UnixMilli(createdAt).UTC()
	return h, nil
}

const entryColumns = `id, habit_id, date, person1, person2`

func scanEntry(row rowScanner) (models.HabitEntry, error) {
	var (
		e       models.HabitEntry
		person2 sql.NullBool
	)
	if err := row.Scan(&e.ID, &e.HabitID, &e.Date, &e.Person1, &person2); err != nil {
		return models.HabitEntry{}, err
	}
	if person2.Valid {
		v := person2.Bool
		e.Person2 = &v
	}
	return e, nil
}

// nullableName maps the solo mode to a NULL person2_name
func nullableName(mode models.HabitMode) sql.NullString {
	name, ok := mode.Person2Name()
	return sql.NullString{String: name, Valid: ok}
}

// withTx runs fn inside a transaction, rolling back on error
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
