// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
)

var (
	ErrNoActiveHabit   = errors.New("no habit selected")
	ErrUnknownHabit    = errors.New("habit is not in the list")
	ErrNoPendingDelete = errors.New("no habit awaiting delete confirmation")
	ErrEditClosed      = errors.New("edit modal is not open")
)

// Store is the part of store.Store the controller uses
type Store interface {
	ListHabits(ctx context.Context) ([]models.Habit, error)
	ListEntries(ctx context.Context, habitID string) ([]models.HabitEntry, error)
	CreateHabit(ctx context.Context, in store.NewHabit) (models.Habit, error)
	ToggleEntry(ctx context.Context, habitID, date string, person models.Person) (models.HabitEntry, error)
	DeleteHabit(ctx context.Context, id string) (int64, error)
	InitializeDefaultHabit(ctx context.Context, def store.DefaultHabit) (models.InitResult, error)
}

var _ Store = (*store.Store)(nil)

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLocation sets the zone that decides which date is "today"
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

// WithDefaultHabit names the people of the habit created on a cold start
func WithDefaultHabit(def store.DefaultHabit) Option {
	return func(c *Controller) { c.defaults = def }
}

// Controller holds the UI state of the habit screen and runs every user
// action against a Store. It is not safe for concurrent use.
type Controller struct {
	store    Store
	now      func() time.Time
	loc      *time.Location
	defaults store.DefaultHabit

	habits        []models.Habit
	activeID      string
	entries       []models.HabitEntry
	createOpen    bool
	editOpen      bool
	pendingDelete string
	cursor        streak.Cursor
	editCursor    streak.Cursor
	celebrating   models.Person
}

func NewController(s Store, opts ...Option) *Controller {
	c := &Controller{
		store: s,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cursor = streak.CursorFor(c.today())
	c.editCursor = c.cursor
	return c
}

// Snapshot is the rendered state of the screen
type Snapshot struct {
	Habits        []models.Habit `json:"habits"`
	ActiveHabitID string         `json:"active_habit_id,omitempty"`
	Active        *HabitView     `json:"active,omitempty"`
	CreateOpen    bool           `json:"create_open"`
	EditOpen      bool           `json:"edit_open"`
	Edit          *HabitView     `json:"edit,omitempty"`
	PendingDelete *models.Habit  `json:"pending_delete,omitempty"`
	Celebrating   models.Person  `json:"celebrating,omitempty"`
}

func (c *Controller) today() time.Time {
	return c.now().In(c.loc)
}

func (c *Controller) find(id string) (models.Habit, bool) {
	for _, h := range c.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Load fetches the habit list, creating the default habit when there are
// none, and keeps the current selection if it still exists.
func (c *Controller) Load(ctx context.Context) error {
	habits, err := c.store.ListHabits(ctx)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		res, err := c.store.InitializeDefaultHabit(ctx, c.defaults)
		if err != nil {
			return err
		}
		slog.Info("default habit initialized",
			"initialized", res.Initialized,
			"habit_id", res.HabitID,
			"migrated_entries", res.MigratedEntries,
		)
		if habits, err = c.store.ListHabits(ctx); err != nil {
			return err
		}
	}

	c.habits = habits
	if _, ok := c.find(c.activeID); !ok {
		c.selectFirst()
	}
	return c.refreshEntries(ctx)
}

func (c *Controller) selectFirst() {
	c.activeID = ""
	if len(c.habits) > 0 {
		c.activeID = c.habits[0].ID
	}
}

func (c *Controller) refreshEntries(ctx context.Context) error {
	c.entries = nil
	if c.activeID == "" {
		return nil
	}
	entries, err := c.store.ListEntries(ctx, c.activeID)
	if err != nil {
		return err
	}
	c.entries = entries
	return nil
}

// Select makes id the active habit
func (c *Controller) Select(ctx context.Context, id string) error {
	if _, ok := c.find(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHabit, id)
	}
	c.activeID = id
	c.celebrating = ""
	return c.refreshEntries(ctx)
}

func (c *Controller) OpenCreate()  { c.createOpen = true }
func (c *Controller) CloseCreate() { c.createOpen = false }

// Create validates in, stores the habit, closes the create modal and
// selects the new habit. Invalid input never reaches the store.
func (c *Controller) Create(ctx context.Context, in store.NewHabit) (models.Habit, error) {
	in, err := in.Normalize()
	if err != nil {
		return models.Habit{}, err
	}

	h, err := c.store.CreateHabit(ctx, in)
	if err != nil {
		return models.Habit{}, err
	}
	c.createOpen = false

	habits, err := c.store.ListHabits(ctx)
	if err != nil {
		return h, err
	}
	c.habits = habits
	c.activeID = h.ID
	c.celebrating = ""
	return h, c.refreshEntries(ctx)
}

// OpenEdit shows the past-entries editor for the active habit, starting at
// the current month
func (c *Controller) OpenEdit() error {
	if c.activeID == "" {
		return ErrNoActiveHabit
	}
	c.editOpen = true
	c.editCursor = streak.CursorFor(c.today())
	return nil
}

func (c *Controller) CloseEdit() { c.editOpen = false }

// LongPress asks for confirmation before deleting id
func (c *Controller) LongPress(id string) error {
	if _, ok := c.find(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHabit, id)
	}
	c.pendingDelete = id
	return nil
}

func (c *Controller) CancelDelete() { c.pendingDelete = "" }

// ConfirmDelete deletes the habit awaiting confirmation and selects the
// first remaining habit
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	id := c.pendingDelete
	if id == "" {
		return ErrNoPendingDelete
	}

	n, err := c.store.DeleteHabit(ctx, id)
	if err != nil {
		return err
	}
	slog.Info("habit deleted", "habit_id", id, "deleted_entries", n)
	c.pendingDelete = ""

	habits, err := c.store.ListHabits(ctx)
	if err != nil {
		return err
	}
	c.habits = habits
	if id == c.activeID {
		c.editOpen = false
	}
	c.selectFirst()
	c.celebrating = ""
	return c.refreshEntries(ctx)
}

// ChangeMonth moves the edit modal's month while it is open, otherwise the
// main heatmap's month
func (c *Controller) ChangeMonth(dir streak.Direction) error {
	cur := &c.cursor
	if c.editOpen {
		cur = &c.editCursor
	}
	next, err := cur.Change(dir)
	if err != nil {
		return err
	}
	*cur = next
	return nil
}

// Toggle flips person's completion for today on the active habit. It
// reports whether the toggle completed the day, which the UI celebrates.
func (c *Controller) Toggle(ctx context.Context, person models.Person) (bool, error) {
	return c.toggle(ctx, c.today().Format(streak.DateLayout), person)
}

// ToggleDate flips person's completion for any date from the edit modal
func (c *Controller) ToggleDate(ctx context.Context, date string, person models.Person) (bool, error) {
	if !c.editOpen {
		return false, ErrEditClosed
	}
	return c.toggle(ctx, date, person)
}

func (c *Controller) toggle(ctx context.Context, date string, person models.Person) (bool, error) {
	h, ok := c.find(c.activeID)
	if !ok {
		return false, ErrNoActiveHabit
	}
	if !person.Valid() {
		return false, store.ErrInvalidPerson
	}
	if !h.Mode.Tracks(person) {
		return false, store.ErrPersonNotTracked
	}

	entry, err := c.store.ToggleEntry(ctx, h.ID, date, person)
	if err != nil {
		return false, err
	}
	c.applyEntry(entry)

	completed := entry.Completed(person)
	c.celebrating = ""
	if completed {
		c.celebrating = person
	}
	return completed, nil
}

// applyEntry replaces the cached entry for the same date, or adds it
func (c *Controller) applyEntry(e models.HabitEntry) {
	for i := range c.entries {
		if c.entries[i].Date == e.Date {
			c.entries[i] = e
			return
		}
	}
	c.entries = append(c.entries, e)
}

// Render builds the snapshot of the current state
func (c *Controller) Render() Snapshot {
	s := Snapshot{
		Habits:        c.habits,
		ActiveHabitID: c.activeID,
		CreateOpen:    c.createOpen,
		EditOpen:      c.editOpen,
		Celebrating:   c.celebrating,
	}

	today := c.today()
	if h, ok := c.find(c.activeID); ok {
		active := Build(h, c.entries, c.cursor, today)
		s.Active = &active
		if c.editOpen {
			edit := Build(h, c.entries, c.editCursor, today)
			s.Edit = &edit
		}
	}
	if h, ok := c.find(c.pendingDelete); ok {
		s.PendingDelete = &h
	}

	return s
}
