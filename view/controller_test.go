// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
)

// memStore is an in-memory Store that records which operations ran
type memStore struct {
	habits  []models.Habit
	entries map[string][]models.HabitEntry
	calls   []string
	nextID  int
	failOn  string
}

func newMemStore(habits ...models.Habit) *memStore {
	return &memStore{habits: habits, entries: map[string][]models.HabitEntry{}}
}

func (m *memStore) record(op string) error {
	m.calls = append(m.calls, op)
	if op == m.failOn {
		return errors.New("store unavailable")
	}
	return nil
}

func (m *memStore) ListHabits(ctx context.Context) ([]models.Habit, error) {
	if err := m.record("ListHabits"); err != nil {
		return nil, err
	}
	return append([]models.Habit(nil), m.habits...), nil
}

func (m *memStore) ListEntries(ctx context.Context, habitID string) ([]models.HabitEntry, error) {
	if err := m.record("ListEntries"); err != nil {
		return nil, err
	}
	return append([]models.HabitEntry(nil), m.entries[habitID]...), nil
}

func (m *memStore) CreateHabit(ctx context.Context, in store.NewHabit) (models.Habit, error) {
	if err := m.record("CreateHabit"); err != nil {
		return models.Habit{}, err
	}
	m.nextID++
	h := models.Habit{
		ID:          fmt.Sprintf("new-%d", m.nextID),
		Name:        in.Name,
		Person1Name: in.Person1Name,
		Mode:        models.ModeFor(in.Person2Name),
		Icon:        in.Icon,
		Order:       len(m.habits),
	}
	m.habits = append(m.habits, h)
	return h, nil
}

func (m *memStore) ToggleEntry(ctx context.Context, habitID, date string, person models.Person) (models.HabitEntry, error) {
	if err := m.record("ToggleEntry"); err != nil {
		return models.HabitEntry{}, err
	}
	list := m.entries[habitID]
	for i, e := range list {
		if e.Date != date {
			continue
		}
		if person == models.Person1 {
			e.Person1 = !e.Person1
		} else {
			v := !e.Completed(models.Person2)
			e.Person2 = &v
		}
		list[i] = e
		return e, nil
	}
	e := models.HabitEntry{ID: date, HabitID: habitID, Date: date, Person1: person == models.Person1}
	if person == models.Person2 {
		v := true
		e.Person2 = &v
	}
	m.entries[habitID] = append(list, e)
	return e, nil
}

func (m *memStore) DeleteHabit(ctx context.Context, id string) (int64, error) {
	if err := m.record("DeleteHabit"); err != nil {
		return 0, err
	}
	for i, h := range m.habits {
		if h.ID == id {
			m.habits = append(m.habits[:i], m.habits[i+1:]...)
			n := int64(len(m.entries[id]))
			delete(m.entries, id)
			return n, nil
		}
	}
	return 0, store.ErrHabitNotFound
}

func (m *memStore) InitializeDefaultHabit(ctx context.Context, def store.DefaultHabit) (models.InitResult, error) {
	if err := m.record("InitializeDefaultHabit"); err != nil {
		return models.InitResult{}, err
	}
	if len(m.habits) > 0 {
		return models.InitResult{Message: models.MessageAlreadyInitialized}, nil
	}
	m.habits = append(m.habits, models.Habit{
		ID:          "default",
		Name:        models.DefaultHabitName,
		Person1Name: def.Person1Name,
		Mode:        models.Duo(def.Person2Name),
		Icon:        models.DefaultHabitIcon,
	})
	return models.InitResult{Initialized: true, Message: models.MessageInitialized, HabitID: "default"}, nil
}

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, s *memStore) *Controller {
	t.Helper()
	c := NewController(s,
		WithClock(func() time.Time { return now }),
		WithDefaultHabit(store.DefaultHabit{Person1Name: "Ann", Person2Name: "Ben"}),
	)
	require.NoError(t, c.Load(context.Background()))
	return c
}

var (
	duo  = models.Habit{ID: "duo", Name: "Meditate", Person1Name: "Ann", Mode: models.Duo("Ben"), Icon: "🧘", Order: 0}
	solo = models.Habit{ID: "solo", Name: "Run", Person1Name: "Ann", Mode: models.Solo(), Icon: "🏃", Order: 1}
)

func TestLoad_ColdStartCreatesDefault(t *testing.T) {
	s := newMemStore()
	c := newTestController(t, s)

	snap := c.Render()
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, "default", snap.ActiveHabitID)
	assert.Contains(t, s.calls, "InitializeDefaultHabit")
	require.NotNil(t, snap.Active)
	assert.Len(t, snap.Active.People, 2)
	assert.Equal(t, "Ann", snap.Active.People[0].Name)
	assert.Equal(t, "Ben", snap.Active.People[1].Name)
}

func TestLoad_SelectsFirstHabit(t *testing.T) {
	s := newMemStore(duo, solo)
	c := newTestController(t, s)

	assert.Equal(t, "duo", c.Render().ActiveHabitID)
	assert.NotContains(t, s.calls, "InitializeDefaultHabit")
	assert.Equal(t, streak.Cursor{Year: 2025, Month: 2}, c.Render().Active.Month)
}

func TestLoad_StoreFailure(t *testing.T) {
	s := newMemStore(duo)
	s.failOn = "ListHabits"
	c := NewController(s)

	assert.Error(t, c.Load(context.Background()))
}

func TestSelect(t *testing.T) {
	s := newMemStore(duo, solo)
	c := newTestController(t, s)
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "solo"))
	snap := c.Render()
	assert.Equal(t, "solo", snap.ActiveHabitID)
	require.Len(t, snap.Active.People, 1, "solo habits render person1 only")
	assert.Equal(t, models.Person1, snap.Active.People[0].Person)

	assert.ErrorIs(t, c.Select(ctx, "missing"), ErrUnknownHabit)
	assert.Equal(t, "solo", c.Render().ActiveHabitID)
}

func TestCreate(t *testing.T) {
	s := newMemStore(duo)
	c := newTestController(t, s)
	ctx := context.Background()

	c.OpenCreate()
	assert.True(t, c.Render().CreateOpen)

	h, err := c.Create(ctx, store.NewHabit{Name: "  Read ", Person1Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, models.DefaultIcon, h.Icon)

	snap := c.Render()
	assert.False(t, snap.CreateOpen)
	assert.Equal(t, h.ID, snap.ActiveHabitID)
	assert.Len(t, snap.Habits, 2)
}

func TestCreate_InvalidNeverReachesStore(t *testing.T) {
	s := newMemStore(duo)
	c := newTestController(t, s)

	c.OpenCreate()
	_, err := c.Create(context.Background(), store.NewHabit{Name: "   ", Person1Name: "Ann"})
	assert.ErrorIs(t, err, store.ErrInvalidHabit)
	assert.NotContains(t, s.calls, "CreateHabit")
	assert.True(t, c.Render().CreateOpen, "modal stays open on validation error")

	c.CloseCreate()
	assert.False(t, c.Render().CreateOpen)
}

func TestToggle(t *testing.T) {
	s := newMemStore(duo)
	c := newTestController(t, s)
	ctx := context.Background()

	completed, err := c.Toggle(ctx, models.Person2)
	require.NoError(t, err)
	assert.True(t, completed)

	snap := c.Render()
	assert.Equal(t, models.Person2, snap.Celebrating)
	assert.True(t, snap.Active.People[1].CompletedToday)
	assert.Equal(t, 1, snap.Active.People[1].Streak)
	assert.Equal(t, 1, snap.Active.People[1].MonthCount)
	assert.False(t, snap.Active.People[0].CompletedToday)
	assert.True(t, snap.Active.People[1].Days[9].Completed)

	completed, err = c.Toggle(ctx, models.Person2)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, models.Person(""), c.Render().Celebrating)
	assert.False(t, c.Render().Active.People[1].CompletedToday)
}

func TestToggle_Person2OnSoloRejected(t *testing.T) {
	s := newMemStore(solo)
	c := newTestController(t, s)

	_, err := c.Toggle(context.Background(), models.Person2)
	assert.ErrorIs(t, err, store.ErrPersonNotTracked)
	assert.NotContains(t, s.calls, "ToggleEntry")
}

func TestToggleDate_RequiresEditModal(t *testing.T) {
	s := newMemStore(duo)
	c := newTestController(t, s)
	ctx := context.Background()

	_, err := c.ToggleDate(ctx, "2025-03-01", models.Person1)
	assert.ErrorIs(t, err, ErrEditClosed)

	require.NoError(t, c.OpenEdit())
	completed, err := c.ToggleDate(ctx, "2025-03-01", models.Person1)
	require.NoError(t, err)
	assert.True(t, completed)

	snap := c.Render()
	require.NotNil(t, snap.Edit)
	assert.True(t, snap.Edit.People[0].Days[0].Completed)
	assert.Equal(t, 0, snap.Active.People[0].Streak, "today is still not done")

	c.CloseEdit()
	assert.Nil(t, c.Render().Edit)
}

func TestChangeMonth(t *testing.T) {
	s := newMemStore(duo)
	c := newTestController(t, s)

	require.NoError(t, c.ChangeMonth(streak.Prev))
	require.NoError(t, c.ChangeMonth(streak.Prev))
	require.NoError(t, c.ChangeMonth(streak.Prev))
	assert.Equal(t, streak.Cursor{Year: 2024, Month: 11}, c.Render().Active.Month)
	assert.Len(t, c.Render().Active.People[0].Days, 31)

	// The edit modal has its own month
	require.NoError(t, c.OpenEdit())
	require.NoError(t, c.ChangeMonth(streak.Next))
	snap := c.Render()
	assert.Equal(t, streak.Cursor{Year: 2025, Month: 3}, snap.Edit.Month)
	assert.Equal(t, streak.Cursor{Year: 2024, Month: 11}, snap.Active.Month)

	assert.Error(t, c.ChangeMonth("up"))
}

func TestLongPressAndDelete(t *testing.T) {
	s := newMemStore(duo, solo)
	c := newTestController(t, s)
	ctx := context.Background()

	assert.ErrorIs(t, c.ConfirmDelete(ctx), ErrNoPendingDelete)
	assert.ErrorIs(t, c.LongPress("missing"), ErrUnknownHabit)

	require.NoError(t, c.LongPress("duo"))
	require.NotNil(t, c.Render().PendingDelete)
	assert.Equal(t, "Meditate", c.Render().PendingDelete.Name)

	c.CancelDelete()
	assert.Nil(t, c.Render().PendingDelete)
	assert.NotContains(t, s.calls, "DeleteHabit")

	require.NoError(t, c.LongPress("duo"))
	require.NoError(t, c.ConfirmDelete(ctx))

	snap := c.Render()
	assert.Nil(t, snap.PendingDelete)
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, "solo", snap.ActiveHabitID)
}

func TestConfirmDelete_LastHabit(t *testing.T) {
	s := newMemStore(solo)
	c := newTestController(t, s)

	require.NoError(t, c.LongPress("solo"))
	require.NoError(t, c.ConfirmDelete(context.Background()))

	snap := c.Render()
	assert.Empty(t, snap.Habits)
	assert.Equal(t, "", snap.ActiveHabitID)
	assert.Nil(t, snap.Active)

	_, err := c.Toggle(context.Background(), models.Person1)
	assert.ErrorIs(t, err, ErrNoActiveHabit)
	assert.ErrorIs(t, c.OpenEdit(), ErrNoActiveHabit)
}

func TestConfirmDelete_StoreFailureKeepsPending(t *testing.T) {
	s := newMemStore(duo)
	s.failOn = "DeleteHabit"
	c := newTestController(t, s)

	require.NoError(t, c.LongPress("duo"))
	assert.Error(t, c.ConfirmDelete(context.Background()))
	assert.NotNil(t, c.Render().PendingDelete)
}
