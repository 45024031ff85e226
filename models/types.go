package models

import (
	"encoding/json"
	"time"
)

// Person identifies which tracked person a completion flag belongs to
type Person string

const (
	Person1 Person = "person1"
	Person2 Person = "person2"
)

// Valid reports whether p is one of the two known persons
func (p Person) Valid() bool {
	return p == Person1 || p == Person2
}

// Habit mode constants (JSON "mode" field)
const (
	ModeSolo = "solo"
	ModeDuo  = "duo"
)

// Defaults used by habit creation and the legacy migration
const (
	DefaultIcon               = "💪"
	DefaultHabitName          = "Meditation"
	DefaultHabitIcon          = "🧘"
	MessageAlreadyInitialized = "Habits already initialized"
	MessageInitialized        = "Default habit initialized"
)

// HabitMode says whether a habit tracks one person or two.
// The zero value is Solo.
type HabitMode struct {
	person2Name string
}

func Solo() HabitMode {
	return HabitMode{}
}

func Duo(person2Name string) HabitMode {
	return HabitMode{person2Name: person2Name}
}

// ModeFor returns Duo when name is non-empty, Solo otherwise
func ModeFor(person2Name string) HabitMode {
	if person2Name == "" {
		return Solo()
	}
	return Duo(person2Name)
}

func (m HabitMode) IsDuo() bool {
	return m.person2Name != ""
}

// Person2Name returns the second person's name and whether one is tracked
func (m HabitMode) Person2Name() (string, bool) {
	return m.person2Name, m.person2Name != ""
}

// Tracks reports whether the habit has a completion flag for p
func (m HabitMode) Tracks(p Person) bool {
	switch p {
	case Person1:
		return true
	case Person2:
		return m.IsDuo()
	}
	return false
}

// Persons lists the tracked persons in display order
func (m HabitMode) Persons() []Person {
	if m.IsDuo() {
		return []Person{Person1, Person2}
	}
	return []Person{Person1}
}

func (m HabitMode) String() string {
	if m.IsDuo() {
		return ModeDuo
	}
	return ModeSolo
}

// Request types

type CreateHabitRequest struct {
	Name        string `json:"name"`
	Person1Name string `json:"person1_name"`
	Person2Name string `json:"person2_name,omitempty"`
	Icon        string `json:"icon"`
}

// Date is optional and defaults to today in the server's time zone
type ToggleEntryRequest struct {
	Date   string `json:"date,omitempty"`
	Person Person `json:"person"`
}

type ToggleMeditationRequest struct {
	Date   string `json:"date,omitempty"`
	Person Person `json:"person"`
}

// Response types

type ListHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type CreateHabitResponse struct {
	HabitID string `json:"habit_id"`
	Habit   Habit  `json:"habit"`
}

type ListEntriesResponse struct {
	HabitID string       `json:"habit_id"`
	Entries []HabitEntry `json:"entries"`
}

type ToggleEntryResponse struct {
	Entry        HabitEntry `json:"entry"`
	WasCompleted bool       `json:"was_completed"`
	Completed    bool       `json:"completed"`
}

type InitResult struct {
	Initialized     bool   `json:"initialized"`
	Message         string `json:"message"`
	HabitID         string `json:"habit_id,omitempty"`
	MigratedEntries int    `json:"migrated_entries"`
}

type DeleteHabitResponse struct {
	HabitID        string `json:"habit_id"`
	DeletedEntries int64  `json:"deleted_entries"`
}

type ListMeditationsResponse struct {
	Meditations []Meditation `json:"meditations"`
}

// Domain types

type Habit struct {
	ID          string
	Name        string
	Person1Name string
	Mode        HabitMode
	Icon        string
	Order       int
	CreatedAt   time.Time
}

type habitJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Person1Name string    `json:"person1_name"`
	Person2Name string    `json:"person2_name,omitempty"`
	Mode        string    `json:"mode"`
	Icon        string    `json:"icon"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h Habit) MarshalJSON() ([]byte, error) {
	p2, _ := h.Mode.Person2Name()
	return json.Marshal(habitJSON{
		ID:          h.ID,
		Name:        h.Name,
		Person1Name: h.Person1Name,
		Person2Name: p2,
		Mode:        h.Mode.String(),
		Icon:        h.Icon,
		Order:       h.Order,
		CreatedAt:   h.CreatedAt,
	})
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	var raw habitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = Habit{
		ID:          raw.ID,
		Name:        raw.Name,
		Person1Name: raw.Person1Name,
		Mode:        ModeFor(raw.Person2Name),
		Icon:        raw.Icon,
		Order:       raw.Order,
		CreatedAt:   raw.CreatedAt,
	}
	return nil
}

// HabitEntry is one day's completion record for a habit.
// Person2 is nil when it was never set.
type HabitEntry struct {
	ID      string `json:"id"`
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	Person1 bool   `json:"person1"`
	Person2 *bool  `json:"person2,omitempty"`
}

// Completed reports the completion flag for p. A nil Person2 reads as false.
func (e HabitEntry) Completed(p Person) bool {
	switch p {
	case Person1:
		return e.Person1
	case Person2:
		return e.Person2 != nil && *e.Person2
	}
	return false
}

// Meditation is a row of the legacy single-habit table
type Meditation struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Person1 bool   `json:"person1"`
	Person2 bool   `json:"person2"`
}

func (m Meditation) Completed(p Person) bool {
	switch p {
	case Person1:
		return m.Person1
	case Person2:
		return m.Person2
	}
	return false
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
