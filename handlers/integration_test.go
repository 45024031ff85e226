// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/testutil"
	"github.com/danielhkuo/habitpair/view"
)

// TestFullHabitWorkflow tests the complete end-to-end workflow:
// 1. Migrate legacy meditations into the default habit
// 2. Create a second habit
// 3. Toggle entries for both persons over three days
// 4. Render the month view and check streaks
// 5. Delete the second habit
func TestFullHabitWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	fixed := func() time.Time { return testutil.FixedNow }
	habitHandler := NewHabitHandler(db, cfg)
	habitHandler.now = fixed
	entryHandler := NewEntryHandler(db, cfg)
	entryHandler.now = fixed

	// Step 1: Initialize from legacy data
	testutil.AddTestMeditation(t, db, "2025-03-08", true, true)

	w := httptest.NewRecorder()
	habitHandler.InitializeDefaultHabit(w, testutil.MakeRequest("POST", "/habits/initialize", nil, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Initialize failed: %d - %s", w.Code, w.Body.String())
	}

	var initRes models.InitResult
	testutil.AssertJSON(t, w, &initRes)
	if !initRes.Initialized || initRes.MigratedEntries != 1 {
		t.Fatalf("Step 1 - Unexpected init result: %+v", initRes)
	}
	defaultID := initRes.HabitID
	t.Logf("Step 1 - Default habit: %s", defaultID)

	// Step 2: Create a solo habit
	w = httptest.NewRecorder()
	habitHandler.CreateHabit(w, testutil.MakeRequest("POST", "/habits", models.CreateHabitRequest{
		Name:        "Stretch",
		Person1Name: "Alice",
	}, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create habit failed: %d - %s", w.Code, w.Body.String())
	}

	var created models.CreateHabitResponse
	testutil.AssertJSON(t, w, &created)
	soloID := created.HabitID

	// Step 3: Toggle entries
	toggles := []struct {
		habitID string
		date    string
		person  models.Person
	}{
		{defaultID, "2025-03-09", models.Person1},
		{defaultID, "2025-03-10", models.Person1},
		{defaultID, "2025-03-10", models.Person2},
		{soloID, "2025-03-10", models.Person1},
	}
	for _, tg := range toggles {
		w := toggle(entryHandler, tg.habitID, models.ToggleEntryRequest{Date: tg.date, Person: tg.person})
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Toggle %s/%s failed: %d - %s", tg.date, tg.person, w.Code, w.Body.String())
		}
	}

	// Step 4: Render
	req := testutil.MakeRequest("GET", "/habits/"+defaultID+"/view", nil, nil)
	req.SetPathValue("id", defaultID)
	w = httptest.NewRecorder()
	habitHandler.GetHabitView(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - View failed: %d - %s", w.Code, w.Body.String())
	}

	var v view.HabitView
	testutil.AssertJSON(t, w, &v)
	if len(v.People) != 2 {
		t.Fatalf("Step 4 - Expected two people, got %d", len(v.People))
	}
	// 03-08 migrated for both, 03-09 person1 only, 03-10 both
	if v.People[0].Streak != 3 {
		t.Errorf("Step 4 - Expected person1 streak 3, got %d", v.People[0].Streak)
	}
	if v.People[1].Streak != 1 {
		t.Errorf("Step 4 - Expected person2 streak 1, got %d", v.People[1].Streak)
	}
	if v.People[0].MonthCount != 3 || v.People[1].MonthCount != 2 {
		t.Errorf("Step 4 - Unexpected month counts: %d, %d", v.People[0].MonthCount, v.People[1].MonthCount)
	}

	// Step 5: Delete the solo habit
	req = testutil.MakeRequest("DELETE", "/habits/"+soloID, nil, nil)
	req.SetPathValue("id", soloID)
	w = httptest.NewRecorder()
	habitHandler.DeleteHabit(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Delete failed: %d - %s", w.Code, w.Body.String())
	}

	var deleted models.DeleteHabitResponse
	testutil.AssertJSON(t, w, &deleted)
	if deleted.DeletedEntries != 1 {
		t.Errorf("Step 5 - Expected 1 deleted entry, got %d", deleted.DeletedEntries)
	}

	w = httptest.NewRecorder()
	habitHandler.ListHabits(w, testutil.MakeRequest("GET", "/habits", nil, nil))
	var list models.ListHabitsResponse
	testutil.AssertJSON(t, w, &list)
	if len(list.Habits) != 1 || list.Habits[0].ID != defaultID {
		t.Errorf("Step 5 - Expected only the default habit to remain, got %+v", list.Habits)
	}
}
