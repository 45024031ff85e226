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
)

func TestToggleMeditation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewLegacyHandler(db, testutil.GetTestConfig())
	handler.now = func() time.Time { return testutil.FixedNow }

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		want           *models.Meditation
	}{
		{
			name:           "new row sets both flags",
			body:           models.ToggleMeditationRequest{Person: models.Person2},
			expectedStatus: http.StatusOK,
			want:           &models.Meditation{Date: "2025-03-10", Person1: false, Person2: true},
		},
		{
			name:           "flips only the named person",
			body:           models.ToggleMeditationRequest{Date: "2025-03-10", Person: models.Person1},
			expectedStatus: http.StatusOK,
			want:           &models.Meditation{Date: "2025-03-10", Person1: true, Person2: true},
		},
		{
			name:           "flips back",
			body:           models.ToggleMeditationRequest{Date: "2025-03-10", Person: models.Person2},
			expectedStatus: http.StatusOK,
			want:           &models.Meditation{Date: "2025-03-10", Person1: true, Person2: false},
		},
		{
			name:           "invalid person",
			body:           map[string]string{"person": "both"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid date",
			body:           models.ToggleMeditationRequest{Date: "10/03/2025", Person: models.Person1},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/meditations/toggle", tt.body, nil)
			w := httptest.NewRecorder()

			handler.ToggleMeditation(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.want == nil || w.Code != http.StatusOK {
				return
			}

			var got models.Meditation
			testutil.AssertJSON(t, w, &got)
			if got.Date != tt.want.Date || got.Person1 != tt.want.Person1 || got.Person2 != tt.want.Person2 {
				t.Errorf("Expected %+v, got %+v", *tt.want, got)
			}
		})
	}

	if n := testutil.CountRows(t, db, "meditation"); n != 1 {
		t.Errorf("Expected one meditation row, got %d", n)
	}
}

func TestListMeditations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewLegacyHandler(db, testutil.GetTestConfig())

	testutil.AddTestMeditation(t, db, "2025-03-09", true, false)
	testutil.AddTestMeditation(t, db, "2025-03-10", false, true)

	w := httptest.NewRecorder()
	handler.ListMeditations(w, testutil.MakeRequest("GET", "/meditations", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListMeditationsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Meditations) != 2 {
		t.Errorf("Expected 2 meditations, got %d", len(resp.Meditations))
	}
}
