// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
	"github.com/danielhkuo/party-vote/session"
	"github.com/danielhkuo/party-vote/testutil"
)

func newTestRouter(t *testing.T, store recordstore.Store) *http.ServeMux {
	t.Helper()
	cfg := testutil.GetTestConfig()
	mgr := session.NewManager(store, session.FromConfig(cfg, nil))
	t.Cleanup(mgr.Close)
	return NewRouter(mgr, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t, testutil.NewTestStore(t))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t, testutil.NewTestStore(t))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "party-vote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t, testutil.NewTestStore(t))

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/votes"},
		{"GET", "/votes"},
		{"GET", "/ranking"},
		{"POST", "/dedications"},
		{"GET", "/dedications"},
		{"GET", "/export/votos.csv"},
		{"GET", "/status"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// 400 is fine for body-less POSTs; the route still matched
			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestRouter(t, testutil.NewTestStore(t))

	req := httptest.NewRequest("GET", "/polls", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestRouter(t, testutil.NewTestStore(t))

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"DELETE a vote", "DELETE", "/votes", http.StatusMethodNotAllowed},
		{"PUT a dedication", "PUT", "/dedications", http.StatusMethodNotAllowed},
		{"POST to ranking", "POST", "/ranking", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

// TestPartyFlow drives a guest through voting, the podium, a dedication and
// an export, all on one session cookie
func TestPartyFlow(t *testing.T) {
	store := testutil.NewTestStore(t)
	mux := newTestRouter(t, store)

	var cookie *http.Cookie
	do := func(req *http.Request) *httptest.ResponseRecorder {
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		for _, c := range w.Result().Cookies() {
			if c.Name == session.CookieName {
				cookie = c
			}
		}
		return w
	}

	votes := []models.SubmitVoteRequest{
		{Performer: "A", Scores: []int{2, 2, 2, 2, 2}},
		{Performer: "a ", Scores: []int{4, 4, 4, 4, 4}},
		{Performer: "B", Scores: []int{3, 3, 3, 3, 3}},
	}
	for _, v := range votes {
		w := do(testutil.MakeRequest("POST", "/votes", v, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w := do(testutil.MakeRequest("GET", "/ranking", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var ranking models.RankingResponse
	testutil.AssertJSON(t, w, &ranking)

	if len(ranking.Podium) != 2 {
		t.Fatalf("Expected 2 performers, got %+v", ranking.Podium)
	}
	// A and B both average 15; A was voted first
	if ranking.Podium[0].PerformerName != "A" || ranking.Podium[0].VoteCount != 2 {
		t.Errorf("Expected A first with 2 votes, got %+v", ranking.Podium[0])
	}
	if ranking.Podium[1].PerformerName != "B" {
		t.Errorf("Expected B second, got %+v", ranking.Podium[1])
	}

	w = do(testutil.MakeRequest("POST", "/dedications", models.SubmitDedicationRequest{Message: "¡Felices 30!"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do(testutil.MakeRequest("GET", "/export/dedicatorias.csv", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != "Nombre,Mensaje\nAnonymous,¡Felices 30!\n" {
		t.Errorf("Unexpected export %q", got)
	}

	w = do(testutil.MakeRequest("GET", "/status", nil, nil))
	var status models.StatusResponse
	testutil.AssertJSON(t, w, &status)
	if status.Remote != models.RemoteUp || status.LocalVotes != 3 || status.LocalDedications != 1 {
		t.Errorf("Unexpected status %+v", status)
	}
}
