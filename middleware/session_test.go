// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/party-vote/coordinator"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
	"github.com/danielhkuo/party-vote/session"
)

func newTestManager(policy coordinator.ProbePolicy) *session.Manager {
	store := recordstore.NewMemoryStore(models.TableVotes, models.TableDedications)
	return session.NewManager(store, session.Config{
		Salt:        "test-session-salt",
		TTL:         time.Hour,
		Coordinator: coordinator.Options{Policy: policy},
	})
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestWithSession(t *testing.T) {
	mgr := newTestManager(coordinator.PolicySession)

	var seen []string
	handler := WithSession(mgr, func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok {
			t.Fatal("Expected session in context")
		}
		seen = append(seen, sess.ID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("new visitor gets a session cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/status", nil))

		c := sessionCookie(w)
		if c == nil {
			t.Fatal("Expected pv_session cookie")
		}
		if !c.HttpOnly {
			t.Error("Expected HttpOnly cookie")
		}
		if c.MaxAge != 3600 {
			t.Errorf("Expected MaxAge 3600, got %d", c.MaxAge)
		}
		if mgr.Len() != 1 {
			t.Errorf("Expected 1 session, got %d", mgr.Len())
		}
	})

	t.Run("returning visitor keeps the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/status", nil))
		cookie := sessionCookie(w)

		req := httptest.NewRequest("GET", "/votes", nil)
		req.AddCookie(cookie)
		handler(httptest.NewRecorder(), req)

		if seen[len(seen)-1] != seen[len(seen)-2] {
			t.Errorf("Expected same session, got %s and %s", seen[len(seen)-2], seen[len(seen)-1])
		}
	})

	t.Run("tampered cookie starts a new session", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/status", nil))
		cookie := sessionCookie(w)
		first := seen[len(seen)-1]

		req := httptest.NewRequest("GET", "/status", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: first + ".forged"})
		w = httptest.NewRecorder()
		handler(w, req)

		if seen[len(seen)-1] == first {
			t.Error("Expected a forged cookie to be rejected")
		}
		if sessionCookie(w).Value == cookie.Value {
			t.Error("Expected a fresh cookie value")
		}
	})
}

func TestWithSession_ViewPolicyResetsState(t *testing.T) {
	mgr := newTestManager(coordinator.PolicyView)
	sess := mgr.Create()
	sess.Coordinator.Read(httptest.NewRequest("GET", "/", nil).Context(), models.TableVotes)
	if sess.Coordinator.State() != coordinator.StateUp {
		t.Fatalf("Expected up after a read, got %s", sess.Coordinator.State())
	}

	var state coordinator.State
	handler := WithSession(mgr, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFrom(r.Context())
		state = s.Coordinator.State()
	})

	req := httptest.NewRequest("GET", "/ranking", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: mgr.CookieValue(sess)})
	handler(httptest.NewRecorder(), req)

	if state != coordinator.StateUnknown {
		t.Errorf("Expected unknown at the start of a view, got %s", state)
	}
}

func TestSessionFrom_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := SessionFrom(req.Context()); ok {
		t.Error("Expected no session in a bare context")
	}
}
