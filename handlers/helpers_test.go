// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
	"github.com/danielhkuo/party-vote/session"
	"github.com/danielhkuo/party-vote/testutil"
)

// client replays the session cookie across requests, like a browser.
type client struct {
	mgr    *session.Manager
	cookie *http.Cookie
}

func newManager(store recordstore.Store, cfg cliparse.Config) *session.Manager {
	return session.NewManager(store, session.FromConfig(cfg, nil))
}

func newMemoryStore() *recordstore.MemoryStore {
	return recordstore.NewMemoryStore(models.TableVotes, models.TableDedications)
}

func (c *client) do(t *testing.T, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	middleware.WithSession(c.mgr, h)(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) session(t *testing.T) *session.Session {
	t.Helper()
	sess, created := c.mgr.Resolve(c.cookie.Value)
	if created {
		t.Fatal("Expected the client's session to exist")
	}
	return sess
}

func getTestConfig() cliparse.Config {
	return testutil.GetTestConfig()
}
