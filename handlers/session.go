// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/session"
)

// currentSession returns the request's session, or writes a 500 when the
// route was registered without WithSession.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		slog.Error("handler reached without a session", "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "No session")
		return nil, false
	}
	return sess, true
}
