// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /votes", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Sessions

WithSession resolves the pv_session cookie into a *session.Session (or
starts one), refreshes the cookie, calls BeginView on the session's
coordinator and stores the session in the request context:

	mux.HandleFunc("POST /votes", middleware.WithLogging(
		middleware.WithSession(mgr, h.SubmitVote)))

	sess, ok := middleware.SessionFrom(r.Context())

# CORS Middleware

Enable cross-origin requests for the configured frontend origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

Listed origins get methods GET, POST, OPTIONS with credentials, and
Content-Disposition is exposed so browsers can name CSV downloads. Other
origins get no CORS headers and their preflights are refused.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, "Invalid vote", verr.Fields)

Parse JSON request bodies:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request and session logs.
*/
package middleware
