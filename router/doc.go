// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers using Go 1.22+ routing patterns.

# Usage

	mgr := session.NewManager(store, session.FromConfig(cfg, log))
	mux := router.NewRouter(mgr, cfg)
	server := http.Server{Handler: middleware.CORS(cfg.AllowedOrigins)(mux)}

# Routes

Public:

	GET  /health              Health check (returns "OK")
	GET  /                    API banner

Session routes (pv_session cookie, created on first visit):

	POST /votes               Submit a vote
	GET  /votes               Full vote table
	GET  /ranking             Podium (?top=N, default 3) and full table
	POST /dedications         Leave a dedication
	GET  /dedications         Message feed, newest first
	GET  /export/{file}       votos.csv or dedicatorias.csv from the local cache
	GET  /status              Connectivity indicator and session summary

All session routes are wrapped with WithLogging and WithSession.
*/
package router
