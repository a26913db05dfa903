// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the party-vote API server.

party-vote lets guests at a karaoke party score each performance, follow a
live podium and leave dedications. Every guest session keeps its own local
copy of what it submitted, so the app keeps working when the shared store
is unreachable.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-salt "..."

A .env file in the working directory is loaded first, if present.

# Configuration

Required settings:

  - SESSION_SALT (-session-salt): Secret for session cookie HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, mysql or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:party.db)
  - CONFLICT_STRATEGY (-conflict): replace or optimistic (default: optimistic)
  - PROBE_POLICY (-probe): session or view (default: session)
  - MAX_WRITE_RETRIES (-retries), STORE_TIMEOUT (-store-timeout),
    SESSION_TTL (-session-ttl), APP_ENV (-env), CONFIG_FILE (-c)

# Architecture

  - handlers: HTTP request handlers (votes, dedications, export, status)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - session: Per-guest sessions with signed cookies and idle expiry
  - services: Vote and dedication validation, ranking
  - coordinator: Remote or local-only decision per operation
  - cache: Session-scoped local tables
  - recordstore: Shared whole-table store (SQL or in-memory)
  - db: Connections and schema
  - models: Records, tables and request/response types
  - auth: Session cookie signing
  - cliparse: Configuration parsing
  - logger: slog setup

See package documentation for each component.
*/
package main
