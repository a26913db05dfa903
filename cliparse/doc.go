// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres, mysql or memory (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: file:party.db)
  - SessionSalt: Secret for session cookie HMAC (required)
  - ProbePolicy: session or view (default: session)
  - ConflictStrategy: replace or optimistic (default: optimistic)
  - MaxWriteRetries: Retries for a conflicted optimistic write (default: 3)
  - StoreTimeout: Deadline per record store call (default: 5s)
  - SessionTTL: Idle time before a session is dropped (default: 12h)
  - Env: development or production (default: production)
  - AllowedOrigins: Browser origins allowed to call the API (default: none)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-c              Config file
	-probe          Probe policy
	-conflict       Conflict strategy
	-retries        Max write retries
	-store-timeout  Store call timeout
	-session-ttl    Session idle TTL
	-env            Environment
	-session-salt   Session salt
	-cors-origins   Allowed browser origins, comma separated

# Environment Variables

Flags fall back to environment variables (read through viper), then to
the optional config file, then to defaults:

	PORT, DATABASE_URL, DATABASE_TYPE, SESSION_SALT, PROBE_POLICY,
	CONFLICT_STRATEGY, MAX_WRITE_RETRIES, STORE_TIMEOUT, SESSION_TTL,
	APP_ENV, CONFIG_FILE, CORS_ORIGINS

Config file keys are the lowercase variable names (port, database_url, ...).
LoadDotEnv loads a .env file first, if present.

CLI flags take precedence over environment variables.
*/
package cliparse
