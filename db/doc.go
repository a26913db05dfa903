// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL backend and manages the sheet schema that the
record store is built on.

# Dialects

	conn, err := db.Open(ctx, db.DialectPostgres, url) // lib/pq
	conn, err := db.Open(ctx, db.DialectSQLite, url)   // modernc.org/sqlite
	conn, err := db.Open(ctx, db.DialectMySQL, dsn)    // go-sql-driver/mysql

Queries are written with ? placeholders and passed through Rebind.

# Schema

CreateSchema creates two tables and seeds the requested sheets:

  - sheet: one row per named table (header as a JSON array, version counter)
  - sheet_row: one row per record (cells as a JSON array, ordered by seq)

Deleting a sheet cascades to its rows. The version counter is bumped on
every replace and drives optimistic concurrency in the record store.
*/
package db
