// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/party-vote/models"
)

// CreateSchema creates the sheet tables and seeds the named sheets with
// their headers. Safe to call multiple times - uses IF NOT EXISTS and only
// inserts sheets that are missing.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect Dialect, sheets ...string) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	for _, name := range sheets {
		if err := seedSheet(ctx, conn, dialect, name); err != nil {
			return fmt.Errorf("failed to seed sheet %q: %w", name, err)
		}
	}

	return nil
}

func seedSheet(ctx context.Context, conn *sql.DB, dialect Dialect, name string) error {
	var count int
	err := conn.QueryRowContext(ctx, Rebind(dialect, `
		SELECT COUNT(*) FROM sheet WHERE name = ?
	`), name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	columns, err := json.Marshal(models.ColumnsFor(name))
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, Rebind(dialect, `
		INSERT INTO sheet (name, columns, version) VALUES (?, ?, 0)
	`), name, string(columns))
	return err
}

// One statement per entry; the MySQL driver rejects multi-statement Exec
// unless the DSN opts in.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sheet (
    name VARCHAR(64) PRIMARY KEY,
    columns TEXT NOT NULL,
    version BIGINT NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS sheet_row (
    sheet_name VARCHAR(64) NOT NULL REFERENCES sheet(name) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    cells TEXT NOT NULL,
    PRIMARY KEY (sheet_name, seq)
)`,
}
