// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/danielhkuo/party-vote/db"
	"github.com/danielhkuo/party-vote/models"
)

// SQLStore keeps each table as a sheet header plus one JSON-encoded row per
// record. Replacement happens in a single transaction.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dialect, query)
}

// Read returns the full table.
func (s *SQLStore) Read(ctx context.Context, table string) (models.Table, error) {
	t, _, err := s.ReadVersioned(ctx, table)
	return t, err
}

// ReadVersioned returns the full table and its version counter.
func (s *SQLStore) ReadVersioned(ctx context.Context, table string) (models.Table, int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Table{}, 0, unreachable("read", table, err)
	}
	defer tx.Rollback()

	var rawColumns string
	var version int64
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT columns, version FROM sheet WHERE name = ?
	`), table).Scan(&rawColumns, &version)

	if err == sql.ErrNoRows {
		return models.Table{}, 0, &SchemaError{Table: table, Reason: "table not found", Err: ErrUnknownTable}
	}
	if err != nil {
		return models.Table{}, 0, unreachable("read", table, err)
	}

	var columns []string
	if err := json.Unmarshal([]byte(rawColumns), &columns); err != nil {
		return models.Table{}, 0, &SchemaError{Table: table, Reason: "malformed header", Err: err}
	}

	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT cells FROM sheet_row WHERE sheet_name = ? ORDER BY seq
	`), table)
	if err != nil {
		return models.Table{}, 0, unreachable("read", table, err)
	}
	defer rows.Close()

	result := models.Table{Name: table, Columns: columns, Rows: []models.Row{}}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return models.Table{}, 0, unreachable("read", table, err)
		}
		var r models.Row
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return models.Table{}, 0, &SchemaError{Table: table, Reason: "malformed row", Err: err}
		}
		result.Rows = append(result.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return models.Table{}, 0, unreachable("read", table, err)
	}

	return result, version, nil
}

// Replace overwrites the table unconditionally (last writer wins).
func (s *SQLStore) Replace(ctx context.Context, table string, contents models.Table) error {
	return s.replace(ctx, table, contents, -1)
}

// ReplaceIfVersion overwrites the table only if its version still matches.
func (s *SQLStore) ReplaceIfVersion(ctx context.Context, table string, contents models.Table, version int64) error {
	return s.replace(ctx, table, contents, version)
}

func (s *SQLStore) replace(ctx context.Context, table string, contents models.Table, version int64) error {
	columns, err := json.Marshal(contents.Columns)
	if err != nil {
		return &SchemaError{Table: table, Reason: "unencodable header", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unreachable("replace", table, err)
	}
	defer tx.Rollback()

	// Bumping the version first takes the row lock, so a concurrent
	// versioned writer re-evaluates its WHERE clause against our version.
	var res sql.Result
	if version >= 0 {
		res, err = tx.ExecContext(ctx, s.q(`
			UPDATE sheet SET columns = ?, version = version + 1
			WHERE name = ? AND version = ?
		`), string(columns), table, version)
	} else {
		res, err = tx.ExecContext(ctx, s.q(`
			UPDATE sheet SET columns = ?, version = version + 1
			WHERE name = ?
		`), string(columns), table)
	}
	if err != nil {
		return unreachable("replace", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unreachable("replace", table, err)
	}
	if affected == 0 {
		return s.missingOrConflict(ctx, tx, table)
	}

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM sheet_row WHERE sheet_name = ?`), table); err != nil {
		return unreachable("replace", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.q(`
		INSERT INTO sheet_row (sheet_name, seq, cells) VALUES (?, ?, ?)
	`))
	if err != nil {
		return unreachable("replace", table, err)
	}
	defer stmt.Close()

	for i, r := range contents.Rows {
		cells, err := json.Marshal(r)
		if err != nil {
			return &SchemaError{Table: table, Reason: "unencodable row", Err: err}
		}
		if _, err := stmt.ExecContext(ctx, table, i, string(cells)); err != nil {
			return unreachable("replace", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unreachable("replace", table, err)
	}

	return nil
}

func (s *SQLStore) missingOrConflict(ctx context.Context, tx *sql.Tx, table string) error {
	var one int
	err := tx.QueryRowContext(ctx, s.q(`SELECT 1 FROM sheet WHERE name = ?`), table).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return &SchemaError{Table: table, Reason: "table not found", Err: ErrUnknownTable}
	}
	if err != nil {
		return unreachable("replace", table, err)
	}
	return ErrVersionConflict
}
