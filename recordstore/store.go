// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/party-vote/models"
)

var (
	// ErrVersionConflict is returned by ReplaceIfVersion when the table
	// changed after it was read.
	ErrVersionConflict = errors.New("table version conflict")
	// ErrUnknownTable is wrapped in a SchemaError when a table does not exist.
	ErrUnknownTable = errors.New("unknown table")
)

// Store is a named, schema-less tabular store. Reads and writes are always
// whole-table; there is no locking or partial update.
type Store interface {
	// Read returns the full current contents of a table.
	Read(ctx context.Context, table string) (models.Table, error)
	// Replace atomically overwrites the entire table.
	Replace(ctx context.Context, table string, contents models.Table) error
}

// VersionedStore is implemented by stores that can detect concurrent
// replacement. Version numbers increase on every successful replace.
type VersionedStore interface {
	Store
	ReadVersioned(ctx context.Context, table string) (models.Table, int64, error)
	ReplaceIfVersion(ctx context.Context, table string, contents models.Table, version int64) error
}

// ConnectivityError means the store could not be reached or refused the
// operation (network, auth, driver failure).
type ConnectivityError struct {
	Op    string
	Table string
	Err   error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("record store %s %q: %v", e.Op, e.Table, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// SchemaError means the table is missing or its contents are malformed.
type SchemaError struct {
	Table  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record store schema %q: %s: %v", e.Table, e.Reason, e.Err)
	}
	return fmt.Sprintf("record store schema %q: %s", e.Table, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err means the store should be treated as
// unreachable for the rest of the probe window.
func IsUnavailable(err error) bool {
	var ce *ConnectivityError
	var se *SchemaError
	return errors.As(err, &ce) || errors.As(err, &se)
}

func unreachable(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnectivityError{Op: op, Table: table, Err: err}
}
