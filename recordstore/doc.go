// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package recordstore is the durable, shared table store behind the app.

# Contract

A Store reads and replaces whole tables by name:

	t, err := store.Read(ctx, models.TableVotes)
	err = store.Replace(ctx, models.TableVotes, t.Append(row))

There is no locking and no partial update, so two writers that read the
same snapshot will overwrite each other (lost update). Stores that also
implement VersionedStore let callers detect this:

	t, v, err := store.ReadVersioned(ctx, name)
	err = store.ReplaceIfVersion(ctx, name, t.Append(row), v) // ErrVersionConflict

# Errors

Every failure is typed:

  - *ConnectivityError: unreachable, driver or transaction failure
  - *SchemaError: table missing (wraps ErrUnknownTable) or malformed
  - ErrVersionConflict: a versioned replace lost the race

IsUnavailable reports whether an error should take the store offline.

# Implementations

  - SQLStore: PostgreSQL, SQLite or MySQL via database/sql (see package db)
  - MemoryStore: process-wide, mutex-guarded, for DATABASE_TYPE=memory and tests
*/
package recordstore
