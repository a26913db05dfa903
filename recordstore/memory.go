// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recordstore

import (
	"context"
	"sync"

	"github.com/danielhkuo/party-vote/models"
)

type memoryTable struct {
	contents models.Table
	version  int64
}

// MemoryStore is a process-wide in-memory Store. It is shared by every
// session, like a real remote store would be.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
}

// NewMemoryStore creates a store holding empty tables with the given names.
func NewMemoryStore(tables ...string) *MemoryStore {
	s := &MemoryStore{tables: make(map[string]*memoryTable)}
	for _, name := range tables {
		s.tables[name] = &memoryTable{contents: models.NewTable(name)}
	}
	return s
}

// Read returns a copy of the table.
func (s *MemoryStore) Read(ctx context.Context, table string) (models.Table, error) {
	t, _, err := s.ReadVersioned(ctx, table)
	return t, err
}

// ReadVersioned returns a copy of the table and its current version.
func (s *MemoryStore) ReadVersioned(ctx context.Context, table string) (models.Table, int64, error) {
	if err := ctx.Err(); err != nil {
		return models.Table{}, 0, unreachable("read", table, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	mt, ok := s.tables[table]
	if !ok {
		return models.Table{}, 0, &SchemaError{Table: table, Reason: "table not found", Err: ErrUnknownTable}
	}
	return mt.contents.Clone(), mt.version, nil
}

// Replace overwrites the table unconditionally.
func (s *MemoryStore) Replace(ctx context.Context, table string, contents models.Table) error {
	return s.replace(ctx, table, contents, -1)
}

// ReplaceIfVersion overwrites the table only if it is still at version.
func (s *MemoryStore) ReplaceIfVersion(ctx context.Context, table string, contents models.Table, version int64) error {
	return s.replace(ctx, table, contents, version)
}

func (s *MemoryStore) replace(ctx context.Context, table string, contents models.Table, version int64) error {
	if err := ctx.Err(); err != nil {
		return unreachable("replace", table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mt, ok := s.tables[table]
	if !ok {
		return &SchemaError{Table: table, Reason: "table not found", Err: ErrUnknownTable}
	}
	if version >= 0 && mt.version != version {
		return ErrVersionConflict
	}

	c := contents.Clone()
	c.Name = table
	mt.contents = c
	mt.version++
	return nil
}
