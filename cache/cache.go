// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"sync"

	"github.com/danielhkuo/party-vote/models"
)

// LocalCache mirrors each table for one session. It is always writable and
// never fails; contents are lost when the session ends.
type LocalCache struct {
	mu     sync.Mutex
	tables map[string]*models.Table
}

func New() *LocalCache {
	return &LocalCache{tables: make(map[string]*models.Table)}
}

// table returns the named table, creating it empty on first access.
// Callers must hold c.mu.
func (c *LocalCache) table(name string) *models.Table {
	t, ok := c.tables[name]
	if !ok {
		nt := models.NewTable(name)
		t = &nt
		c.tables[name] = t
	}
	return t
}

// Append adds row at the end of the named table.
func (c *LocalCache) Append(name string, row models.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.table(name)
	t.Rows = append(t.Rows, append(models.Row(nil), row...))
}

// Snapshot returns a copy of the named table's current contents.
func (c *LocalCache) Snapshot(name string) models.Table {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.table(name).Clone()
}

// Len returns the number of rows in the named table.
func (c *LocalCache) Len(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[name]; ok {
		return len(t.Rows)
	}
	return 0
}
