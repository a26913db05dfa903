// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/party-vote/cache"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
)

// State is the coordinator's view of the record store.
type State int

const (
	StateUnknown State = iota
	StateUp
	StateDown
)

func (s State) String() string {
	switch s {
	case StateUp:
		return models.RemoteUp
	case StateDown:
		return models.RemoteDown
	}
	return models.RemoteUnknown
}

// Strategy selects how concurrent remote writers are reconciled.
type Strategy string

const (
	// StrategyReplace is read, append, replace. Concurrent writers can
	// lose updates.
	StrategyReplace Strategy = "replace"
	// StrategyOptimistic retries a versioned replace on conflict, when the
	// store supports it.
	StrategyOptimistic Strategy = "optimistic"
)

// ProbePolicy controls how long a probed state is trusted.
type ProbePolicy string

const (
	// PolicySession keeps the state for the life of the session.
	PolicySession ProbePolicy = "session"
	// PolicyView resets the state at the start of every request.
	PolicyView ProbePolicy = "view"
)

type Options struct {
	Strategy   Strategy
	MaxRetries int
	// Timeout bounds each remote operation; zero means no extra deadline.
	Timeout time.Duration
	Policy  ProbePolicy
	Logger  *slog.Logger
}

// WriteResult reports where a record ended up. The record is always in the
// local cache.
type WriteResult struct {
	WrittenRemotely bool
}

// Coordinator is the single gateway between a session and the record
// store. Every write lands in the local cache first; the remote copy is
// best effort, and a failing store degrades the session to cache-only mode
// without surfacing an error.
type Coordinator struct {
	store recordstore.Store
	cache *cache.LocalCache
	opts  Options
	log   *slog.Logger

	mu    sync.Mutex
	state State
}

func New(store recordstore.Store, c *cache.LocalCache, opts Options) *Coordinator {
	if opts.Strategy == "" {
		opts.Strategy = StrategyOptimistic
	}
	if opts.Policy == "" {
		opts.Policy = PolicySession
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{store: store, cache: c, opts: opts, log: log}
}

// State returns the current connectivity state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cache returns the session's local cache.
func (c *Coordinator) Cache() *cache.LocalCache {
	return c.cache
}

// BeginView starts a new probe window under PolicyView. It is a no-op
// under PolicySession.
func (c *Coordinator) BeginView() {
	if c.opts.Policy != PolicyView {
		return
	}
	c.mu.Lock()
	c.state = StateUnknown
	c.mu.Unlock()
}

func (c *Coordinator) markUp() {
	c.mu.Lock()
	prev := c.state
	c.state = StateUp
	c.mu.Unlock()

	if prev == StateDown {
		c.log.Info("remote store reachable again")
	}
}

func (c *Coordinator) markDown(op, table string, err error) {
	c.mu.Lock()
	prev := c.state
	c.state = StateDown
	c.mu.Unlock()

	if prev == StateDown {
		return
	}
	if recordstore.IsUnavailable(err) {
		c.log.Warn("remote store unavailable, degrading to local cache",
			"op", op, "table", table, "error", err)
	} else {
		c.log.Error("unexpected record store failure, degrading to local cache",
			"op", op, "table", table, "error", err)
	}
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.Timeout)
}

// Write records row in the local cache, then tries to append it to the
// remote table. It never fails.
func (c *Coordinator) Write(ctx context.Context, table string, row models.Row) WriteResult {
	c.cache.Append(table, row)

	if c.State() == StateDown {
		return WriteResult{}
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.writeRemote(ctx, table, row)
	switch {
	case err == nil:
		c.markUp()
		return WriteResult{WrittenRemotely: true}
	case errors.Is(err, recordstore.ErrVersionConflict):
		// The store answered; only the race was lost. The record stays
		// local and the session keeps using the store.
		c.markUp()
		c.log.Warn("remote write kept losing to concurrent writers, record kept locally",
			"table", table, "retries", c.opts.MaxRetries)
		return WriteResult{}
	default:
		c.markDown("write", table, err)
		return WriteResult{}
	}
}

func (c *Coordinator) writeRemote(ctx context.Context, table string, row models.Row) error {
	vs, versioned := c.store.(recordstore.VersionedStore)
	if c.opts.Strategy != StrategyOptimistic || !versioned {
		current, err := c.readRemote(ctx, table)
		if err != nil {
			return err
		}
		updated, err := appendAligned(current, row)
		if err != nil {
			return err
		}
		return c.store.Replace(ctx, table, updated)
	}

	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		current, version, err := vs.ReadVersioned(ctx, table)
		if err != nil {
			return err
		}
		if current, err = withKnownHeader(table, current); err != nil {
			return err
		}
		updated, err := appendAligned(current, row)
		if err != nil {
			return err
		}

		err = vs.ReplaceIfVersion(ctx, table, updated, version)
		if !errors.Is(err, recordstore.ErrVersionConflict) {
			return err
		}
		c.log.Debug("versioned replace conflicted, retrying",
			"table", table, "attempt", attempt+1, "version", version)
	}
	return recordstore.ErrVersionConflict
}

// Read returns the remote table when the store is reachable, otherwise the
// local snapshot. The two are never merged.
func (c *Coordinator) Read(ctx context.Context, table string) models.Table {
	if c.State() != StateDown {
		rctx, cancel := c.withTimeout(ctx)
		t, err := c.readRemote(rctx, table)
		cancel()
		if err == nil {
			c.markUp()
			return t
		}
		c.markDown("read", table, err)
	}
	return c.cache.Snapshot(table)
}

func (c *Coordinator) readRemote(ctx context.Context, table string) (models.Table, error) {
	t, err := c.store.Read(ctx, table)
	if err != nil {
		return models.Table{}, err
	}
	return withKnownHeader(table, t)
}

// withKnownHeader rejects known tables whose header lacks a required column.
// A header-less table is treated as fresh and takes the known header.
func withKnownHeader(table string, t models.Table) (models.Table, error) {
	want := models.ColumnsFor(table)
	if want == nil {
		return t, nil
	}
	if t.Name == "" {
		t.Name = table
	}
	if len(t.Columns) == 0 {
		t.Columns = want
		return t, nil
	}
	if err := models.RequireColumns(t, want); err != nil {
		return models.Table{}, &recordstore.SchemaError{Table: table, Reason: "header mismatch", Err: err}
	}
	return t, nil
}

// appendAligned appends a row given in the known column order, reordered to
// match the remote header.
func appendAligned(t models.Table, row models.Row) (models.Table, error) {
	want := models.ColumnsFor(t.Name)
	if len(t.Columns) == 0 {
		t.Columns = want
	}
	if want == nil {
		return t.Append(row), nil
	}
	if len(row) != len(want) {
		return models.Table{}, &recordstore.SchemaError{
			Table:  t.Name,
			Reason: fmt.Sprintf("row has %d cells, want %d", len(row), len(want)),
		}
	}

	aligned := make(models.Row, len(t.Columns))
	for i, col := range want {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			return models.Table{}, &recordstore.SchemaError{Table: t.Name, Reason: "missing column " + col}
		}
		aligned[idx] = row[i]
	}
	return t.Append(aligned), nil
}
