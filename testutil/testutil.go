// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/db"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
)

// ErrStoreOffline is the cause wrapped by FlakyStore failures.
var ErrStoreOffline = errors.New("store offline")

// SetupTestDB creates a fresh SQLite database in a temp dir with the full
// schema and both sheets seeded.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "party.db")
	conn, err := db.Open(ctx, db.DialectSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.DialectSQLite, models.TableVotes, models.TableDedications); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// NewTestStore returns a SQLStore over a fresh SQLite database.
func NewTestStore(t *testing.T) *recordstore.SQLStore {
	t.Helper()
	return recordstore.NewSQLStore(SetupTestDB(t), db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      ":memory:",
		DatabaseType:     cliparse.DatabaseMemory,
		SessionSalt:      "test-session-salt",
		ProbePolicy:      "session",
		ConflictStrategy: "optimistic",
		MaxWriteRetries:  3,
		StoreTimeout:     time.Second,
		SessionTTL:       time.Hour,
		Env:              "development",
	}
}

// SeedTable replaces a table in store with the given rows.
func SeedTable(t *testing.T, store recordstore.Store, table string, rows ...models.Row) {
	t.Helper()

	contents := models.NewTable(table)
	contents.Rows = append(contents.Rows, rows...)
	if err := store.Replace(context.Background(), table, contents); err != nil {
		t.Fatalf("Failed to seed %s: %v", table, err)
	}
}

// FlakyStore wraps a versioned store and fails every call while offline.
type FlakyStore struct {
	Inner    recordstore.VersionedStore
	offline  atomic.Bool
	reads    atomic.Int32
	replaces atomic.Int32
}

func NewFlakyStore(inner recordstore.VersionedStore) *FlakyStore {
	return &FlakyStore{Inner: inner}
}

// NewFailingStore returns a store that is permanently unreachable.
func NewFailingStore() *FlakyStore {
	s := NewFlakyStore(recordstore.NewMemoryStore(models.TableVotes, models.TableDedications))
	s.SetOffline(true)
	return s
}

func (s *FlakyStore) SetOffline(offline bool) { s.offline.Store(offline) }
func (s *FlakyStore) Reads() int              { return int(s.reads.Load()) }
func (s *FlakyStore) Replaces() int           { return int(s.replaces.Load()) }

func (s *FlakyStore) fail(op, table string) error {
	if s.offline.Load() {
		return &recordstore.ConnectivityError{Op: op, Table: table, Err: ErrStoreOffline}
	}
	return nil
}

func (s *FlakyStore) Read(ctx context.Context, table string) (models.Table, error) {
	s.reads.Add(1)
	if err := s.fail("read", table); err != nil {
		return models.Table{}, err
	}
	return s.Inner.Read(ctx, table)
}

func (s *FlakyStore) ReadVersioned(ctx context.Context, table string) (models.Table, int64, error) {
	s.reads.Add(1)
	if err := s.fail("read", table); err != nil {
		return models.Table{}, 0, err
	}
	return s.Inner.ReadVersioned(ctx, table)
}

func (s *FlakyStore) Replace(ctx context.Context, table string, contents models.Table) error {
	s.replaces.Add(1)
	if err := s.fail("replace", table); err != nil {
		return err
	}
	return s.Inner.Replace(ctx, table, contents)
}

func (s *FlakyStore) ReplaceIfVersion(ctx context.Context, table string, contents models.Table, version int64) error {
	s.replaces.Add(1)
	if err := s.fail("replace", table); err != nil {
		return err
	}
	return s.Inner.ReplaceIfVersion(ctx, table, contents, version)
}

// BarrierStore holds the first `parties` reads until all of them have
// arrived, so concurrent writers are guaranteed to start from the same
// snapshot. Later reads pass straight through.
type BarrierStore struct {
	Inner recordstore.VersionedStore

	mu      sync.Mutex
	pending int
	release chan struct{}
}

func NewBarrierStore(inner recordstore.VersionedStore, parties int) *BarrierStore {
	return &BarrierStore{Inner: inner, pending: parties, release: make(chan struct{})}
}

func (s *BarrierStore) wait(ctx context.Context) {
	s.mu.Lock()
	if s.pending == 0 {
		s.mu.Unlock()
		return
	}
	s.pending--
	if s.pending == 0 {
		close(s.release)
	}
	s.mu.Unlock()

	select {
	case <-s.release:
	case <-ctx.Done():
	}
}

func (s *BarrierStore) Read(ctx context.Context, table string) (models.Table, error) {
	t, err := s.Inner.Read(ctx, table)
	s.wait(ctx)
	return t, err
}

func (s *BarrierStore) ReadVersioned(ctx context.Context, table string) (models.Table, int64, error) {
	t, v, err := s.Inner.ReadVersioned(ctx, table)
	s.wait(ctx)
	return t, v, err
}

func (s *BarrierStore) Replace(ctx context.Context, table string, contents models.Table) error {
	return s.Inner.Replace(ctx, table, contents)
}

func (s *BarrierStore) ReplaceIfVersion(ctx context.Context, table string, contents models.Table, version int64) error {
	return s.Inner.ReplaceIfVersion(ctx, table, contents, version)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
