// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/party-vote/auth"
	"github.com/danielhkuo/party-vote/cache"
	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/coordinator"
	"github.com/danielhkuo/party-vote/recordstore"
	"github.com/danielhkuo/party-vote/services"
)

// CookieName is the cookie carrying the signed session ID.
const CookieName = "pv_session"

var ErrSessionNotFound = errors.New("session not found")

// Session is one guest's private state: a local cache of everything they
// submitted and the coordinator that decides where their reads come from.
type Session struct {
	ID          string
	CreatedAt   time.Time
	Coordinator *coordinator.Coordinator
	Votes       *services.VoteService
	Dedications *services.DedicationService

	mu       sync.Mutex
	lastSeen time.Time
}

// Cache returns the session's local cache.
func (s *Session) Cache() *cache.LocalCache {
	return s.Coordinator.Cache()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

type Config struct {
	Salt        string
	TTL         time.Duration
	Coordinator coordinator.Options
	Logger      *slog.Logger
}

// FromConfig builds manager settings from the parsed configuration.
func FromConfig(cfg cliparse.Config, log *slog.Logger) Config {
	return Config{
		Salt: cfg.SessionSalt,
		TTL:  cfg.SessionTTL,
		Coordinator: coordinator.Options{
			Strategy:   coordinator.Strategy(cfg.ConflictStrategy),
			MaxRetries: cfg.MaxWriteRetries,
			Timeout:    cfg.StoreTimeout,
			Policy:     coordinator.ProbePolicy(cfg.ProbePolicy),
			Logger:     log,
		},
		Logger: log,
	}
}

// Manager owns every live session. All sessions share one record store.
type Manager struct {
	store recordstore.Store
	cfg   Config
	log   *slog.Logger
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store recordstore.Store, cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Coordinator.Logger == nil {
		cfg.Coordinator.Logger = log
	}
	return &Manager{
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with an empty cache and an UNKNOWN
// connectivity state.
func (m *Manager) Create() *Session {
	now := m.now()
	id := uuid.New().String()
	log := m.log.With("session", id)

	opts := m.cfg.Coordinator
	opts.Logger = opts.Logger.With("session", id)
	coord := coordinator.New(m.store, cache.New(), opts)

	s := &Session{
		ID:          id,
		CreatedAt:   now,
		Coordinator: coord,
		Votes:       services.NewVoteService(coord, log),
		Dedications: services.NewDedicationService(coord, log),
		lastSeen:    now,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.Debug("session created")
	return s
}

// Get returns a live session and marks it as seen.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok || m.expired(s, now) {
		return nil, ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// Resolve returns the session named by a signed cookie value, or a fresh
// one when the value is missing, forged or expired. created reports which.
func (m *Manager) Resolve(cookieValue string) (s *Session, created bool) {
	if cookieValue != "" {
		id, err := auth.VerifySessionCookie(cookieValue, m.cfg.Salt)
		if err == nil {
			if s, err := m.Get(id); err == nil {
				return s, false
			}
		} else {
			m.log.Debug("rejected session cookie", "error", err)
		}
	}
	return m.Create(), true
}

// CookieValue returns the signed value to store in CookieName.
func (m *Manager) CookieValue(s *Session) string {
	return auth.SignSessionID(s.ID, m.cfg.Salt)
}

// TTL is the idle time after which a session is dropped.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.cfg.TTL > 0 && now.Sub(s.LastSeen()) > m.cfg.TTL
}

// Expire drops every session idle for longer than the TTL and returns how
// many were removed. Their local caches are lost.
func (m *Manager) Expire() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info("expired idle sessions", "count", n, "remaining", len(m.sessions))
	}
	return n
}

// Run expires idle sessions periodically until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.cfg.TTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Expire()
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close drops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	n := len(m.sessions)
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	m.log.Info("sessions closed", "count", n)
}
