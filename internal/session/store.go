package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store persists at most one Session per session ID. Implementations must be
// safe for concurrent use. Load returns ErrNotFound when the slot is empty;
// no token-freshness validation is performed locally, since expiry is only
// discovered via a rejected downstream request.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Clear(ctx context.Context, id string) error
}

// entry tracks a stored session and its last access time for expiry.
type entry struct {
	session    *Session
	lastAccess time.Time
}

// MemoryStore is an in-memory Store with sliding-window expiry. A background
// goroutine evicts sessions that have not been touched within the TTL.
type MemoryStore struct {
	sessions      map[string]*entry
	mu            sync.RWMutex
	ttl           time.Duration
	cleanupTicker *time.Ticker
	cleanupDone   chan bool
	logger        *slog.Logger
}

// DefaultSessionTTL is the idle lifetime of a stored session.
const DefaultSessionTTL = 24 * time.Hour

// NewMemoryStore creates a MemoryStore with the default TTL and logger.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithLogger(DefaultSessionTTL, slog.Default())
}

// NewMemoryStoreWithLogger creates a MemoryStore with a custom TTL and logger.
func NewMemoryStoreWithLogger(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}

	m := &MemoryStore{
		sessions:      make(map[string]*entry),
		ttl:           ttl,
		cleanupTicker: time.NewTicker(10 * time.Minute),
		cleanupDone:   make(chan bool),
		logger:        logger,
	}

	// Start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// Load returns the session stored under id, refreshing its access time.
func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastAccess = time.Now()
	return e.session, nil
}

// Save stores the session under id, replacing any existing record.
func (m *MemoryStore) Save(_ context.Context, id string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = &entry{
		session:    s,
		lastAccess: time.Now(),
	}
	return nil
}

// Clear removes the session stored under id. Clearing an empty slot is not
// an error.
func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupExpiredSessions periodically removes sessions past their idle TTL.
func (m *MemoryStore) cleanupExpiredSessions() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.mu.Lock()
			now := time.Now()
			expiredCount := 0
			for id, e := range m.sessions {
				if now.Sub(e.lastAccess) > m.ttl {
					delete(m.sessions, id)
					expiredCount++
				}
			}
			m.mu.Unlock()
			if expiredCount > 0 {
				m.logger.Info("Cleaned up expired sessions", "count", expiredCount)
			}
		case <-m.cleanupDone:
			return
		}
	}
}

// Stop stops the session cleanup goroutine.
func (m *MemoryStore) Stop() {
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
	}
	if m.cleanupDone != nil {
		close(m.cleanupDone)
	}
}
