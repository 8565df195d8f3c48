// Package session keeps the per-upload working state in memory: the raw
// table, the user's column mapping, and the active filters. Sessions are
// transient; they expire with their TTL or with the process. Nothing is
// persisted anywhere.
package session

import (
	"sync"
	"time"

	"salesboard/domain/core"
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
	"salesboard/internal/pipeline"
)

// Session is the explicit context object one upload flows through. Handlers
// read and write it instead of any ambient global state.
type Session struct {
	ID       core.SessionID        `json:"id"`
	Filename string                `json:"filename"`
	Raw      *table.Table          `json:"-"`
	Mapping  *schema.ColumnMapping `json:"-"`
	Filters  pipeline.Filters      `json:"filters"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request builds the pipeline request for this session's current state
func (s *Session) Request() pipeline.Request {
	mapping := s.Mapping
	if mapping == nil {
		mapping = schema.NewColumnMapping()
	}
	return pipeline.Request{
		Raw:     s.Raw,
		Mapping: mapping,
		Filters: s.Filters,
	}
}

// Store is an in-memory session registry with TTL-based expiry
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
	ttl      time.Duration
	max      int
	logger   *internal.Logger
}

// NewStore creates a session store. max bounds the number of live sessions;
// the oldest session is evicted when the bound is hit.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[core.SessionID]*Session),
		ttl:      ttl,
		max:      max,
		logger:   internal.DefaultLogger,
	}
}

// Create registers a new session around a freshly uploaded table
func (s *Store) Create(filename string, raw *table.Table) *Session {
	now := time.Now()
	sess := &Session{
		ID:        core.SessionID(core.NewID()),
		Filename:  filename,
		Raw:       raw,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
	s.sessions[sess.ID] = sess
	s.logger.Info("[SessionStore] created session %s for %q (%d rows)",
		sess.ID, filename, raw.RowCount())
	return sess
}

// Get returns a live session or core.ErrSessionNotFound
func (s *Store) Get(id core.SessionID) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(sess, time.Now()) {
		return nil, core.ErrSessionNotFound
	}
	return sess, nil
}

// Touch updates a session's modification time after a state change
func (s *Store) Touch(sess *Session) {
	s.mu.Lock()
	sess.UpdatedAt = time.Now()
	s.mu.Unlock()
}

// Delete removes a session explicitly (re-upload replaces the old session)
func (s *Store) Delete(id core.SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// expired reports whether a session has outlived its TTL
func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}

// evictLocked drops expired sessions and, if the store is still full, the
// oldest live one. Caller holds the write lock.
func (s *Store) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
	if s.max <= 0 || len(s.sessions) < s.max {
		return
	}
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.UpdatedAt.Before(oldest.UpdatedAt) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
		s.logger.Warn("[SessionStore] evicted oldest session %s", oldest.ID)
	}
}
