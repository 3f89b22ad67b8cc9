// Package memory implements the session store as an in-process map with
// per-user mutexes. This is the default backend: the bot consumes a single
// long-poll stream, so sessions do not need to survive restarts.
package memory

import (
	"sync"
	"time"

	"tablebot/internal/domain"
	"tablebot/internal/repository"
)

// SessionStore implements repository.SessionStore
type SessionStore struct {
	timeout time.Duration
	locks   *repository.KeyMutex

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty store with the given idle timeout
func NewSessionStore(timeout time.Duration) *SessionStore {
	return &SessionStore{
		timeout:  timeout,
		locks:    repository.NewKeyMutex(),
		sessions: make(map[string]*domain.Session),
	}
}

// Acquire takes the per-user lock
func (s *SessionStore) Acquire(userID string) (release func()) {
	return s.locks.Lock(userID)
}

// Get returns a copy of the user's session, or ErrNotFound
func (s *SessionStore) Get(userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySession(sess), nil
}

// Create stores a new session. A live session for the same user causes
// ErrSessionExists; an expired leftover is silently replaced.
func (s *SessionStore) Create(sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sess.UserID]; ok {
		if !existing.Expired(sess.LastActiveAt, s.timeout) {
			return repository.ErrSessionExists
		}
	}
	s.sessions[sess.UserID] = copySession(sess)
	return nil
}

// Update atomically replaces the session keyed by user id
func (s *SessionStore) Update(sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.UserID]; !ok {
		return repository.ErrNotFound
	}
	s.sessions[sess.UserID] = copySession(sess)
	return nil
}

// Delete removes the user's session
func (s *SessionStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.sessions, userID)
	return nil
}

// List returns copies of all stored sessions
func (s *SessionStore) List() ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, copySession(sess))
	}
	return out, nil
}

// Sweep evicts every session idle longer than the timeout. Each eviction
// takes the per-user lock first so the sweep cannot race an in-flight
// message from that user.
func (s *SessionStore) Sweep(now time.Time) (int, error) {
	s.mu.RLock()
	candidates := make([]string, 0)
	for id, sess := range s.sessions {
		if sess.Expired(now, s.timeout) {
			candidates = append(candidates, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range candidates {
		release := s.locks.Lock(id)

		s.mu.Lock()
		// Re-check under the user lock: a message may have landed between
		// the snapshot and now.
		if sess, ok := s.sessions[id]; ok && sess.Expired(now, s.timeout) {
			delete(s.sessions, id)
			removed++
		}
		s.mu.Unlock()

		release()
	}
	return removed, nil
}

func copySession(s *domain.Session) *domain.Session {
	dup := *s
	dup.Answers.Addons = append([]string(nil), s.Answers.Addons...)
	return &dup
}
