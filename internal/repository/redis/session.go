// Package redis implements the session store on a Redis server, for
// deployments where sessions should survive bot restarts. Values are JSON
// documents with a TTL equal to the idle timeout, so Redis itself evicts
// abandoned sessions; Sweep only mops up finished ones. Per-user mutual
// exclusion stays process-local, which is sound because a single bot
// process consumes the message stream.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tablebot/internal/domain"
	"tablebot/internal/repository"
)

const keyPrefix = "session:"

// SessionStore implements repository.SessionStore on Redis
type SessionStore struct {
	client  *goredis.Client
	timeout time.Duration
	locks   *repository.KeyMutex
}

// NewSessionStore wraps an existing Redis client
func NewSessionStore(client *goredis.Client, timeout time.Duration) *SessionStore {
	return &SessionStore{
		client:  client,
		timeout: timeout,
		locks:   repository.NewKeyMutex(),
	}
}

// Acquire takes the per-user lock
func (s *SessionStore) Acquire(userID string) (release func()) {
	return s.locks.Lock(userID)
}

// Get returns the user's session, or ErrNotFound
func (s *SessionStore) Get(userID string) (*domain.Session, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	data, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("redis decode session: %w", err)
	}
	return &sess, nil
}

// Create stores a new session; an existing key means a live session,
// because expired ones are dropped by their TTL
func (s *SessionStore) Create(sess *domain.Session) error {
	ctx, cancel := s.ctx()
	defer cancel()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis encode session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, keyPrefix+sess.UserID, data, s.timeout).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return repository.ErrSessionExists
	}
	return nil
}

// Update replaces an existing session and refreshes its TTL
func (s *SessionStore) Update(sess *domain.Session) error {
	ctx, cancel := s.ctx()
	defer cancel()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis encode session: %w", err)
	}

	ok, err := s.client.SetXX(ctx, keyPrefix+sess.UserID, data, s.timeout).Result()
	if err != nil {
		return fmt.Errorf("redis setxx: %w", err)
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the user's session
func (s *SessionStore) Delete(userID string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	n, err := s.client.Del(ctx, keyPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List scans all stored sessions
func (s *SessionStore) List() ([]*domain.Session, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var out []*domain.Session
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, goredis.Nil) {
			continue // evicted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}
		var sess domain.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, fmt.Errorf("redis decode session: %w", err)
		}
		out = append(out, &sess)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return out, nil
}

// Sweep removes sessions the TTL has not yet caught: entries whose clock
// drifted past the idle timeout between refreshes
func (s *SessionStore) Sweep(now time.Time) (int, error) {
	sessions, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, sess := range sessions {
		if !sess.Expired(now, s.timeout) {
			continue
		}
		release := s.locks.Lock(sess.UserID)
		if err := s.Delete(sess.UserID); err == nil {
			removed++
		}
		release()
	}
	return removed, nil
}

func (s *SessionStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
