package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebot/internal/domain"
	"tablebot/internal/repository"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	store := NewSessionStore(15 * time.Minute)

	sess := domain.NewSession("u-1", domain.LangEnglish, now)
	require.NoError(t, store.Create(sess))

	got, err := store.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepGreeting, got.Step)

	got.Step = domain.StepName
	got.Answers.Name = "Priya"
	require.NoError(t, store.Update(got))

	got, err = store.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepName, got.Step)
	assert.Equal(t, "Priya", got.Answers.Name)

	require.NoError(t, store.Delete("u-1"))
	_, err = store.Get("u-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionStore_CreateConflicts(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	store := NewSessionStore(15 * time.Minute)

	require.NoError(t, store.Create(domain.NewSession("u-1", domain.LangEnglish, now)))

	// a live session blocks a second create
	err := store.Create(domain.NewSession("u-1", domain.LangEnglish, now.Add(time.Minute)))
	assert.ErrorIs(t, err, repository.ErrSessionExists)

	// an expired leftover is replaced silently
	err = store.Create(domain.NewSession("u-1", domain.LangTamil, now.Add(30*time.Minute)))
	require.NoError(t, err)

	got, err := store.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LangTamil, got.Language)
}

func TestSessionStore_UpdateMissing(t *testing.T) {
	store := NewSessionStore(15 * time.Minute)
	sess := domain.NewSession("ghost", domain.LangEnglish, time.Now())
	assert.ErrorIs(t, store.Update(sess), repository.ErrNotFound)
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	store := NewSessionStore(15 * time.Minute)

	sess := domain.NewSession("u-1", domain.LangEnglish, now)
	sess.Answers.Addons = []string{"cake"}
	require.NoError(t, store.Create(sess))

	got, err := store.Get("u-1")
	require.NoError(t, err)
	got.Answers.Name = "mutated"
	got.Answers.Addons[0] = "dj"

	fresh, err := store.Get("u-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Answers.Name)
	assert.Equal(t, []string{"cake"}, fresh.Answers.Addons)
}

func TestSessionStore_Sweep(t *testing.T) {
	now := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)
	store := NewSessionStore(15 * time.Minute)

	require.NoError(t, store.Create(domain.NewSession("stale-1", domain.LangEnglish, now.Add(-40*time.Minute))))
	require.NoError(t, store.Create(domain.NewSession("stale-2", domain.LangEnglish, now.Add(-16*time.Minute))))
	require.NoError(t, store.Create(domain.NewSession("live", domain.LangEnglish, now.Add(-10*time.Minute))))

	removed, err := store.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get("live")
	assert.NoError(t, err)
	_, err = store.Get("stale-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// idle for exactly the timeout is not yet expired
	require.NoError(t, store.Create(domain.NewSession("edge", domain.LangEnglish, now.Add(-15*time.Minute))))
	removed, err = store.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestSessionStore_ConcurrentUsers(t *testing.T) {
	now := time.Now()
	store := NewSessionStore(15 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			release := store.Acquire(id)
			defer release()

			if _, err := store.Get(id); err != nil {
				_ = store.Create(domain.NewSession(id, domain.LangEnglish, now))
				return
			}
			sess, _ := store.Get(id)
			sess.Touch(now)
			_ = store.Update(sess)
		}(i)
	}
	wg.Wait()

	sessions, err := store.List()
	require.NoError(t, err)
	assert.Len(t, sessions, 26)
}
