package repository

import "sync"

// KeyMutex provides mutual exclusion per string key. Mutexes are created
// on first use and kept for the process lifetime; the key space here is
// active user ids, which is small enough not to need eviction.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyMutex creates an empty per-key lock set
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock locks the mutex for key and returns its unlock func
func (k *KeyMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
