package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default single-instance session store: a mutex-guarded
// map with TTL eviction driven by a background sweeper.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *MemoryStore) Get(ctx context.Context, callID string) (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[callID]
	if !ok {
		return Session{}, false, nil
	}
	if time.Since(sess.UpdatedAt) > m.ttl {
		return Session{}, false, nil
	}
	return sess, true, nil
}

func (m *MemoryStore) Put(ctx context.Context, callID string, sess Session) error {
	sess.UpdatedAt = time.Now()
	m.mu.Lock()
	m.sessions[callID] = sess
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, callID string) error {
	m.mu.Lock()
	delete(m.sessions, callID)
	m.mu.Unlock()
	return nil
}

// Close stops the TTL sweeper.
func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemoryStore) sweep() {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)
			m.mu.Lock()
			for id, sess := range m.sessions {
				if sess.UpdatedAt.Before(cutoff) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
