package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore(30 * time.Minute)
	defer m.Close()
	ctx := context.Background()

	_, found, err := m.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.False(t, found)

	err = m.Put(ctx, "CA1", Session{Step: StepAwaitingSpeech, LastEventID: "RE1"})
	require.NoError(t, err)

	sess, found, err := m.Get(ctx, "CA1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StepAwaitingSpeech, sess.Step)
	assert.Equal(t, "RE1", sess.LastEventID)
	assert.False(t, sess.UpdatedAt.IsZero())

	require.NoError(t, m.Delete(ctx, "CA1"))
	_, found, err = m.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.False(t, found)

	// Delete is idempotent.
	require.NoError(t, m.Delete(ctx, "CA1"))
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore(50 * time.Millisecond)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "CA1", Session{Step: StepAwaitingSpeech}))

	_, found, err := m.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(80 * time.Millisecond)

	_, found, err = m.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyedLockSerializesSameKey(t *testing.T) {
	t.Parallel()

	locks := NewKeyedLock()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("CA1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedLockDistinctKeysDoNotContend(t *testing.T) {
	t.Parallel()

	locks := NewKeyedLock()
	unlockA := locks.Lock("CA1")

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("CA2")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a distinct key blocked")
	}
	unlockA()
}

func TestKeyedLockReleaseAllowsNextHolder(t *testing.T) {
	t.Parallel()

	locks := NewKeyedLock()
	unlock := locks.Lock("CA1")

	acquired := make(chan struct{})
	go func() {
		next := locks.Lock("CA1")
		next()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired the lock while it was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second holder never acquired the lock")
	}
}
