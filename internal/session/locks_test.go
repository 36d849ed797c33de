package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLocks(t *testing.T) {
	locks := newProfileLocks()
	ctx := context.Background()

	unlockA, err := locks.lock(ctx, "a")
	require.NoError(t, err)
	unlockB, err := locks.lock(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, locks.len())

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		unlock, err := locks.lock(ctx, "a")
		if err != nil {
			t.Errorf("lock: %v", err)
			return
		}
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder got the lock of a held profile")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	wg.Wait()
	unlockB()
	assert.Equal(t, 0, locks.len())
}

func TestProfileLocks_WaiterGivesUp(t *testing.T) {
	locks := newProfileLocks()

	unlock, err := locks.lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = locks.lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 1, locks.len())

	unlock()
	assert.Equal(t, 0, locks.len())

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = locks.lock(cancelled, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, locks.len())
}
