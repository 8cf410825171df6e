package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-ledger/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestKeyedLockerExcludesSameKey(t *testing.T) {
	locker := NewKeyedLocker()

	unlock, err := locker.Lock(context.Background(), "l1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "l1")
	require.ErrorIs(t, err, domain.ErrLockNotAcquired)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	unlock, err = locker.Lock(context.Background(), "l1")
	require.NoError(t, err)
	unlock()
}

func TestKeyedLockerIndependentKeys(t *testing.T) {
	locker := NewKeyedLocker()

	unlockA, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locker.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestKeyedLockerDropsIdleEntries(t *testing.T) {
	locker := NewKeyedLocker()

	unlock, err := locker.Lock(context.Background(), "l1")
	require.NoError(t, err)
	unlock()
	unlock()

	locker.mu.Lock()
	defer locker.mu.Unlock()
	require.Empty(t, locker.slots)
}

func TestKeyedLockerSerializes(t *testing.T) {
	locker := NewKeyedLocker()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "l1")
			if err != nil {
				t.Error(err)
				return
			}
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
}
