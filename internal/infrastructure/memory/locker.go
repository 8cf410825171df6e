package memory

import (
	"context"
	"fmt"
	"sync"

	"auction-ledger/internal/domain"
)

// KeyedLocker is an in-process domain.ListingLocker. Each listing gets its own
// one-slot semaphore so waiting honours context cancellation; entries are
// dropped once nobody holds or waits for them.
type KeyedLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{slots: make(map[string]*slot)}
}

var _ domain.ListingLocker = (*KeyedLocker)(nil)

func (k *KeyedLocker) Lock(ctx context.Context, listingID string) (func(), error) {
	k.mu.Lock()
	s, ok := k.slots[listingID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[listingID] = s
	}
	s.refs++
	k.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(listingID, s)
		return nil, fmt.Errorf("lock listing %s: %w: %w", listingID, domain.ErrLockNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			k.release(listingID, s)
		})
	}, nil
}

func (k *KeyedLocker) release(listingID string, s *slot) {
	k.mu.Lock()
	defer k.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(k.slots, listingID)
	}
}
