package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var unlockScript = redis.NewScript(`
    if redis.call("GET", KEYS[1]) == ARGV[1] then
        return redis.call("DEL", KEYS[1])
    else
        return 0
    end
`)

var extendScript = redis.NewScript(`
    if redis.call("GET", KEYS[1]) == ARGV[1] then
        return redis.call("PEXPIRE", KEYS[1], ARGV[2])
    else
        return 0
    end
`)

// RedisListingLocker serializes listing mutations across service instances.
// Each lock is a key holding a random token with a TTL that is extended while
// the holder runs; only the token holder can delete it.
type RedisListingLocker struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	retryDelay time.Duration
	log        logger.Logger
}

func NewRedisListingLocker(
	client *redis.Client,
	ttl time.Duration,
	retryDelay time.Duration,
	log logger.Logger,
) *RedisListingLocker {
	return &RedisListingLocker{
		client:     client,
		prefix:     "listing_lock:",
		ttl:        ttl,
		retryDelay: retryDelay,
		log:        log,
	}
}

var _ domain.ListingLocker = (*RedisListingLocker)(nil)

func (l *RedisListingLocker) Lock(ctx context.Context, listingID string) (func(), error) {
	key := l.prefix + listingID
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("lock listing %s: %w", listingID, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock listing %s: %w: %w", listingID, domain.ErrLockNotAcquired, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}

	hbCtx, stopHeartbeat := context.WithCancel(context.Background())
	hbDone := make(chan struct{})
	go func() {
		defer close(hbDone)
		l.keepAlive(hbCtx, key, token, listingID)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopHeartbeat()
			<-hbDone
			l.release(key, token, listingID)
		})
	}, nil
}

// keepAlive extends the lock at a third of its TTL until ctx is cancelled or
// the token no longer owns the key.
func (l *RedisListingLocker) keepAlive(ctx context.Context, key, token, listingID string) {
	interval := l.ttl / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		extendCtx, cancel := context.WithTimeout(ctx, interval)
		extended, err := extendScript.Run(extendCtx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int64()
		cancel()

		if ctx.Err() != nil {
			return
		}
		if err != nil {
			l.log.Warn("Failed to extend listing lock", "listing_id", listingID, "error", err)
			continue
		}
		if extended == 0 {
			l.log.Warn("Listing lock lost before release", "listing_id", listingID, "ttl", l.ttl)
			return
		}
	}
}

func (l *RedisListingLocker) release(key, token, listingID string) {
	// The caller's context may already be done; release regardless.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	released, err := unlockScript.Run(releaseCtx, l.client, []string{key}, token).Int64()
	if err != nil {
		l.log.Error("Failed to release listing lock", "listing_id", listingID, "error", err)
		return
	}
	if released == 0 {
		l.log.Warn("Listing lock expired before release", "listing_id", listingID, "ttl", l.ttl)
	}
}
