package leader

import (
	"context"
	"testing"
	"time"

	"auction-ledger/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newElection(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisLeaderElection) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisLeaderElection(client, "ledger_leader", ttl, logger.NewNop())
}

func TestOnlyOneInstanceBecomesLeader(t *testing.T) {
	_, election := newElection(t, time.Minute)
	ctx := context.Background()

	ok, err := election.BecomeLeader(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = election.BecomeLeader(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)

	isLeader, err := election.IsLeader(ctx, "a")
	require.NoError(t, err)
	require.True(t, isLeader)

	isLeader, err = election.IsLeader(ctx, "b")
	require.NoError(t, err)
	require.False(t, isLeader)

	require.NoError(t, election.ReleaseLeadership(ctx, "a"))
}

func TestReleaseOnlyByHolder(t *testing.T) {
	mr, election := newElection(t, time.Minute)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, election.ReleaseLeadership(ctx, "b"))
	require.True(t, mr.Exists("ledger_leader"))

	require.NoError(t, election.ReleaseLeadership(ctx, "a"))
	require.False(t, mr.Exists("ledger_leader"))

	ok, err := election.BecomeLeader(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, election.ReleaseLeadership(ctx, "b"))
}

func TestLeadershipExpiresWithoutHeartbeat(t *testing.T) {
	mr, election := newElection(t, time.Minute)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "a")
	require.NoError(t, err)
	election.stopHeartbeat("a")

	mr.FastForward(2 * time.Minute)

	isLeader, err := election.IsLeader(ctx, "a")
	require.NoError(t, err)
	require.False(t, isLeader)
}

func TestHeartbeatExtendsTTL(t *testing.T) {
	mr, election := newElection(t, 300*time.Millisecond)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "a")
	require.NoError(t, err)
	defer election.ReleaseLeadership(ctx, "a")

	mr.SetTTL("ledger_leader", 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return mr.TTL("ledger_leader") > 100*time.Millisecond
	}, 2*time.Second, 20*time.Millisecond)
}

func TestLocalLeaderElectionAlwaysLeads(t *testing.T) {
	election := NewLocalLeaderElection()
	ctx := context.Background()

	ok, err := election.BecomeLeader(ctx, "any")
	require.NoError(t, err)
	require.True(t, ok)

	isLeader, err := election.IsLeader(ctx, "other")
	require.NoError(t, err)
	require.True(t, isLeader)
	require.NoError(t, election.ReleaseLeadership(ctx, "any"))
}
