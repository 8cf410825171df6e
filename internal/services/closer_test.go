package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-ledger/internal/infrastructure/leader"
	"auction-ledger/pkg/logger"

	"github.com/stretchr/testify/require"
)

type followerElection struct {
	campaigns int
}

func (f *followerElection) BecomeLeader(ctx context.Context, instanceID string) (bool, error) {
	f.campaigns++
	return false, nil
}

func (f *followerElection) IsLeader(ctx context.Context, instanceID string) (bool, error) {
	return false, nil
}

func (f *followerElection) ReleaseLeadership(ctx context.Context, instanceID string) error {
	return nil
}

type brokenElection struct{}

func (brokenElection) BecomeLeader(ctx context.Context, instanceID string) (bool, error) {
	return false, errors.New("redis unavailable")
}

func (brokenElection) IsLeader(ctx context.Context, instanceID string) (bool, error) {
	return false, errors.New("redis unavailable")
}

func (brokenElection) ReleaseLeadership(ctx context.Context, instanceID string) error {
	return nil
}

func TestCloserResolvesClosedListings(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	sold := f.createListing(t, "100", time.Hour)
	unsold := f.createListing(t, "100", time.Hour)
	open := f.createListing(t, "100", 5*time.Hour)
	require.True(t, f.place(t, sold.ID, "alice", "150").IsAccepted())
	require.True(t, f.place(t, open.ID, "bob", "150").IsAccepted())

	closer := NewAuctionCloser("@every 1s", f.store, f.ledger, leader.NewLocalLeaderElection(),
		"instance-1", f.clock, logger.NewNop())

	resolved, err := closer.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, resolved)

	f.clock.Advance(2 * time.Hour)

	resolved, err = closer.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, resolved)

	got, err := f.store.GetListing(ctx, sold.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.WinnerID)
	require.True(t, got.WinnerResolved)

	got, err = f.store.GetListing(ctx, unsold.ID)
	require.NoError(t, err)
	require.Empty(t, got.WinnerID)
	require.True(t, got.WinnerResolved)

	got, err = f.store.GetListing(ctx, open.ID)
	require.NoError(t, err)
	require.False(t, got.WinnerResolved)

	// Already resolved listings are not picked up again.
	resolved, err = closer.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, resolved)
}

func TestCloserSkipsWhenNotLeader(t *testing.T) {
	f := newLedgerFixture(t)
	listing := f.createListing(t, "100", time.Hour)
	f.clock.Advance(2 * time.Hour)

	election := &followerElection{}
	closer := NewAuctionCloser("@every 1s", f.store, f.ledger, election, "instance-2", f.clock, logger.NewNop())

	resolved, err := closer.RunOnce(context.Background())
	require.NoError(t, err)
	require.Zero(t, resolved)
	require.Equal(t, 1, election.campaigns)

	got, err := f.store.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	require.False(t, got.WinnerResolved)
}

func TestCloserSurfacesElectionErrors(t *testing.T) {
	f := newLedgerFixture(t)
	closer := NewAuctionCloser("@every 1s", f.store, f.ledger, brokenElection{}, "instance-3", f.clock, logger.NewNop())

	_, err := closer.RunOnce(context.Background())
	require.Error(t, err)
}

func TestCloserStartRejectsBadSpec(t *testing.T) {
	f := newLedgerFixture(t)
	closer := NewAuctionCloser("not a schedule", f.store, f.ledger, leader.NewLocalLeaderElection(),
		"instance-1", f.clock, logger.NewNop())

	require.Error(t, closer.Start(context.Background()))
}

func TestCloserRunsOnSchedule(t *testing.T) {
	f := newLedgerFixture(t)
	listing := f.createListing(t, "100", time.Hour)
	require.True(t, f.place(t, listing.ID, "alice", "150").IsAccepted())
	f.clock.Advance(2 * time.Hour)

	closer := NewAuctionCloser("@every 1s", f.store, f.ledger, leader.NewLocalLeaderElection(),
		"instance-1", f.clock, logger.NewNop())
	require.NoError(t, closer.Start(context.Background()))

	require.Eventually(t, func() bool {
		got, err := f.store.GetListing(context.Background(), listing.ID)
		return err == nil && got.WinnerResolved
	}, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, closer.Stop(context.Background()))
}
