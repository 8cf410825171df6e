package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestListing_StatusAt(t *testing.T) {
	closeAt := time.Date(2025, 10, 10, 18, 0, 0, 0, time.UTC)
	l := &Listing{CloseTime: closeAt}

	require.Equal(t, ListingOpen, l.StatusAt(closeAt.Add(-time.Nanosecond)))
	require.Equal(t, ListingClosed, l.StatusAt(closeAt))
	require.Equal(t, ListingClosed, l.StatusAt(closeAt.Add(time.Minute)))
	require.Equal(t, "closed", l.StatusAt(closeAt).String())
	require.Equal(t, "unknown", ListingStatus(7).String())
}

func TestBidResult(t *testing.T) {
	bid := &Bid{ID: "b1", BidderID: "u2", Amount: decimal.RequireFromString("600")}

	accepted := Accepted(bid)
	require.True(t, accepted.IsAccepted())
	require.Same(t, bid, accepted.Bid)

	rejected := Rejected(RejectBidTooLow, decimal.RequireFromString("600"))
	require.False(t, rejected.IsAccepted())
	require.Nil(t, rejected.Bid)
	require.Equal(t, RejectBidTooLow, rejected.Reason)
}

func TestResolution_WinnerID(t *testing.T) {
	require.Equal(t, "", Resolution{Kind: ResolutionNoBids}.WinnerID())
	require.Equal(t, "", Resolution{Kind: ResolutionNotClosed}.WinnerID())
	require.Equal(t, "u3", Resolution{Kind: ResolutionWinner, WinningBid: &Bid{BidderID: "u3"}}.WinnerID())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")

	err := fmt.Errorf("place bid: %w", NewStorageError("insert bid", cause))
	require.ErrorIs(t, err, cause)
	require.True(t, IsRetriable(err))
	require.Contains(t, err.Error(), "storage insert bid: connection reset")

	require.Nil(t, NewStorageError("noop", nil))

	notFound := NewStorageError("get listing", ErrListingNotFound)
	require.ErrorIs(t, notFound, ErrListingNotFound)
	require.False(t, IsRetriable(notFound))

	require.True(t, IsRetriable(fmt.Errorf("lock: %w", ErrLockNotAcquired)))
}
