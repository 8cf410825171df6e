package services

import (
	"testing"
	"time"

	"auction-ledger/internal/domain"

	"github.com/peterldowns/testy/check"
)

func TestResolve(t *testing.T) {
	closeTime := t0.Add(time.Hour)
	listing := testListing(closeTime)

	tests := []struct {
		name   string
		now    time.Time
		bids   []*domain.Bid
		kind   domain.ResolutionKind
		winner string
		bidID  string
	}{
		{
			name: "open listing has no winner",
			now:  closeTime.Add(-time.Second),
			bids: []*domain.Bid{bidAt("b1", "alice", "150", t0)},
			kind: domain.ResolutionNotClosed,
		},
		{
			name: "closed with no bids",
			now:  closeTime,
			kind: domain.ResolutionNoBids,
		},
		{
			name: "highest bid wins",
			now:  closeTime,
			bids: []*domain.Bid{
				bidAt("b1", "alice", "150", t0),
				bidAt("b2", "bob", "300", t0.Add(time.Second)),
				bidAt("b3", "carol", "250", t0.Add(2*time.Second)),
			},
			kind:   domain.ResolutionWinner,
			winner: "bob",
			bidID:  "b2",
		},
		{
			name: "tie goes to earliest bid",
			now:  closeTime.Add(time.Minute),
			bids: []*domain.Bid{
				bidAt("late", "carol", "300", t0.Add(2*time.Second)),
				bidAt("early", "bob", "300", t0.Add(time.Second)),
			},
			kind:   domain.ResolutionWinner,
			winner: "bob",
			bidID:  "early",
		},
		{
			name: "bids of other listings are ignored",
			now:  closeTime,
			bids: []*domain.Bid{
				{ID: "x", ListingID: "other", BidderID: "mallory", Amount: d("9999"), CreatedAt: t0},
				bidAt("b1", "alice", "150", t0),
			},
			kind:   domain.ResolutionWinner,
			winner: "alice",
			bidID:  "b1",
		},
	}

	r := NewWinnerResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.now, listing, tt.bids)

			check.Equal(t, tt.kind, res.Kind)
			check.Equal(t, tt.winner, res.WinnerID())
			if tt.bidID == "" {
				check.True(t, res.WinningBid == nil)
			} else {
				check.Equal(t, tt.bidID, res.WinningBid.ID)
			}
		})
	}
}
