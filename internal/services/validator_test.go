package services

import (
	"testing"
	"time"

	"auction-ledger/internal/domain"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testListing(closeTime time.Time) *domain.Listing {
	return &domain.Listing{
		ID:            "listing_1",
		SellerID:      "seller",
		StartingPrice: d("100"),
		CurrentPrice:  d("100"),
		CloseTime:     closeTime,
	}
}

func bidAt(id, bidder, amount string, at time.Time) *domain.Bid {
	return &domain.Bid{ID: id, ListingID: "listing_1", BidderID: bidder, Amount: d(amount), CreatedAt: at}
}

func TestDecide(t *testing.T) {
	open := testListing(t0.Add(time.Hour))
	history := []*domain.Bid{
		bidAt("b1", "alice", "150", t0.Add(-2*time.Minute)),
		bidAt("b2", "bob", "200", t0.Add(-time.Minute)),
	}

	tests := []struct {
		name     string
		now      time.Time
		existing []*domain.Bid
		bidder   string
		amount   string
		accept   bool
		reason   domain.RejectReason
		floor    string
	}{
		{"first bid above starting price", t0, nil, "alice", "100.01", true, "", "100"},
		{"first bid equal to starting price", t0, nil, "alice", "100", false, domain.RejectBidTooLow, "100"},
		{"first bid below starting price", t0, nil, "alice", "99.99", false, domain.RejectBidTooLow, "100"},
		{"bid above highest", t0, history, "carol", "200.01", true, "", "200"},
		{"bid equal to highest", t0, history, "carol", "200", false, domain.RejectBidTooLow, "200"},
		{"bid between start and highest", t0, history, "carol", "180", false, domain.RejectBidTooLow, "200"},
		{"leader may raise own bid", t0, history, "bob", "250", true, "", "200"},
		{"seller bids on own listing", t0, history, "seller", "1000", false, domain.RejectSelfBid, "200"},
		{"bid at close instant", t0.Add(time.Hour), history, "carol", "1000", false, domain.RejectListingClosed, "200"},
		{"bid after close", t0.Add(2 * time.Hour), nil, "carol", "1000", false, domain.RejectListingClosed, "100"},
		{"closed beats self bid", t0.Add(time.Hour), nil, "seller", "1000", false, domain.RejectListingClosed, "100"},
		{"empty bidder", t0, nil, "", "150", false, domain.RejectInvalidBid, "100"},
		{"zero amount", t0, nil, "alice", "0", false, domain.RejectInvalidBid, "100"},
		{"negative amount", t0, nil, "alice", "-5", false, domain.RejectInvalidBid, "100"},
		{"sub-cent amount above floor", t0, nil, "alice", "100.001", false, domain.RejectInvalidBid, "100"},
		{"sub-cent amount above highest", t0, history, "carol", "200.009", false, domain.RejectInvalidBid, "200"},
		{"trailing zeros beyond cents", t0, history, "carol", "200.0100", true, "", "200"},
	}

	v := NewRuleBidValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := domain.BidCandidate{ListingID: open.ID, BidderID: tt.bidder, Amount: d(tt.amount)}
			decision := v.Decide(tt.now, open, tt.existing, candidate)

			check.Equal(t, tt.accept, decision.Accept)
			check.Equal(t, tt.reason, decision.Reason)
			check.True(t, decision.Floor.Equal(d(tt.floor)))
		})
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	v := NewRuleBidValidator()
	listing := testListing(t0.Add(time.Hour))
	existing := []*domain.Bid{bidAt("b1", "alice", "150", t0)}
	candidate := domain.BidCandidate{ListingID: listing.ID, BidderID: "bob", Amount: d("150")}

	first := v.Decide(t0, listing, existing, candidate)
	for i := 0; i < 10; i++ {
		again := v.Decide(t0, listing, existing, candidate)
		check.Equal(t, first.Accept, again.Accept)
		check.Equal(t, first.Reason, again.Reason)
	}
	check.Equal(t, 1, len(existing))
}

func TestFloor(t *testing.T) {
	listing := testListing(t0.Add(time.Hour))

	check.True(t, Floor(listing, nil).Equal(d("100")))
	check.True(t, Floor(listing, []*domain.Bid{
		bidAt("b1", "a", "120", t0),
		bidAt("b2", "b", "300.50", t0),
		bidAt("b3", "c", "200", t0),
	}).Equal(d("300.50")))

	_, ok := HighestAmount(nil)
	check.False(t, ok)
}
