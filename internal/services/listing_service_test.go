package services

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCreateListing(t *testing.T) {
	f := newLedgerFixture(t)

	listing, err := f.listings.CreateListing(context.Background(), domain.NewListing{
		SellerID:      "seller",
		Name:          "  Bicycle ",
		Description:   "road bike",
		StartingPrice: d("99.999"),
		CloseTime:     t0.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.Contains(t, listing.ID, "listing_")
	require.Equal(t, "Bicycle", listing.Name)
	require.True(t, listing.StartingPrice.Equal(d("100")))
	require.True(t, listing.CurrentPrice.Equal(listing.StartingPrice))
	require.Equal(t, t0, listing.StartTime)
	require.Empty(t, listing.WinnerID)

	stored, err := f.listings.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Equal(t, listing.ID, stored.ID)
}

func TestCreateListingValidation(t *testing.T) {
	f := newLedgerFixture(t)

	valid := domain.NewListing{
		SellerID:      "seller",
		Name:          "Bicycle",
		StartingPrice: d("10"),
		CloseTime:     t0.Add(time.Hour),
	}

	tests := []struct {
		name   string
		mutate func(*domain.NewListing)
	}{
		{"missing seller", func(n *domain.NewListing) { n.SellerID = "" }},
		{"blank name", func(n *domain.NewListing) { n.Name = "   " }},
		{"zero price", func(n *domain.NewListing) { n.StartingPrice = d("0") }},
		{"price rounds to zero", func(n *domain.NewListing) { n.StartingPrice = d("0.001") }},
		{"negative price", func(n *domain.NewListing) { n.StartingPrice = d("-1") }},
		{"close time now", func(n *domain.NewListing) { n.CloseTime = t0 }},
		{"close time past", func(n *domain.NewListing) { n.CloseTime = t0.Add(-time.Hour) }},
		{"start after close", func(n *domain.NewListing) { n.StartTime = t0.Add(2 * time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := f.listings.CreateListing(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrInvalidListing)
		})
	}
}

func TestUpdateListingDetails(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	listing := f.createListing(t, "100", time.Hour)
	require.True(t, f.place(t, listing.ID, "alice", "150").IsAccepted())

	f.clock.Advance(time.Minute)
	updated, err := f.listings.UpdateListingDetails(ctx, listing.ID, domain.ListingDetails{
		Name:        "Renamed",
		Description: "now with box",
		CloseTime:   t0.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.True(t, updated.CurrentPrice.Equal(d("150")))
	require.Equal(t, t0.Add(time.Minute), updated.UpdatedAt)

	_, err = f.listings.UpdateListingDetails(ctx, listing.ID, domain.ListingDetails{Name: "x", CloseTime: t0})
	require.ErrorIs(t, err, domain.ErrInvalidListing)

	_, err = f.listings.UpdateListingDetails(ctx, listing.ID, domain.ListingDetails{Name: "", CloseTime: t0.Add(3 * time.Hour)})
	require.ErrorIs(t, err, domain.ErrInvalidListing)

	f.clock.Advance(3 * time.Hour)
	_, err = f.listings.UpdateListingDetails(ctx, listing.ID, domain.ListingDetails{Name: "late", CloseTime: t0.Add(5 * time.Hour)})
	require.ErrorIs(t, err, domain.ErrListingClosed)

	_, err = f.listings.UpdateListingDetails(ctx, "missing", domain.ListingDetails{Name: "x", CloseTime: t0.Add(5 * time.Hour)})
	require.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDeleteListingCascadesBids(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	listing := f.createListing(t, "100", time.Hour)
	other := f.createListing(t, "100", time.Hour)

	require.True(t, f.place(t, listing.ID, "alice", "150").IsAccepted())
	require.True(t, f.place(t, listing.ID, "bob", "160").IsAccepted())
	require.True(t, f.place(t, other.ID, "alice", "110").IsAccepted())

	require.NoError(t, f.listings.DeleteListing(ctx, listing.ID))

	_, err := f.listings.GetListing(ctx, listing.ID)
	require.ErrorIs(t, err, domain.ErrListingNotFound)

	remaining, err := f.ledger.BidsForBidder(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, other.ID, remaining[0].ListingID)

	require.ErrorIs(t, f.listings.DeleteListing(ctx, listing.ID), domain.ErrListingNotFound)
}

func TestListingLookups(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	short := f.createListing(t, "100", time.Hour)
	long := f.createListing(t, "100", 3*time.Hour)
	_, err := f.listings.CreateListing(ctx, domain.NewListing{
		SellerID:      "other-seller",
		Name:          "Guitar",
		Description:   "Acoustic, six strings",
		StartingPrice: d("300"),
		CloseTime:     t0.Add(time.Hour),
	})
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)

	active, err := f.listings.ActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, long.ID, active[0].ID)

	bySeller, err := f.listings.ListingsBySeller(ctx, "seller")
	require.NoError(t, err)
	require.Len(t, bySeller, 2)
	require.Equal(t, short.ID, bySeller[0].ID)

	found, err := f.listings.SearchListings(ctx, "acoustic")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Guitar", found[0].Name)

	blank, err := f.listings.SearchListings(ctx, "  ")
	require.NoError(t, err)
	require.Len(t, blank, 1)
}
