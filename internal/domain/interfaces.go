package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_stores.go -package=mocks auction-ledger/internal/domain ListingStore,BidStore

// Repository interfaces
type ListingStore interface {
	CreateListing(ctx context.Context, listing *Listing) error
	// GetListing returns ErrListingNotFound when no listing has the id.
	GetListing(ctx context.Context, listingID string) (*Listing, error)
	UpdateListingDetails(ctx context.Context, listingID string, details ListingDetails, updatedAt time.Time) error
	UpdateCurrentPrice(ctx context.Context, listingID string, price decimal.Decimal) error
	// SetWinner marks the listing resolved. An empty winnerID means no bids.
	SetWinner(ctx context.Context, listingID, winnerID string) error
	DeleteListing(ctx context.Context, listingID string) error
	GetActiveListings(ctx context.Context, now time.Time) ([]*Listing, error)
	GetListingsBySeller(ctx context.Context, sellerID string) ([]*Listing, error)
	// GetUnresolvedClosed returns closed listings whose winner has not been resolved.
	GetUnresolvedClosed(ctx context.Context, now time.Time) ([]*Listing, error)
	SearchListings(ctx context.Context, query string) ([]*Listing, error)
}

type BidStore interface {
	InsertBid(ctx context.Context, bid *Bid) error
	// DeleteBid returns ErrBidNotFound when no bid has the id.
	DeleteBid(ctx context.Context, bidID string) error
	DeleteBidsByListing(ctx context.Context, listingID string) (int, error)
	// GetBidsByListing returns bids in creation order.
	GetBidsByListing(ctx context.Context, listingID string) ([]*Bid, error)
	GetBidsByBidder(ctx context.Context, bidderID string) ([]*Bid, error)
	GetAllBids(ctx context.Context) ([]*Bid, error)
}

// Validation interface
type BidValidator interface {
	Decide(now time.Time, listing *Listing, existing []*Bid, candidate BidCandidate) Decision
}

// ListingLocker serializes mutations of a single listing. The returned func
// releases the lock and must be called exactly once.
type ListingLocker interface {
	Lock(ctx context.Context, listingID string) (func(), error)
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}
