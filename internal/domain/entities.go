package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonetaryPlaces is the number of decimal places amounts are stored with.
const MonetaryPlaces int32 = 2

type Listing struct {
	ID            string
	SellerID      string
	Name          string
	Description   string
	StartingPrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	StartTime     time.Time
	CloseTime     time.Time
	// WinnerID is empty until the listing has closed and been resolved.
	WinnerID string
	// WinnerResolved records that resolution ran, including the no-bids case.
	WinnerResolved bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StatusAt derives the listing status from its close time. It is never stored.
func (l *Listing) StatusAt(now time.Time) ListingStatus {
	if now.Before(l.CloseTime) {
		return ListingOpen
	}
	return ListingClosed
}

func (l *Listing) IsClosedAt(now time.Time) bool {
	return l.StatusAt(now) == ListingClosed
}

type ListingStatus int

const (
	ListingOpen ListingStatus = iota
	ListingClosed
)

func (s ListingStatus) String() string {
	switch s {
	case ListingOpen:
		return "open"
	case ListingClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Bid struct {
	ID        string
	ListingID string
	BidderID  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// BidCandidate is a bid that has not been accepted yet.
type BidCandidate struct {
	ListingID string
	BidderID  string
	Amount    decimal.Decimal
}

type RejectReason string

const (
	RejectListingClosed RejectReason = "listing_closed"
	RejectSelfBid       RejectReason = "self_bid"
	RejectBidTooLow     RejectReason = "bid_too_low"
	RejectInvalidBid    RejectReason = "invalid_bid"
)

// Decision is the validator's verdict on a candidate bid. Floor is the amount
// the candidate had to exceed.
type Decision struct {
	Accept bool
	Reason RejectReason
	Floor  decimal.Decimal
}

func AcceptDecision(floor decimal.Decimal) Decision {
	return Decision{Accept: true, Floor: floor}
}

func RejectDecision(reason RejectReason, floor decimal.Decimal) Decision {
	return Decision{Reason: reason, Floor: floor}
}

type BidOutcome string

const (
	BidAccepted BidOutcome = "accepted"
	BidRejected BidOutcome = "rejected"
)

// BidResult is what PlaceBid hands back: either the accepted bid or the
// reason it was turned down. Rejections are not errors.
type BidResult struct {
	Outcome BidOutcome
	Bid     *Bid
	Reason  RejectReason
	Floor   decimal.Decimal
}

func Accepted(bid *Bid) BidResult {
	return BidResult{Outcome: BidAccepted, Bid: bid}
}

func Rejected(reason RejectReason, floor decimal.Decimal) BidResult {
	return BidResult{Outcome: BidRejected, Reason: reason, Floor: floor}
}

func (r BidResult) IsAccepted() bool {
	return r.Outcome == BidAccepted
}

type ResolutionKind string

const (
	ResolutionWinner    ResolutionKind = "winner"
	ResolutionNoBids    ResolutionKind = "no_bids"
	ResolutionNotClosed ResolutionKind = "not_closed"
)

type Resolution struct {
	Kind       ResolutionKind
	WinningBid *Bid
}

func (r Resolution) WinnerID() string {
	if r.Kind != ResolutionWinner || r.WinningBid == nil {
		return ""
	}
	return r.WinningBid.BidderID
}

// NewListing carries what a seller provides when listing an item.
type NewListing struct {
	SellerID      string
	Name          string
	Description   string
	StartingPrice decimal.Decimal
	StartTime     time.Time
	CloseTime     time.Time
}

// ListingDetails are the seller-owned fields that may change after creation.
type ListingDetails struct {
	Name        string
	Description string
	CloseTime   time.Time
}
