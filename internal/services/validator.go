package services

import (
	"time"

	"auction-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// RuleBidValidator applies the ascending-auction acceptance rules. It holds no
// state, so identical inputs always produce the same decision.
type RuleBidValidator struct{}

func NewRuleBidValidator() *RuleBidValidator {
	return &RuleBidValidator{}
}

func (v *RuleBidValidator) Decide(now time.Time, listing *domain.Listing, existing []*domain.Bid, candidate domain.BidCandidate) domain.Decision {
	floor := Floor(listing, existing)

	if candidate.BidderID == "" || !candidate.Amount.IsPositive() || !isMonetary(candidate.Amount) {
		return domain.RejectDecision(domain.RejectInvalidBid, floor)
	}

	if listing.IsClosedAt(now) {
		return domain.RejectDecision(domain.RejectListingClosed, floor)
	}

	if candidate.BidderID == listing.SellerID {
		return domain.RejectDecision(domain.RejectSelfBid, floor)
	}

	if candidate.Amount.LessThanOrEqual(floor) {
		return domain.RejectDecision(domain.RejectBidTooLow, floor)
	}

	return domain.AcceptDecision(floor)
}

// isMonetary reports whether d fits the stored precision without rounding.
func isMonetary(d decimal.Decimal) bool {
	return d.Equal(d.Round(domain.MonetaryPlaces))
}

// Floor is the amount a new bid must exceed: the highest surviving bid, or the
// starting price when there is none.
func Floor(listing *domain.Listing, bids []*domain.Bid) decimal.Decimal {
	if highest, ok := HighestAmount(bids); ok {
		return highest
	}
	return listing.StartingPrice
}

func HighestAmount(bids []*domain.Bid) (decimal.Decimal, bool) {
	if len(bids) == 0 {
		return decimal.Zero, false
	}
	highest := bids[0].Amount
	for _, b := range bids[1:] {
		if b.Amount.GreaterThan(highest) {
			highest = b.Amount
		}
	}
	return highest, true
}
