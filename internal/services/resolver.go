package services

import (
	"time"

	"auction-ledger/internal/domain"
)

type WinnerResolver struct{}

func NewWinnerResolver() *WinnerResolver {
	return &WinnerResolver{}
}

// Resolve picks the winning bid of a closed listing. Ties on amount go to the
// earliest bid. Open listings never have a winner.
func (r *WinnerResolver) Resolve(now time.Time, listing *domain.Listing, bids []*domain.Bid) domain.Resolution {
	if !listing.IsClosedAt(now) {
		return domain.Resolution{Kind: domain.ResolutionNotClosed}
	}

	var best *domain.Bid
	for _, b := range bids {
		if b.ListingID != "" && b.ListingID != listing.ID {
			continue
		}
		switch {
		case best == nil:
			best = b
		case b.Amount.GreaterThan(best.Amount):
			best = b
		case b.Amount.Equal(best.Amount) && b.CreatedAt.Before(best.CreatedAt):
			best = b
		}
	}

	if best == nil {
		return domain.Resolution{Kind: domain.ResolutionNoBids}
	}
	return domain.Resolution{Kind: domain.ResolutionWinner, WinningBid: best}
}
