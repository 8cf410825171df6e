package services

import (
	"context"
	"errors"
	"fmt"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// AuctionLedger owns the bid set and current price of every listing. All
// mutations of one listing run inside that listing's lock.
type AuctionLedger struct {
	listings  domain.ListingStore
	bids      domain.BidStore
	validator domain.BidValidator
	resolver  *WinnerResolver
	locker    domain.ListingLocker
	clock     utils.Clock
	log       logger.Logger
}

func NewAuctionLedger(
	listings domain.ListingStore,
	bids domain.BidStore,
	validator domain.BidValidator,
	resolver *WinnerResolver,
	locker domain.ListingLocker,
	clock utils.Clock,
	log logger.Logger,
) *AuctionLedger {
	return &AuctionLedger{
		listings:  listings,
		bids:      bids,
		validator: validator,
		resolver:  resolver,
		locker:    locker,
		clock:     clock,
		log:       log,
	}
}

func (l *AuctionLedger) PlaceBid(ctx context.Context, listingID, bidderID string, amount decimal.Decimal) (domain.BidResult, error) {
	l.log.Info("Placing bid", "listing_id", listingID, "bidder_id", bidderID, "amount", amount.String())

	unlock, err := l.locker.Lock(ctx, listingID)
	if err != nil {
		return domain.BidResult{}, fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := l.listings.GetListing(ctx, listingID)
	if err != nil {
		return domain.BidResult{}, fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}

	existing, err := l.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return domain.BidResult{}, fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}

	now := l.clock.Now()
	candidate := domain.BidCandidate{ListingID: listingID, BidderID: bidderID, Amount: amount}

	decision := l.validator.Decide(now, listing, existing, candidate)
	if !decision.Accept {
		l.log.Info("Bid rejected", "listing_id", listingID, "bidder_id", bidderID,
			"amount", amount.String(), "reason", decision.Reason, "floor", decision.Floor.String())
		return domain.Rejected(decision.Reason, decision.Floor), nil
	}

	amount = amount.Round(domain.MonetaryPlaces)
	bid := &domain.Bid{
		ID:        utils.GenerateID("bid"),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: now,
	}

	if err := l.bids.InsertBid(ctx, bid); err != nil {
		return domain.BidResult{}, fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}

	if err := l.listings.UpdateCurrentPrice(ctx, listingID, amount); err != nil {
		// Undo the insert so the bid set and the price never disagree.
		if undoErr := l.bids.DeleteBid(ctx, bid.ID); undoErr != nil {
			l.log.Error("Failed to roll back bid", "bid_id", bid.ID, "listing_id", listingID, "error", undoErr)
			err = errors.Join(err, undoErr)
		}
		return domain.BidResult{}, fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}

	l.log.Info("Bid accepted", "bid_id", bid.ID, "listing_id", listingID, "bidder_id", bidderID, "amount", amount.String())
	return domain.Accepted(bid), nil
}

// CancelBids withdraws every bid bidderID holds on the listing and recomputes
// the current price from what remains. Bids cannot be withdrawn once the
// listing has closed.
func (l *AuctionLedger) CancelBids(ctx context.Context, listingID, bidderID string) (int, error) {
	l.log.Info("Cancelling bids", "listing_id", listingID, "bidder_id", bidderID)

	unlock, err := l.locker.Lock(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := l.listings.GetListing(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, err)
	}

	if listing.IsClosedAt(l.clock.Now()) {
		return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, domain.ErrListingClosed)
	}

	existing, err := l.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, err)
	}

	var removed, remaining []*domain.Bid
	for _, b := range existing {
		if b.BidderID == bidderID {
			removed = append(removed, b)
		} else {
			remaining = append(remaining, b)
		}
	}

	if len(removed) == 0 {
		l.log.Warn("No bids to cancel", "listing_id", listingID, "bidder_id", bidderID)
		return 0, nil
	}

	for i, b := range removed {
		if err := l.bids.DeleteBid(ctx, b.ID); err != nil {
			// Put back what was already deleted; the price has not moved yet.
			l.restoreBids(ctx, removed[:i])
			return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, err)
		}
	}

	price := Floor(listing, remaining)
	if err := l.listings.UpdateCurrentPrice(ctx, listingID, price); err != nil {
		l.restoreBids(ctx, removed)
		return 0, fmt.Errorf("cancel bids on listing %s: %w", listingID, err)
	}

	l.log.Info("Bids cancelled", "listing_id", listingID, "bidder_id", bidderID,
		"removed", len(removed), "current_price", price.String())
	return len(removed), nil
}

func (l *AuctionLedger) restoreBids(ctx context.Context, bids []*domain.Bid) {
	restoreBids(ctx, l.bids, bids, l.log)
}

// restoreBids re-inserts bids removed by a mutation that failed part way.
func restoreBids(ctx context.Context, store domain.BidStore, bids []*domain.Bid, log logger.Logger) {
	for _, b := range bids {
		if err := store.InsertBid(ctx, b); err != nil {
			log.Error("Failed to restore bid", "bid_id", b.ID, "listing_id", b.ListingID, "error", err)
		}
	}
}

// HighestBid returns the highest surviving amount on the listing, if any.
func (l *AuctionLedger) HighestBid(ctx context.Context, listingID string) (decimal.Decimal, bool, error) {
	if _, err := l.listings.GetListing(ctx, listingID); err != nil {
		return decimal.Zero, false, fmt.Errorf("highest bid on listing %s: %w", listingID, err)
	}

	bids, err := l.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("highest bid on listing %s: %w", listingID, err)
	}

	highest, ok := HighestAmount(bids)
	return highest, ok, nil
}

func (l *AuctionLedger) BidsForListing(ctx context.Context, listingID string) ([]*domain.Bid, error) {
	if _, err := l.listings.GetListing(ctx, listingID); err != nil {
		return nil, fmt.Errorf("bids for listing %s: %w", listingID, err)
	}

	bids, err := l.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

func (l *AuctionLedger) BidsForBidder(ctx context.Context, bidderID string) ([]*domain.Bid, error) {
	bids, err := l.bids.GetBidsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("bids for bidder %s: %w", bidderID, err)
	}
	return bids, nil
}

func (l *AuctionLedger) AllBids(ctx context.Context) ([]*domain.Bid, error) {
	bids, err := l.bids.GetAllBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("all bids: %w", err)
	}
	return bids, nil
}

// WonListings returns the closed listings whose resolved winner is bidderID.
// Listings that are still open are never reported, whoever leads them.
func (l *AuctionLedger) WonListings(ctx context.Context, bidderID string) ([]*domain.Listing, error) {
	bids, err := l.bids.GetBidsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("won listings for bidder %s: %w", bidderID, err)
	}

	now := l.clock.Now()
	seen := make(map[string]struct{})
	var won []*domain.Listing

	for _, b := range bids {
		if _, ok := seen[b.ListingID]; ok {
			continue
		}
		seen[b.ListingID] = struct{}{}

		listing, err := l.listings.GetListing(ctx, b.ListingID)
		if errors.Is(err, domain.ErrListingNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("won listings for bidder %s: %w", bidderID, err)
		}

		if !listing.IsClosedAt(now) {
			continue
		}

		winnerID := listing.WinnerID
		if !listing.WinnerResolved {
			listingBids, err := l.bids.GetBidsByListing(ctx, listing.ID)
			if err != nil {
				return nil, fmt.Errorf("won listings for bidder %s: %w", bidderID, err)
			}
			winnerID = l.resolver.Resolve(now, listing, listingBids).WinnerID()
		}

		if winnerID == bidderID {
			won = append(won, listing)
		}
	}

	return won, nil
}

// ResolveListing records the winner of a closed listing. Resolving an open
// listing is a no-op that reports ResolutionNotClosed.
func (l *AuctionLedger) ResolveListing(ctx context.Context, listingID string) (domain.Resolution, error) {
	unlock, err := l.locker.Lock(ctx, listingID)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := l.listings.GetListing(ctx, listingID)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve listing %s: %w", listingID, err)
	}

	bids, err := l.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve listing %s: %w", listingID, err)
	}

	resolution := l.resolver.Resolve(l.clock.Now(), listing, bids)
	if resolution.Kind == domain.ResolutionNotClosed {
		return resolution, nil
	}

	if listing.WinnerResolved {
		return resolution, nil
	}

	if err := l.listings.SetWinner(ctx, listingID, resolution.WinnerID()); err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve listing %s: %w", listingID, err)
	}

	l.log.Info("Listing resolved", "listing_id", listingID, "result", resolution.Kind, "winner_id", resolution.WinnerID())
	return resolution, nil
}
