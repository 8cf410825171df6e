package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"
)

// ListingService manages the listing lifecycle around the ledger: creation,
// seller edits, lookups and cascading deletion.
type ListingService struct {
	listings domain.ListingStore
	bids     domain.BidStore
	locker   domain.ListingLocker
	clock    utils.Clock
	log      logger.Logger
}

func NewListingService(
	listings domain.ListingStore,
	bids domain.BidStore,
	locker domain.ListingLocker,
	clock utils.Clock,
	log logger.Logger,
) *ListingService {
	return &ListingService{
		listings: listings,
		bids:     bids,
		locker:   locker,
		clock:    clock,
		log:      log,
	}
}

func (s *ListingService) CreateListing(ctx context.Context, req domain.NewListing) (*domain.Listing, error) {
	now := s.clock.Now()

	if err := validateNewListing(req, now); err != nil {
		return nil, err
	}

	startTime := req.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	price := req.StartingPrice.Round(domain.MonetaryPlaces)
	listing := &domain.Listing{
		ID:            utils.GenerateID("listing"),
		SellerID:      req.SellerID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		StartingPrice: price,
		CurrentPrice:  price,
		StartTime:     startTime,
		CloseTime:     req.CloseTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.listings.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info("Listing created", "listing_id", listing.ID, "seller_id", listing.SellerID,
		"starting_price", listing.StartingPrice.String(), "close_time", listing.CloseTime)
	return listing, nil
}

func validateNewListing(req domain.NewListing, now time.Time) error {
	switch {
	case req.SellerID == "":
		return fmt.Errorf("%w: seller id required", domain.ErrInvalidListing)
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("%w: name required", domain.ErrInvalidListing)
	case !req.StartingPrice.Round(domain.MonetaryPlaces).IsPositive():
		return fmt.Errorf("%w: starting price must be positive", domain.ErrInvalidListing)
	case !req.CloseTime.After(now):
		return fmt.Errorf("%w: close time must be in the future", domain.ErrInvalidListing)
	case !req.StartTime.IsZero() && !req.StartTime.Before(req.CloseTime):
		return fmt.Errorf("%w: start time must be before close time", domain.ErrInvalidListing)
	}
	return nil
}

func (s *ListingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// UpdateListingDetails changes seller-owned fields. Price and winner are left
// to the ledger. A closed listing can no longer be edited.
func (s *ListingService) UpdateListingDetails(ctx context.Context, listingID string, details domain.ListingDetails) (*domain.Listing, error) {
	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("update listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("update listing %s: %w", listingID, err)
	}

	now := s.clock.Now()
	if listing.IsClosedAt(now) {
		return nil, fmt.Errorf("update listing %s: %w", listingID, domain.ErrListingClosed)
	}

	if strings.TrimSpace(details.Name) == "" {
		return nil, fmt.Errorf("update listing %s: %w: name required", listingID, domain.ErrInvalidListing)
	}
	if !details.CloseTime.After(now) {
		return nil, fmt.Errorf("update listing %s: %w: close time must be in the future", listingID, domain.ErrInvalidListing)
	}

	details.Name = strings.TrimSpace(details.Name)
	if err := s.listings.UpdateListingDetails(ctx, listingID, details, now); err != nil {
		return nil, fmt.Errorf("update listing %s: %w", listingID, err)
	}

	listing.Name = details.Name
	listing.Description = details.Description
	listing.CloseTime = details.CloseTime
	listing.UpdatedAt = now

	s.log.Info("Listing updated", "listing_id", listingID, "close_time", details.CloseTime)
	return listing, nil
}

// DeleteListing removes the listing's bids and then the listing itself. If the
// listing cannot be removed its bids are put back.
func (s *ListingService) DeleteListing(ctx context.Context, listingID string) error {
	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}
	defer unlock()

	if _, err := s.listings.GetListing(ctx, listingID); err != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}

	existing, err := s.bids.GetBidsByListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}

	removed, err := s.bids.DeleteBidsByListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}

	if err := s.listings.DeleteListing(ctx, listingID); err != nil {
		// The listing survives, so its bids are put back.
		restoreBids(ctx, s.bids, existing, s.log)
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}

	s.log.Info("Listing deleted", "listing_id", listingID, "bids_removed", removed)
	return nil
}

func (s *ListingService) ActiveListings(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := s.listings.GetActiveListings(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("active listings: %w", err)
	}
	return listings, nil
}

func (s *ListingService) ListingsBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	listings, err := s.listings.GetListingsBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("listings for seller %s: %w", sellerID, err)
	}
	return listings, nil
}

func (s *ListingService) SearchListings(ctx context.Context, query string) ([]*domain.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ActiveListings(ctx)
	}

	listings, err := s.listings.SearchListings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search listings %q: %w", query, err)
	}
	return listings, nil
}
