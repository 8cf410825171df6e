package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"auction-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Store is a concurrency-safe in-memory implementation of domain.ListingStore
// and domain.BidStore. Returned values are copies.
type Store struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing
	order    []string                 // listing ids in creation order
	bids     map[string][]*domain.Bid // key: listingID -> bids in creation order
	bidIndex map[string]string        // key: bidID -> listingID
}

func NewStore() *Store {
	return &Store{
		listings: make(map[string]*domain.Listing),
		bids:     make(map[string][]*domain.Bid),
		bidIndex: make(map[string]string),
	}
}

var (
	_ domain.ListingStore = (*Store)(nil)
	_ domain.BidStore     = (*Store)(nil)
)

func (s *Store) CreateListing(ctx context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ID]; exists {
		return fmt.Errorf("create listing %s: %w", listing.ID, domain.ErrInvalidListing)
	}
	cp := *listing
	s.listings[listing.ID] = &cp
	s.order = append(s.order, listing.ID)
	return nil
}

func (s *Store) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("get listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	cp := *l
	return &cp, nil
}

func (s *Store) UpdateListingDetails(ctx context.Context, listingID string, details domain.ListingDetails, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("update listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	l.Name = details.Name
	l.Description = details.Description
	l.CloseTime = details.CloseTime
	l.UpdatedAt = updatedAt
	return nil
}

func (s *Store) UpdateCurrentPrice(ctx context.Context, listingID string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("update price of listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	l.CurrentPrice = price
	return nil
}

func (s *Store) SetWinner(ctx context.Context, listingID, winnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("set winner of listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	l.WinnerID = winnerID
	l.WinnerResolved = true
	return nil
}

func (s *Store) DeleteListing(ctx context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listingID]; !ok {
		return fmt.Errorf("delete listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	delete(s.listings, listingID)
	for i, id := range s.order {
		if id == listingID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetActiveListings(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.filterListings(func(l *domain.Listing) bool {
		return !l.IsClosedAt(now)
	}), nil
}

func (s *Store) GetListingsBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return s.filterListings(func(l *domain.Listing) bool {
		return l.SellerID == sellerID
	}), nil
}

func (s *Store) GetUnresolvedClosed(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.filterListings(func(l *domain.Listing) bool {
		return l.IsClosedAt(now) && !l.WinnerResolved
	}), nil
}

func (s *Store) SearchListings(ctx context.Context, query string) ([]*domain.Listing, error) {
	q := strings.ToLower(query)
	return s.filterListings(func(l *domain.Listing) bool {
		return strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Description), q)
	}), nil
}

func (s *Store) filterListings(keep func(*domain.Listing) bool) []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Listing
	for _, id := range s.order {
		l := s.listings[id]
		if keep(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out
}

func (s *Store) InsertBid(ctx context.Context, bid *domain.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[bid.ListingID]; !ok {
		return fmt.Errorf("insert bid for listing %s: %w", bid.ListingID, domain.ErrListingNotFound)
	}

	cp := *bid
	bids := append(s.bids[bid.ListingID], &cp)
	sort.SliceStable(bids, func(i, j int) bool { return bidBefore(bids[i], bids[j]) })
	s.bids[bid.ListingID] = bids
	s.bidIndex[bid.ID] = bid.ListingID
	return nil
}

func (s *Store) DeleteBid(ctx context.Context, bidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listingID, ok := s.bidIndex[bidID]
	if !ok {
		return fmt.Errorf("delete bid %s: %w", bidID, domain.ErrBidNotFound)
	}

	bids := s.bids[listingID]
	for i, b := range bids {
		if b.ID == bidID {
			s.bids[listingID] = append(bids[:i:i], bids[i+1:]...)
			break
		}
	}
	if len(s.bids[listingID]) == 0 {
		delete(s.bids, listingID)
	}
	delete(s.bidIndex, bidID)
	return nil
}

func (s *Store) DeleteBidsByListing(ctx context.Context, listingID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bids := s.bids[listingID]
	for _, b := range bids {
		delete(s.bidIndex, b.ID)
	}
	delete(s.bids, listingID)
	return len(bids), nil
}

func (s *Store) GetBidsByListing(ctx context.Context, listingID string) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBids(s.bids[listingID]), nil
}

func (s *Store) GetBidsByBidder(ctx context.Context, bidderID string) ([]*domain.Bid, error) {
	all, err := s.GetAllBids(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Bid
	for _, b := range all {
		if b.BidderID == bidderID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) GetAllBids(ctx context.Context) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Bid
	for _, bids := range s.bids {
		out = append(out, copyBids(bids)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return bidBefore(out[i], out[j]) })
	return out, nil
}

// bidBefore orders by creation time. Amounts on one listing strictly increase,
// so they break ties between bids created in the same instant.
func bidBefore(a, b *domain.Bid) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Amount.LessThan(b.Amount)
}

func copyBids(bids []*domain.Bid) []*domain.Bid {
	if len(bids) == 0 {
		return nil
	}
	out := make([]*domain.Bid, len(bids))
	for i, b := range bids {
		cp := *b
		out[i] = &cp
	}
	return out
}
