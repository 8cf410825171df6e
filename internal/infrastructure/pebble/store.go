package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"auction-ledger/internal/domain"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/shopspring/decimal"
)

// Store persists listings and bids in an embedded Pebble database. Values are
// JSON; secondary indexes are written in the same batch as the record.
type Store struct {
	db *pebble.DB

	// Serializes read-modify-write of listing records.
	mu sync.Mutex
}

func Open(dir string) (*Store, error) {
	return OpenWithFS(dir, vfs.Default)
}

// OpenWithFS opens the database on the given filesystem; tests pass vfs.NewMem().
func OpenWithFS(dir string, fs vfs.FS) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{FS: fs})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

var (
	_ domain.ListingStore = (*Store)(nil)
	_ domain.BidStore     = (*Store)(nil)
)

func (s *Store) CreateListing(ctx context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadListing(listing.ID); err == nil {
		return fmt.Errorf("create listing %s: %w", listing.ID, domain.ErrInvalidListing)
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return err
	}

	return s.putListing("create listing", listing)
}

func (s *Store) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.loadListing(listingID)
}

func (s *Store) UpdateListingDetails(ctx context.Context, listingID string, details domain.ListingDetails, updatedAt time.Time) error {
	return s.updateListing("update listing", listingID, func(l *domain.Listing) {
		l.Name = details.Name
		l.Description = details.Description
		l.CloseTime = details.CloseTime
		l.UpdatedAt = updatedAt
	})
}

func (s *Store) UpdateCurrentPrice(ctx context.Context, listingID string, price decimal.Decimal) error {
	return s.updateListing("update current price", listingID, func(l *domain.Listing) {
		l.CurrentPrice = price
	})
}

func (s *Store) SetWinner(ctx context.Context, listingID, winnerID string) error {
	return s.updateListing("set winner", listingID, func(l *domain.Listing) {
		l.WinnerID = winnerID
		l.WinnerResolved = true
	})
}

func (s *Store) DeleteListing(ctx context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadListing(listingID); err != nil {
		return err
	}
	if err := s.db.Delete(listingKey(listingID), pebble.Sync); err != nil {
		return domain.NewStorageError("delete listing", err)
	}
	return nil
}

func (s *Store) GetActiveListings(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.scanListings("get active listings", func(l *domain.Listing) bool {
		return !l.IsClosedAt(now)
	})
}

func (s *Store) GetListingsBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return s.scanListings("get listings by seller", func(l *domain.Listing) bool {
		return l.SellerID == sellerID
	})
}

func (s *Store) GetUnresolvedClosed(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.scanListings("get unresolved closed listings", func(l *domain.Listing) bool {
		return l.IsClosedAt(now) && !l.WinnerResolved
	})
}

func (s *Store) SearchListings(ctx context.Context, query string) ([]*domain.Listing, error) {
	q := strings.ToLower(query)
	return s.scanListings("search listings", func(l *domain.Listing) bool {
		return strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Description), q)
	})
}

func (s *Store) loadListing(listingID string) (*domain.Listing, error) {
	val, closer, err := s.db.Get(listingKey(listingID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrListingNotFound)
		}
		return nil, domain.NewStorageError("get listing", err)
	}
	defer closer.Close()

	var listing domain.Listing
	if err := json.Unmarshal(val, &listing); err != nil {
		return nil, domain.NewStorageError("decode listing", err)
	}
	return &listing, nil
}

func (s *Store) putListing(op string, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	if err := s.db.Set(listingKey(listing.ID), data, pebble.Sync); err != nil {
		return domain.NewStorageError(op, err)
	}
	return nil
}

func (s *Store) updateListing(op, listingID string, apply func(*domain.Listing)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.loadListing(listingID)
	if err != nil {
		return err
	}
	apply(listing)
	return s.putListing(op, listing)
}

func (s *Store) scanListings(op string, keep func(*domain.Listing) bool) ([]*domain.Listing, error) {
	prefix := []byte(prefixListing)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer iter.Close()

	var listings []*domain.Listing
	for iter.First(); iter.Valid(); iter.Next() {
		var listing domain.Listing
		if err := json.Unmarshal(iter.Value(), &listing); err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		if keep(&listing) {
			listings = append(listings, &listing)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.Before(listings[j].CreatedAt)
	})
	return listings, nil
}

func (s *Store) InsertBid(ctx context.Context, bid *domain.Bid) error {
	if _, err := s.loadListing(bid.ListingID); err != nil {
		return err
	}

	data, err := json.Marshal(bid)
	if err != nil {
		return fmt.Errorf("failed to marshal bid: %w", err)
	}

	ts := bid.CreatedAt.UnixNano()
	key := bidKey(bid.ListingID, ts, bid.ID)

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key, data, nil); err != nil {
		return domain.NewStorageError("insert bid", err)
	}
	if err := batch.Set(bidderKey(bid.BidderID, ts, bid.ID), key, nil); err != nil {
		return domain.NewStorageError("insert bid", err)
	}
	if err := batch.Set(bidIDKey(bid.ID), key, nil); err != nil {
		return domain.NewStorageError("insert bid", err)
	}
	return domain.NewStorageError("insert bid", batch.Commit(pebble.Sync))
}

func (s *Store) DeleteBid(ctx context.Context, bidID string) error {
	key, closer, err := s.db.Get(bidIDKey(bidID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("delete bid %s: %w", bidID, domain.ErrBidNotFound)
		}
		return domain.NewStorageError("delete bid", err)
	}
	recordKey := append([]byte(nil), key...)
	closer.Close()

	bid, err := s.loadBid(recordKey)
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := s.deleteBidInBatch(batch, recordKey, bid); err != nil {
		return err
	}
	return domain.NewStorageError("delete bid", batch.Commit(pebble.Sync))
}

func (s *Store) DeleteBidsByListing(ctx context.Context, listingID string) (int, error) {
	bids, keys, err := s.scanBids("delete bids by listing", bidPrefix(listingID))
	if err != nil {
		return 0, err
	}
	if len(bids) == 0 {
		return 0, nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for i, bid := range bids {
		if err := s.deleteBidInBatch(batch, keys[i], bid); err != nil {
			return 0, err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return 0, domain.NewStorageError("delete bids by listing", err)
	}
	return len(bids), nil
}

func (s *Store) GetBidsByListing(ctx context.Context, listingID string) ([]*domain.Bid, error) {
	bids, _, err := s.scanBids("get bids by listing", bidPrefix(listingID))
	if err != nil {
		return nil, err
	}
	sortBids(bids)
	return bids, nil
}

func (s *Store) GetBidsByBidder(ctx context.Context, bidderID string) ([]*domain.Bid, error) {
	prefix := bidderPrefix(bidderID)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, domain.NewStorageError("get bids by bidder", err)
	}
	defer iter.Close()

	var bids []*domain.Bid
	for iter.First(); iter.Valid(); iter.Next() {
		bid, err := s.loadBid(iter.Value())
		if err != nil {
			return nil, err
		}
		// Bidder ids may themselves contain the separator.
		if bid.BidderID == bidderID {
			bids = append(bids, bid)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, domain.NewStorageError("get bids by bidder", err)
	}

	sortBids(bids)
	return bids, nil
}

func (s *Store) GetAllBids(ctx context.Context) ([]*domain.Bid, error) {
	bids, _, err := s.scanBids("get all bids", []byte(prefixBid))
	if err != nil {
		return nil, err
	}
	sortBids(bids)
	return bids, nil
}

func (s *Store) loadBid(key []byte) (*domain.Bid, error) {
	val, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("bid at %s: %w", key, domain.ErrBidNotFound)
		}
		return nil, domain.NewStorageError("get bid", err)
	}
	defer closer.Close()

	var bid domain.Bid
	if err := json.Unmarshal(val, &bid); err != nil {
		return nil, domain.NewStorageError("decode bid", err)
	}
	return &bid, nil
}

func (s *Store) scanBids(op string, prefix []byte) ([]*domain.Bid, [][]byte, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, nil, domain.NewStorageError(op, err)
	}
	defer iter.Close()

	var (
		bids []*domain.Bid
		keys [][]byte
	)
	for iter.First(); iter.Valid(); iter.Next() {
		var bid domain.Bid
		if err := json.Unmarshal(iter.Value(), &bid); err != nil {
			return nil, nil, domain.NewStorageError(op, err)
		}
		bids = append(bids, &bid)
		keys = append(keys, append([]byte(nil), iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return nil, nil, domain.NewStorageError(op, err)
	}
	return bids, keys, nil
}

func (s *Store) deleteBidInBatch(batch *pebble.Batch, key []byte, bid *domain.Bid) error {
	ts := bid.CreatedAt.UnixNano()
	for _, k := range [][]byte{key, bidderKey(bid.BidderID, ts, bid.ID), bidIDKey(bid.ID)} {
		if err := batch.Delete(k, nil); err != nil {
			return domain.NewStorageError("delete bid", err)
		}
	}
	return nil
}

// sortBids restores creation order; amounts break ties within one instant.
func sortBids(bids []*domain.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if !bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].CreatedAt.Before(bids[j].CreatedAt)
		}
		return bids[i].Amount.LessThan(bids[j].Amount)
	})
}
