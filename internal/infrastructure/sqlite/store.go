package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"auction-ledger/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type listingRecord struct {
	ID             string          `gorm:"primaryKey;size:64"`
	SellerID       string          `gorm:"size:64;index;not null"`
	Name           string          `gorm:"not null"`
	Description    string          `gorm:"not null"`
	StartingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StartTime      time.Time       `gorm:"not null"`
	CloseTime      time.Time       `gorm:"index;not null"`
	WinnerID       *string         `gorm:"size:64"`
	WinnerResolved bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (listingRecord) TableName() string { return "listings" }

type bidRecord struct {
	ID        string          `gorm:"primaryKey;size:64"`
	ListingID string          `gorm:"size:64;index:idx_bids_listing;not null"`
	BidderID  string          `gorm:"size:64;index:idx_bids_bidder;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"index:idx_bids_listing;index:idx_bids_bidder"`
}

func (bidRecord) TableName() string { return "bids" }

// Store keeps listings and bids in a single SQLite file through GORM.
type Store struct {
	db *gorm.DB
}

// Open creates the database file and its directory when missing and migrates
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create DB directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return New(db)
}

// New wraps an open connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&listingRecord{}, &bidRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ domain.ListingStore = (*Store)(nil)
	_ domain.BidStore     = (*Store)(nil)
)

// ======================================================================================
// Listing Operations
// ======================================================================================

func (s *Store) CreateListing(ctx context.Context, listing *domain.Listing) error {
	rec := toListingRecord(listing)
	return domain.NewStorageError("create listing", s.db.WithContext(ctx).Create(&rec).Error)
}

func (s *Store) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	var rec listingRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", listingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	if err != nil {
		return nil, domain.NewStorageError("get listing", err)
	}
	return rec.toDomain(), nil
}

func (s *Store) UpdateListingDetails(ctx context.Context, listingID string, details domain.ListingDetails, updatedAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&listingRecord{}).Where("id = ?", listingID).
		UpdateColumns(map[string]interface{}{
			"name":        details.Name,
			"description": details.Description,
			"close_time":  details.CloseTime.UTC(),
			"updated_at":  updatedAt.UTC(),
		})
	return checkAffected("update listing", listingID, res)
}

func (s *Store) UpdateCurrentPrice(ctx context.Context, listingID string, price decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&listingRecord{}).Where("id = ?", listingID).
		UpdateColumn("current_price", price)
	return checkAffected("update current price", listingID, res)
}

func (s *Store) SetWinner(ctx context.Context, listingID, winnerID string) error {
	var winner *string
	if winnerID != "" {
		winner = &winnerID
	}
	res := s.db.WithContext(ctx).Model(&listingRecord{}).Where("id = ?", listingID).
		UpdateColumns(map[string]interface{}{
			"winner_id":       winner,
			"winner_resolved": true,
		})
	return checkAffected("set winner", listingID, res)
}

func (s *Store) DeleteListing(ctx context.Context, listingID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", listingID).Delete(&listingRecord{})
	return checkAffected("delete listing", listingID, res)
}

func (s *Store) GetActiveListings(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.findListings(ctx, "get active listings", "close_time > ?", now.UTC())
}

func (s *Store) GetListingsBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	return s.findListings(ctx, "get listings by seller", "seller_id = ?", sellerID)
}

func (s *Store) GetUnresolvedClosed(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	return s.findListings(ctx, "get unresolved closed listings",
		"close_time <= ? AND winner_resolved = ?", now.UTC(), false)
}

func (s *Store) SearchListings(ctx context.Context, query string) ([]*domain.Listing, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return s.findListings(ctx, "search listings",
		"LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
}

func (s *Store) findListings(ctx context.Context, op string, where string, args ...interface{}) ([]*domain.Listing, error) {
	var recs []listingRecord
	err := s.db.WithContext(ctx).Where(where, args...).Order("created_at ASC").Find(&recs).Error
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	listings := make([]*domain.Listing, 0, len(recs))
	for i := range recs {
		listings = append(listings, recs[i].toDomain())
	}
	return listings, nil
}

// ======================================================================================
// Bid Operations
// ======================================================================================

func (s *Store) InsertBid(ctx context.Context, bid *domain.Bid) error {
	rec := bidRecord{
		ID:        bid.ID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC(),
	}
	return domain.NewStorageError("insert bid", s.db.WithContext(ctx).Create(&rec).Error)
}

func (s *Store) DeleteBid(ctx context.Context, bidID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", bidID).Delete(&bidRecord{})
	if res.Error != nil {
		return domain.NewStorageError("delete bid", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete bid %s: %w", bidID, domain.ErrBidNotFound)
	}
	return nil
}

func (s *Store) DeleteBidsByListing(ctx context.Context, listingID string) (int, error) {
	res := s.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&bidRecord{})
	if res.Error != nil {
		return 0, domain.NewStorageError("delete bids by listing", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (s *Store) GetBidsByListing(ctx context.Context, listingID string) ([]*domain.Bid, error) {
	return s.findBids(ctx, "get bids by listing", s.db.Where("listing_id = ?", listingID))
}

func (s *Store) GetBidsByBidder(ctx context.Context, bidderID string) ([]*domain.Bid, error) {
	return s.findBids(ctx, "get bids by bidder", s.db.Where("bidder_id = ?", bidderID))
}

func (s *Store) GetAllBids(ctx context.Context) ([]*domain.Bid, error) {
	return s.findBids(ctx, "get all bids", s.db)
}

func (s *Store) findBids(ctx context.Context, op string, q *gorm.DB) ([]*domain.Bid, error) {
	var recs []bidRecord
	if err := q.WithContext(ctx).Order("created_at ASC, amount ASC").Find(&recs).Error; err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	bids := make([]*domain.Bid, 0, len(recs))
	for _, rec := range recs {
		bids = append(bids, &domain.Bid{
			ID:        rec.ID,
			ListingID: rec.ListingID,
			BidderID:  rec.BidderID,
			Amount:    rec.Amount,
			CreatedAt: rec.CreatedAt,
		})
	}
	return bids, nil
}

func checkAffected(op, listingID string, res *gorm.DB) error {
	if res.Error != nil {
		return domain.NewStorageError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", op, listingID, domain.ErrListingNotFound)
	}
	return nil
}

func toListingRecord(l *domain.Listing) listingRecord {
	rec := listingRecord{
		ID:             l.ID,
		SellerID:       l.SellerID,
		Name:           l.Name,
		Description:    l.Description,
		StartingPrice:  l.StartingPrice,
		CurrentPrice:   l.CurrentPrice,
		StartTime:      l.StartTime.UTC(),
		CloseTime:      l.CloseTime.UTC(),
		WinnerResolved: l.WinnerResolved,
		CreatedAt:      l.CreatedAt.UTC(),
		UpdatedAt:      l.UpdatedAt.UTC(),
	}
	if l.WinnerID != "" {
		winner := l.WinnerID
		rec.WinnerID = &winner
	}
	return rec
}

func (r *listingRecord) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:             r.ID,
		SellerID:       r.SellerID,
		Name:           r.Name,
		Description:    r.Description,
		StartingPrice:  r.StartingPrice,
		CurrentPrice:   r.CurrentPrice,
		StartTime:      r.StartTime,
		CloseTime:      r.CloseTime,
		WinnerResolved: r.WinnerResolved,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.WinnerID != nil {
		l.WinnerID = *r.WinnerID
	}
	return l
}
