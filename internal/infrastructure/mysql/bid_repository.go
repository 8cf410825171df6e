package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"auction-ledger/internal/domain"
)

const bidColumns = `id, listing_id, bidder_id, amount, created_at`

type MySQLBidRepository struct {
	db *sql.DB
}

func NewMySQLBidRepository(db *sql.DB) *MySQLBidRepository {
	return &MySQLBidRepository{db: db}
}

var _ domain.BidStore = (*MySQLBidRepository)(nil)

func (r *MySQLBidRepository) InsertBid(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (` + bidColumns + `)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.ListingID, bid.BidderID, bid.Amount, bid.CreatedAt)
	return domain.NewStorageError("insert bid", err)
}

func (r *MySQLBidRepository) DeleteBid(ctx context.Context, bidID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bids WHERE id = ?`, bidID)
	if err != nil {
		return domain.NewStorageError("delete bid", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("delete bid", err)
	}
	if n == 0 {
		return fmt.Errorf("delete bid %s: %w", bidID, domain.ErrBidNotFound)
	}
	return nil
}

func (r *MySQLBidRepository) DeleteBidsByListing(ctx context.Context, listingID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bids WHERE listing_id = ?`, listingID)
	if err != nil {
		return 0, domain.NewStorageError("delete bids by listing", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError("delete bids by listing", err)
	}
	return int(n), nil
}

func (r *MySQLBidRepository) GetBidsByListing(ctx context.Context, listingID string) ([]*domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids WHERE listing_id = ?
        ORDER BY created_at ASC, amount ASC
    `
	return r.queryBids(ctx, "get bids by listing", query, listingID)
}

func (r *MySQLBidRepository) GetBidsByBidder(ctx context.Context, bidderID string) ([]*domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids WHERE bidder_id = ?
        ORDER BY created_at ASC, amount ASC
    `
	return r.queryBids(ctx, "get bids by bidder", query, bidderID)
}

func (r *MySQLBidRepository) GetAllBids(ctx context.Context) ([]*domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids
        ORDER BY created_at ASC, amount ASC
    `
	return r.queryBids(ctx, "get all bids", query)
}

func (r *MySQLBidRepository) queryBids(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Bid, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		var bid domain.Bid
		err := rows.Scan(&bid.ID, &bid.ListingID, &bid.BidderID, &bid.Amount, &bid.CreatedAt)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		bids = append(bids, &bid)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return bids, nil
}
