package mysql

import (
	"context"
	"database/sql"

	"auction-ledger/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
        id VARCHAR(64) PRIMARY KEY,
        seller_id VARCHAR(64) NOT NULL,
        name VARCHAR(255) NOT NULL,
        description TEXT NOT NULL,
        starting_price DECIMAL(10,2) NOT NULL,
        current_price DECIMAL(10,2) NOT NULL,
        start_time DATETIME(6) NOT NULL,
        close_time DATETIME(6) NOT NULL,
        winner_id VARCHAR(64) NULL,
        winner_resolved BOOLEAN NOT NULL DEFAULT FALSE,
        created_at DATETIME(6) NOT NULL,
        updated_at DATETIME(6) NOT NULL,
        INDEX idx_listings_seller (seller_id),
        INDEX idx_listings_close (close_time, winner_resolved)
    )`,
	`CREATE TABLE IF NOT EXISTS bids (
        id VARCHAR(64) PRIMARY KEY,
        listing_id VARCHAR(64) NOT NULL,
        bidder_id VARCHAR(64) NOT NULL,
        amount DECIMAL(10,2) NOT NULL,
        created_at DATETIME(6) NOT NULL,
        INDEX idx_bids_listing (listing_id, created_at),
        INDEX idx_bids_bidder (bidder_id, created_at)
    )`,
}

// Migrate creates the listings and bids tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return domain.NewStorageError("migrate", err)
		}
	}
	return nil
}
