package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-ledger/internal/domain"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const listingColumns = `id, seller_id, name, description, starting_price, current_price,
        start_time, close_time, winner_id, winner_resolved, created_at, updated_at`

type MySQLListingRepository struct {
	db *sql.DB
}

func NewMySQLListingRepository(db *sql.DB) *MySQLListingRepository {
	return &MySQLListingRepository{db: db}
}

var _ domain.ListingStore = (*MySQLListingRepository)(nil)

func (r *MySQLListingRepository) CreateListing(ctx context.Context, listing *domain.Listing) error {
	query := `
        INSERT INTO listings (` + listingColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		listing.ID, listing.SellerID, listing.Name, listing.Description,
		listing.StartingPrice, listing.CurrentPrice,
		listing.StartTime, listing.CloseTime,
		nullString(listing.WinnerID), listing.WinnerResolved,
		listing.CreatedAt, listing.UpdatedAt)
	return domain.NewStorageError("create listing", err)
}

func (r *MySQLListingRepository) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`

	listing, err := scanListing(r.db.QueryRowContext(ctx, query, listingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrListingNotFound)
	}
	if err != nil {
		return nil, domain.NewStorageError("get listing", err)
	}
	return listing, nil
}

func (r *MySQLListingRepository) UpdateListingDetails(ctx context.Context, listingID string, details domain.ListingDetails, updatedAt time.Time) error {
	query := `UPDATE listings SET name = ?, description = ?, close_time = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		details.Name, details.Description, details.CloseTime, updatedAt, listingID)
	return r.checkUpdated(ctx, "update listing", listingID, res, err)
}

func (r *MySQLListingRepository) UpdateCurrentPrice(ctx context.Context, listingID string, price decimal.Decimal) error {
	query := `UPDATE listings SET current_price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, price, listingID)
	return r.checkUpdated(ctx, "update current price", listingID, res, err)
}

func (r *MySQLListingRepository) SetWinner(ctx context.Context, listingID, winnerID string) error {
	query := `UPDATE listings SET winner_id = ?, winner_resolved = TRUE WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullString(winnerID), listingID)
	return r.checkUpdated(ctx, "set winner", listingID, res, err)
}

func (r *MySQLListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, listingID)
	return checkAffected("delete listing", listingID, res, err)
}

func (r *MySQLListingRepository) GetActiveListings(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	query := `
        SELECT ` + listingColumns + `
        FROM listings WHERE close_time > ?
        ORDER BY created_at ASC
    `
	return r.queryListings(ctx, "get active listings", query, now)
}

func (r *MySQLListingRepository) GetListingsBySeller(ctx context.Context, sellerID string) ([]*domain.Listing, error) {
	query := `
        SELECT ` + listingColumns + `
        FROM listings WHERE seller_id = ?
        ORDER BY created_at ASC
    `
	return r.queryListings(ctx, "get listings by seller", query, sellerID)
}

func (r *MySQLListingRepository) GetUnresolvedClosed(ctx context.Context, now time.Time) ([]*domain.Listing, error) {
	query := `
        SELECT ` + listingColumns + `
        FROM listings WHERE close_time <= ? AND winner_resolved = FALSE
        ORDER BY close_time ASC
    `
	return r.queryListings(ctx, "get unresolved closed listings", query, now)
}

func (r *MySQLListingRepository) SearchListings(ctx context.Context, q string) ([]*domain.Listing, error) {
	query := `
        SELECT ` + listingColumns + `
        FROM listings WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?
        ORDER BY created_at ASC
    `
	pattern := "%" + strings.ToLower(q) + "%"
	return r.queryListings(ctx, "search listings", query, pattern, pattern)
}

func (r *MySQLListingRepository) queryListings(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return listings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var winnerID sql.NullString

	err := row.Scan(&listing.ID, &listing.SellerID, &listing.Name, &listing.Description,
		&listing.StartingPrice, &listing.CurrentPrice,
		&listing.StartTime, &listing.CloseTime,
		&winnerID, &listing.WinnerResolved,
		&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return nil, err
	}

	listing.WinnerID = winnerID.String
	return &listing, nil
}

func checkAffected(op, listingID string, res sql.Result, err error) error {
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, listingID, domain.ErrListingNotFound)
	}
	return nil
}

// checkUpdated treats zero affected rows as not-found only when the row is
// really absent. MySQL counts changed rows, so an UPDATE that writes the
// value already stored reports 0 unless the DSN sets clientFoundRows.
func (r *MySQLListingRepository) checkUpdated(ctx context.Context, op, listingID string, res sql.Result, err error) error {
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	if n > 0 {
		return nil
	}

	var count int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE id = ?`, listingID).Scan(&count)
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s %s: %w", op, listingID, domain.ErrListingNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
