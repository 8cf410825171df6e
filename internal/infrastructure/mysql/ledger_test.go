package mysql

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/infrastructure/memory"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// Withdrawing a bid below the leader leaves the price unchanged, which MySQL
// reports as zero affected rows.
func TestCancelLowerBidKeepsPrice(t *testing.T) {
	mock, listings, bids := newMock(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	ledger := services.NewAuctionLedger(listings, bids, services.NewRuleBidValidator(),
		services.NewWinnerResolver(), memory.NewKeyedLocker(), utils.NewManualClock(now), logger.NewNop())

	mock.ExpectQuery(`SELECT .* FROM listings WHERE id = \?`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows(listingRowColumns).
			AddRow("l1", "seller", "Lamp", "", "500.00", "700.00",
				now.Add(-time.Hour), now.Add(time.Hour), nil, false, now, now))
	mock.ExpectQuery(`FROM bids WHERE listing_id = \?`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "listing_id", "bidder_id", "amount", "created_at"}).
			AddRow("bid_1", "l1", "bidder2", "600.00", now.Add(-30*time.Minute)).
			AddRow("bid_2", "l1", "bidder3", "700.00", now.Add(-20*time.Minute)))
	mock.ExpectExec(`DELETE FROM bids WHERE id = \?`).
		WithArgs("bid_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE listings SET current_price = \? WHERE id = \?`).
		WithArgs("700", "l1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings WHERE id = \?`).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	removed, err := ledger.CancelBids(context.Background(), "l1", "bidder2")
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
