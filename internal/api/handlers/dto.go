package handlers

import (
	"time"

	"auction-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	SellerID      string          `json:"seller_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	StartTime     *time.Time      `json:"start_time,omitempty"`
	CloseTime     time.Time       `json:"close_time"`
}

type UpdateListingRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CloseTime   time.Time `json:"close_time"`
}

type PlaceBidRequest struct {
	BidderID string          `json:"bidder_id"`
	Amount   decimal.Decimal `json:"amount"`
}

type ListingResponse struct {
	ID             string    `json:"id"`
	SellerID       string    `json:"seller_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	StartingPrice  string    `json:"starting_price"`
	CurrentPrice   string    `json:"current_price"`
	StartTime      time.Time `json:"start_time"`
	CloseTime      time.Time `json:"close_time"`
	Status         string    `json:"status"`
	WinnerID       string    `json:"winner_id,omitempty"`
	WinnerResolved bool      `json:"winner_resolved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BidResponse struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type PlaceBidResponse struct {
	Outcome string       `json:"outcome"`
	Bid     *BidResponse `json:"bid,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	// Floor is the amount the bid had to exceed.
	Floor string `json:"floor"`
}

// HighestBidResponse carries a null amount when the listing has no bids.
type HighestBidResponse struct {
	ListingID string  `json:"listing_id"`
	Amount    *string `json:"amount"`
}

type CancelBidsResponse struct {
	Removed int `json:"removed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MonetaryPlaces)
}

func toListingResponse(l *domain.Listing, now time.Time) ListingResponse {
	return ListingResponse{
		ID:             l.ID,
		SellerID:       l.SellerID,
		Name:           l.Name,
		Description:    l.Description,
		StartingPrice:  money(l.StartingPrice),
		CurrentPrice:   money(l.CurrentPrice),
		StartTime:      l.StartTime,
		CloseTime:      l.CloseTime,
		Status:         l.StatusAt(now).String(),
		WinnerID:       l.WinnerID,
		WinnerResolved: l.WinnerResolved,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toListingResponses(listings []*domain.Listing, now time.Time) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l, now))
	}
	return out
}

func toBidResponse(b *domain.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		ListingID: b.ListingID,
		BidderID:  b.BidderID,
		Amount:    money(b.Amount),
		CreatedAt: b.CreatedAt,
	}
}

func toBidResponses(bids []*domain.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, toBidResponse(b))
	}
	return out
}
