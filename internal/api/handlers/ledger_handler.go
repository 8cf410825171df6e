package handlers

import (
	"net/http"
	"strings"

	"auction-ledger/internal/domain"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler serves the listing and bid endpoints of the ledger service.
type Handler struct {
	listings *services.ListingService
	ledger   *services.AuctionLedger
	clock    utils.Clock
	log      logger.Logger
}

func NewHandler(listings *services.ListingService, ledger *services.AuctionLedger, clock utils.Clock, log logger.Logger) *Handler {
	return &Handler{
		listings: listings,
		ledger:   ledger,
		clock:    clock,
		log:      log,
	}
}

// RegisterRoutes mounts the API under /api/v1 and the health probe at /health.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	api.POST("/listings", h.CreateListing)
	api.GET("/listings", h.ListListings)
	api.GET("/listings/:id", h.GetListing)
	api.PUT("/listings/:id", h.UpdateListing)
	api.DELETE("/listings/:id", h.DeleteListing)

	api.POST("/listings/:id/bids", h.PlaceBid)
	api.GET("/listings/:id/bids", h.GetListingBids)
	api.GET("/listings/:id/bids/highest", h.GetHighestBid)
	api.DELETE("/listings/:id/bidders/:bidderId/bids", h.CancelBids)

	api.GET("/bids", h.GetAllBids)
	api.GET("/bidders/:id/bids", h.GetBidderBids)
	api.GET("/bidders/:id/won", h.GetWonListings)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "auction-ledger",
		"timestamp": h.clock.Now(),
	})
}

func (h *Handler) CreateListing(c echo.Context) error {
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	h.log.Info("Create listing endpoint called", "seller_id", req.SellerID, "name", req.Name)

	newListing := domain.NewListing{
		SellerID:      req.SellerID,
		Name:          req.Name,
		Description:   req.Description,
		StartingPrice: req.StartingPrice,
		CloseTime:     req.CloseTime,
	}
	if req.StartTime != nil {
		newListing.StartTime = *req.StartTime
	}

	listing, err := h.listings.CreateListing(c.Request().Context(), newListing)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toListingResponse(listing, h.clock.Now()))
}

// ListListings returns active listings, or a seller's listings with ?seller=,
// or a text search with ?q=.
func (h *Handler) ListListings(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		listings []*domain.Listing
		err      error
	)
	switch {
	case c.QueryParam("seller") != "":
		listings, err = h.listings.ListingsBySeller(ctx, c.QueryParam("seller"))
	case strings.TrimSpace(c.QueryParam("q")) != "":
		listings, err = h.listings.SearchListings(ctx, c.QueryParam("q"))
	default:
		listings, err = h.listings.ActiveListings(ctx)
	}
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toListingResponses(listings, h.clock.Now()))
}

func (h *Handler) GetListing(c echo.Context) error {
	listing, err := h.listings.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing, h.clock.Now()))
}

func (h *Handler) UpdateListing(c echo.Context) error {
	var req UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	listingID := c.Param("id")
	h.log.Info("Update listing endpoint called", "listing_id", listingID)

	listing, err := h.listings.UpdateListingDetails(c.Request().Context(), listingID, domain.ListingDetails{
		Name:        req.Name,
		Description: req.Description,
		CloseTime:   req.CloseTime,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toListingResponse(listing, h.clock.Now()))
}

func (h *Handler) DeleteListing(c echo.Context) error {
	listingID := c.Param("id")
	h.log.Info("Delete listing endpoint called", "listing_id", listingID)

	if err := h.listings.DeleteListing(c.Request().Context(), listingID); err != nil {
		return h.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PlaceBid(c echo.Context) error {
	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if req.BidderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bidder_id is required"})
	}

	listingID := c.Param("id")
	h.log.Info("Place bid endpoint called", "listing_id", listingID, "bidder_id", req.BidderID)

	result, err := h.ledger.PlaceBid(c.Request().Context(), listingID, req.BidderID, req.Amount)
	if err != nil {
		return h.respondError(c, err)
	}

	if !result.IsAccepted() {
		return c.JSON(http.StatusConflict, PlaceBidResponse{
			Outcome: string(result.Outcome),
			Reason:  string(result.Reason),
			Floor:   money(result.Floor),
		})
	}

	bid := toBidResponse(result.Bid)
	return c.JSON(http.StatusCreated, PlaceBidResponse{
		Outcome: string(result.Outcome),
		Bid:     &bid,
		Floor:   money(result.Floor),
	})
}

func (h *Handler) GetListingBids(c echo.Context) error {
	bids, err := h.ledger.BidsForListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBidResponses(bids))
}

func (h *Handler) GetHighestBid(c echo.Context) error {
	listingID := c.Param("id")

	amount, ok, err := h.ledger.HighestBid(c.Request().Context(), listingID)
	if err != nil {
		return h.respondError(c, err)
	}
	resp := HighestBidResponse{ListingID: listingID}
	if ok {
		value := money(amount)
		resp.Amount = &value
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CancelBids(c echo.Context) error {
	listingID := c.Param("id")
	bidderID := c.Param("bidderId")
	h.log.Info("Cancel bids endpoint called", "listing_id", listingID, "bidder_id", bidderID)

	removed, err := h.ledger.CancelBids(c.Request().Context(), listingID, bidderID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, CancelBidsResponse{Removed: removed})
}

func (h *Handler) GetAllBids(c echo.Context) error {
	bids, err := h.ledger.AllBids(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBidResponses(bids))
}

func (h *Handler) GetBidderBids(c echo.Context) error {
	bids, err := h.ledger.BidsForBidder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBidResponses(bids))
}

func (h *Handler) GetWonListings(c echo.Context) error {
	listings, err := h.ledger.WonListings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponses(listings, h.clock.Now()))
}

