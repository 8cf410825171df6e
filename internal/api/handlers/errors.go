package handlers

import (
	"errors"
	"net/http"

	"auction-ledger/internal/domain"

	"github.com/labstack/echo/v4"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrBidNotFound),
		errors.Is(err, domain.ErrBidderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidListing):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrListingClosed):
		return http.StatusConflict
	case domain.IsRetriable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", "path", c.Path(), "error", err)
		msg = http.StatusText(status)
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}
