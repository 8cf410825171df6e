package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBidderNotFound  = errors.New("bidder not found")
	ErrBidNotFound     = errors.New("bid not found")

	// ErrListingClosed is returned by mutations other than bidding that are
	// refused once the close time has passed. Bids get RejectListingClosed.
	ErrListingClosed  = errors.New("listing closed")
	ErrInvalidListing = errors.New("invalid listing")

	ErrLockNotAcquired = errors.New("listing lock not acquired")
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return errors.Is(err, ErrLockNotAcquired)
}

// StorageError wraps an infrastructure failure of a store adapter.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) IsRetriable() bool {
	return true
}

// NewStorageError wraps err unless it is nil or already a domain not-found error.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrListingNotFound) || errors.Is(err, ErrBidNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
