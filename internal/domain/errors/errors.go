package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("concurrent modification")
	ErrInvalidTransition   = errors.New("status transition not permitted")
	ErrAlreadyFinalized    = errors.New("order already finalized")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidLineItem     = errors.New("invalid line item")
	ErrNotNegotiable       = errors.New("listing is not negotiable")
	ErrPriceExceedsListing = errors.New("offer price exceeds listing price")
	ErrSessionClosed       = errors.New("negotiation session closed")
	ErrOrderNotDelivered   = errors.New("order not delivered")
	ErrDuplicateReview     = errors.New("order already reviewed")
	ErrAlreadyReplied      = errors.New("review already has a reply")
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrForbidden, "Forbidden"},
	{ErrInvalidTransition, "InvalidTransition"},
	{ErrNotNegotiable, "NotNegotiable"},
	{ErrPriceExceedsListing, "PriceExceedsListing"},
	{ErrSessionClosed, "SessionClosed"},
	{ErrInsufficientStock, "InsufficientStock"},
	{ErrInvalidLineItem, "InvalidLineItem"},
	{ErrOrderNotDelivered, "OrderNotDelivered"},
	{ErrDuplicateReview, "DuplicateReview"},
	{ErrAlreadyReplied, "AlreadyReplied"},
	{ErrAlreadyFinalized, "AlreadyFinalized"},
	{ErrConflict, "Conflict"},
	{ErrNotFound, "NotFound"},
	{ErrAlreadyExists, "AlreadyExists"},
	{ErrInvalidCredentials, "InvalidCredentials"},
	{ErrInvalidInput, "InvalidInput"},
}

// Kind returns the machine-readable name of a domain error, or "Internal"
// when err does not wrap any of the sentinels above.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}
