package ingest

import "errors"

var (
	// ErrMissingIdentityKey means a new customer profile could not be created
	// because the order rows carried neither a usable phone nor an email.
	ErrMissingIdentityKey = errors.New("order has no customer identity key")

	// ErrMissingProductKey means a line item carried no product identifier at
	// all, so it cannot be tied to a catalog entry.
	ErrMissingProductKey = errors.New("line item has no product identifier")

	// ErrDuplicateOrder means the bill number is already persisted and the
	// whole order was skipped.
	ErrDuplicateOrder = errors.New("bill number already ingested")
)
