package cart

import "errors"

var (
	// ErrLoadFailed means the storage backend could not be read.
	ErrLoadFailed = errors.New("cart: failed to read persisted cart")

	// ErrCorruptCart means the persisted value is not a JSON array of line items.
	ErrCorruptCart = errors.New("cart: persisted cart is corrupt")

	// ErrSaveFailed means the cart could not be written; the mutation was not applied.
	ErrSaveFailed = errors.New("cart: failed to save cart")

	// ErrInvalidItem means a line item failed validation.
	ErrInvalidItem = errors.New("cart: invalid line item")

	// ErrNotInCart means the operation needs an entry the cart does not hold.
	ErrNotInCart = errors.New("cart: item not in cart")

	// ErrWatchUnsupported means the storage backend cannot report external writes.
	ErrWatchUnsupported = errors.New("cart: storage backend does not support change notifications")
)
