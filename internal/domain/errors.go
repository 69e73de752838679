package domain

import "errors"

var (
	// ErrDuplicateProductID is returned when two catalog products share an id.
	ErrDuplicateProductID = errors.New("duplicate product id")
	// ErrProductIDRequired is returned for products or cart lines without an id.
	ErrProductIDRequired = errors.New("product id is required")
	// ErrPriceNegative is returned for products priced below zero.
	ErrPriceNegative = errors.New("product price must be non-negative")
	// ErrProductNotFound is returned when an id is not part of the loaded catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrCatalogUnavailable is returned when no configured source produced a catalog.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrNameRequired and ErrEmailRequired guard consultation requests.
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
)
