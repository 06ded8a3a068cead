package filter

import "errors"

var (
	// ErrUnknownFilter reports a token that is not in the catalog, or not
	// registered with an instrument.
	ErrUnknownFilter = errors.New("filter: unknown filter")
	// ErrInvalidCatalog reports a malformed or inconsistent catalog.
	ErrInvalidCatalog = errors.New("filter: invalid catalog")
)
