package specio

import "errors"

var (
	// ErrFormatDialect reports input a reader could not recognize: missing
	// columns, short rows, or non-numeric samples.
	ErrFormatDialect = errors.New("specio: unrecognized format dialect")
	// ErrFilterServiceUnavailable reports a remote fetch that exhausted its
	// retries or was rejected by the service.
	ErrFilterServiceUnavailable = errors.New("specio: filter service unavailable")
)
