package pyramid

import "errors"

// All failures in this package and its callers are precondition
// violations, detected synchronously at the call that violates them.
// They wrap one of these sentinels so callers can classify them with
// errors.Is.
var (
	// ErrInvalidParameter reports an even or non-positive filter size,
	// or a non-positive level count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch reports images or coefficient vectors whose
	// sizes do not agree.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
