package rankgo

import "errors"

var (
	// ErrPercentCutoffNotSupported is returned when a percentage cutoff is
	// requested while sorting primarily by a stored value. Percentages are
	// relative to the best weight, so a cutoff cannot be honoured under a
	// value-primary order; the combination fails rather than silently
	// dropping either setting.
	ErrPercentCutoffNotSupported = errors.New("percentage cutoff not supported with sort by value")

	// ErrInvalidCutoff is returned for cutoff percentages outside [0, 100].
	ErrInvalidCutoff = errors.New("cutoff percentage must be in [0, 100]")

	// ErrInvalidPaging is returned for a negative page start or size.
	ErrInvalidPaging = errors.New("page start and size must be non-negative")
)
