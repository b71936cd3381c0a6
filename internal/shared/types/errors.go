package types

import "errors"

var (
	ErrUnknownCity        = errors.New("unknown city: no record source is configured for it")
	ErrSourceUnavailable  = errors.New("record source unavailable")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrEmptyView          = errors.New("no data available for the selected filters")
	ErrNegativeDuration   = errors.New("trip ends before it starts")
	ErrInvalidSelection   = errors.New("invalid selection")
)
