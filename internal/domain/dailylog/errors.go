package dailylog

import "errors"

var (
	ErrInvalidClock = errors.New("invalid clock time")
)
