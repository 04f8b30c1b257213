package dailylog

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/validator"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// TotalHours renders checkOut minus checkIn in hours with two decimals.
// A check-out earlier than the check-in is taken to cross midnight.
func TotalHours(checkIn, checkOut string) (string, error) {
	in, ok := validator.IsValidClock(checkIn)
	if !ok {
		return "", fmt.Errorf("%w: check-in %q", ErrInvalidClock, checkIn)
	}
	out, ok := validator.IsValidClock(checkOut)
	if !ok {
		return "", fmt.Errorf("%w: check-out %q", ErrInvalidClock, checkOut)
	}

	span := out.Sub(in)
	if span < 0 {
		span += 24 * time.Hour
	}
	return fmt.Sprintf("%.2f", span.Hours()), nil
}
