package clock

import "time"

// Clock yields the current wall time in the business timezone.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

func InLocation(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed always returns t. Used by tests.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
