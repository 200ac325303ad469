package enrollment

import (
	"time"
)

// DefaultTimezone is the institute's operating timezone. Every instant the
// lifecycle service writes or compares comes from a Clock carrying this
// location, so no call site ever converts zones on its own.
const DefaultTimezone = "Asia/Karachi"

type Clock interface {
	Now() time.Time
}

type zoneClock struct {
	loc *time.Location
}

// NewClock builds the canonical clock for the given IANA timezone name.
// An empty name falls back to DefaultTimezone.
func NewClock(tz string) (Clock, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}
