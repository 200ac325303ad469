package enrollment

import (
	"math"
	"time"

	"lms/models"
)

// Evaluate decides whether an enrollment grants access at the given
// instant. It is the only place expiration math happens.
//
// A nil expiration date means unlimited access: accessible, no remaining
// days. Otherwise access holds strictly until the expiration instant: at
// exactly that instant access is already expired. The day count is the
// floor of the remaining window and goes negative once expired; callers
// gating access must use the boolean, never the sign of the count.
//
// Evaluate is pure. Pass the current time at the call site (Clock.Now())
// and call it fresh before every access-gated action; persisting the result
// back onto the row is the caller's job and is only ever a cache.
func Evaluate(e models.Enrollment, now time.Time) (bool, *int) {
	if e.ExpirationDate == nil {
		return true, nil
	}
	accessible := e.ExpirationDate.After(now)
	days := int(math.Floor(e.ExpirationDate.Sub(now).Hours() / 24))
	return accessible, &days
}
