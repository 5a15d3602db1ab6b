// Package policy decides whether a ticket is still cancellable.
package policy

import "time"

// CanCancel reports whether a ticket for a session starting at sessionDate
// may still be cancelled at now, given the lead-time window in days.
//
// The comparison uses the raw fractional day difference, not calendar day
// boundaries: with a 3-day window, 3.5 days of lead time passes and 2.9 does
// not. This matches the legacy behavior.
func CanCancel(sessionDate, now time.Time, maxCancelDays int) bool {
	diffDays := sessionDate.Sub(now).Hours() / 24
	return diffDays >= float64(maxCancelDays)
}
