package reconcile

import (
	"strings"
	"time"

	"rinksync/core/event"
)

// DefaultTolerance is the start/end time drift the detector ignores.
// The feed's generator rounds timestamps inconsistently, so sub-minute
// jitter must not count as a change.
const DefaultTolerance = 5 * time.Minute

// Detector decides whether a matched calendar event needs mutation to
// agree with its feed counterpart. It is a pure predicate: it never
// mutates its inputs and performs no I/O.
type Detector struct {
	// Prefix is the managed title prefix applied to every target title.
	Prefix string

	// Tolerance is the maximum absolute start/end difference that still
	// counts as unchanged. Differences of exactly Tolerance count as
	// changed. Zero means DefaultTolerance.
	Tolerance time.Duration
}

// NeedsUpdate reports whether target differs from the projection of
// source into the calendar.
func (d Detector) NeedsUpdate(target event.Target, source event.Source) bool {
	if target.Title != d.Prefix+source.Title {
		return true
	}

	tol := d.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if exceeds(target.Start, source.Start, tol) {
		return true
	}
	if exceeds(target.End, source.EndOrDefault(), tol) {
		return true
	}

	if !strings.EqualFold(strings.TrimSpace(target.Location), strings.TrimSpace(source.Location)) {
		return true
	}

	// Compare description content with the identity marker stripped from
	// both sides; the marker itself is managed separately.
	if event.StripMarker(target.Description) != event.StripMarker(source.Description) {
		return true
	}

	return false
}

func exceeds(a, b time.Time, tol time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff >= tol
}
