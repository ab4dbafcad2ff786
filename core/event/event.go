package event

import "time"

// DefaultDuration is assumed for source events that carry no end time.
const DefaultDuration = 2 * time.Hour

// Source is a single event from the external schedule feed.
type Source struct {
	// Title is the event summary. Events without a title are dropped
	// during parsing and never reach the engine.
	Title string

	// Start is the event start. Required; zero means the event is invalid.
	Start time.Time

	// End is the event end. A zero value means the feed did not provide
	// one; EndOrDefault substitutes Start + DefaultDuration.
	End time.Time

	// Location is the venue string, possibly empty.
	Location string

	// Description is the feed-provided body, possibly empty.
	Description string

	// Identity is the derived identity string. It is filled in by the
	// reconciliation engine before matching and is non-empty iff Title
	// and Start are both set.
	Identity string
}

// Valid reports whether the event carries the fields identity derivation
// requires.
func (s Source) Valid() bool {
	return s.Title != "" && !s.Start.IsZero()
}

// EndOrDefault returns the event end, substituting Start + DefaultDuration
// when the feed omitted one.
func (s Source) EndOrDefault() time.Time {
	if s.End.IsZero() {
		return s.Start.Add(DefaultDuration)
	}
	return s.End
}

// Target is a single managed event read from the target calendar.
type Target struct {
	// Title as stored in the calendar, including the managed prefix.
	Title string

	// Start and End as stored in the calendar.
	Start time.Time
	End   time.Time

	// Location as stored in the calendar.
	Location string

	// Description as stored, including the embedded identity marker.
	Description string

	// Identity recovered from the description marker. Empty when no
	// recognizable marker was found; such events are still managed (the
	// list filter saw a marker-shaped description) but can only be
	// matched through the content key.
	Identity string

	// Ref is the calendar-assigned event ID. Opaque to the engine; the
	// executor needs it to address update and delete calls.
	Ref string
}
