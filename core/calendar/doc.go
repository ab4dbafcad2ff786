// Package calendar wraps the Google Calendar API v3 for the managed
// slice of the target calendar.
//
// The Client interface exposes exactly the four operations the sync
// service needs: a windowed listing filtered to managed events, and the
// three mutations the reconciliation plan can request. Managed events
// are recognized by the configured title prefix plus an identity marker
// in the description; everything else on the calendar is invisible to
// this system and never mutated.
//
// Authentication uses a service account key (JWT token source). The
// executor, not this package, owns call pacing; each method performs a
// single API call.
package calendar
