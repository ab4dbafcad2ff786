// Package feed loads the external schedule feed.
//
// It fetches the published iCalendar payload over HTTPS and parses it
// into source events for the reconciliation engine. The package owns the
// single most important boundary contract in the system: a failed fetch
// or an unparseable body returns a non-nil error, while a valid feed
// with no events returns an empty slice and a nil error. Callers abort
// the run on error; treating "no data" as "no events exist" once caused
// a mass deletion in the target calendar, and the error/empty split
// exists to make that impossible by construction.
//
// Individual events missing a title or start time are dropped during
// parsing and logged; they do not abort the run.
package feed
