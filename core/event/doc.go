// Package event defines the domain model shared by the feed loader, the
// reconciliation engine, and the calendar client.
//
// It contains two event shapes:
//
//   - Source: an event parsed from the external schedule feed. Built fresh
//     on every run, annotated with a derived identity, and discarded after
//     the run completes. Treated as immutable once annotated.
//   - Target: an event read from the managed calendar. It persists across
//     runs, carries the managed title prefix, and embeds its identity as a
//     marker inside the description so later runs can recognize it.
//
// The package also owns the identity marker format: ComposeDescription
// appends the marker when writing a target, ExtractIdentity recovers it
// when reading one, and StripMarker removes it so descriptions can be
// compared on content alone. Two marker forms are recognized: the current
// trailing "rinksync-id:" line and the legacy whole-description "sync:"
// form written by earlier versions.
package event
