// Package reconcile contains the reconciliation engine that keeps the
// managed slice of the target calendar in step with the external feed.
//
// The engine is deliberately split into a pure planning phase and a
// separate application phase:
//
//  1. Plan: index the feed events by derived identity, index the calendar
//     events by recovered identity and by content key, then classify every
//     event into exactly one of create / update / migrate / unchanged /
//     delete. Planning performs no I/O and never mutates its inputs.
//
//  2. Apply: walk the planned actions in order and drive a Mutator
//     (normally the Google Calendar client), pacing calls and isolating
//     per-action failures.
//
// # Matching
//
// Every feed event gets a deterministic identity derived from its
// (title, start, location) triple. The primary match is identity against
// the marker embedded in the calendar event's description. When that
// fails, a secondary content-key match (the same triple, unhashed)
// rescues events written under an older identity scheme or caught by a
// hash collision; such a hit is classified as a migration. A calendar
// event is protected from deletion when it matches a feed event on
// either key.
//
// # Correctness properties
//
// Planning is deterministic: the same snapshots always produce the same
// plan. It is idempotent: re-planning immediately after a successful
// apply yields zero actions. And a calendar event is only ever deleted
// when both rescue paths failed against every feed event, so a single
// identity-scheme change or hash collision never turns into a
// delete-and-recreate.
package reconcile
